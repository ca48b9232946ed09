package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/hk_loans_app/cmd/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Equal(t, "/api/v1", doc["basePath"])
	assert.Contains(t, doc["securityDefinitions"], "BearerAuth")
}
