package mapping

import (
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/models"
)

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{CreatedAt: d.CreatedAt, LastUpdatedAt: d.LastUpdatedAt}
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{CreatedAt: m.CreatedAt, LastUpdatedAt: m.LastUpdatedAt}
}
