package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const documentFormField = "file"

// clientHandler handles HTTP requests related to clients and their documents.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
		clients.GET("/:id/stats", h.getClientStats)
		clients.POST("/:id/documents", h.uploadDocument)
	}
	rg.DELETE("/documents/:id", h.deleteDocument)
}

// listClients godoc
// @Summary List clients
// @Description Lists the tenant's clients ordered by name, each with its loans
// @Tags clients
// @Produce json
// @Success 200 {array} dto.ClientResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), tenant)
	if err != nil {
		respondWithError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponses(clients))
}

// createClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse "Invalid input or plan limit reached"
// @Failure 409 {object} ErrorResponse "CPF already registered"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if !bindJSON(c, &req, "CreateClient") {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), tenant, req)
	if err != nil {
		respondWithError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Description Changes only the fields present in the payload; blank strings clear optional fields
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to change"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if !bindJSON(c, &req, "UpdateClient") {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Removes the client with its loans, installments and documents
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), tenant, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

// getClientStats godoc
// @Summary Client statistics
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientStatsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/stats [get]
func (h *clientHandler) getClientStats(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	stats, err := h.clientService.GetClientStats(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to compute client stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientStatsResponse(stats))
}

// uploadDocument godoc
// @Summary Upload a client document
// @Description Accepts PDF, JPEG, PNG or WEBP files in the "file" form field
// @Tags clients
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Client ID"
// @Param file formData file true "Document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Missing file, disallowed type or too large"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/documents [post]
func (h *clientHandler) uploadDocument(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	header, err := c.FormFile(documentFormField)
	if err != nil {
		logger.Warn("Missing document upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondWithError(c, err, "Failed to read upload")
		return
	}
	defer file.Close()

	doc, err := h.clientService.UploadDocument(c.Request.Context(), tenant, c.Param("id"), header.Filename, file)
	if err != nil {
		respondWithError(c, err, "Failed to store document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a client document
// @Tags clients
// @Param id path string true "Document ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *clientHandler) deleteDocument(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteDocument(c.Request.Context(), tenant, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}
