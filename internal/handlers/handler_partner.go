package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := &partnerHandler{partnerService: partnerService}

	partners := rg.Group("/partners")
	{
		partners.GET("", h.listPartners)
		partners.POST("", h.createPartner)
		partners.DELETE("/:id", h.deletePartner)
	}
}

// listPartners godoc
// @Summary List partners
// @Tags partners
// @Produce json
// @Success 200 {array} dto.PartnerResponse
// @Security BearerAuth
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	partners, err := h.partnerService.ListPartners(c.Request.Context(), tenant)
	if err != nil {
		respondWithError(c, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponses(partners))
}

// createPartner godoc
// @Summary Create a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.CreatePartnerRequest
	if !bindJSON(c, &req, "CreatePartner") {
		return
	}
	partner, err := h.partnerService.CreatePartner(c.Request.Context(), tenant, req)
	if err != nil {
		respondWithError(c, err, "Failed to create partner")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// deletePartner godoc
// @Summary Delete a partner
// @Description Loans referred by the partner keep their history without the reference
// @Tags partners
// @Param id path string true "Partner ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/{id} [delete]
func (h *partnerHandler) deletePartner(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.partnerService.DeletePartner(c.Request.Context(), tenant, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete partner")
		return
	}
	c.Status(http.StatusNoContent)
}
