package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type installmentHandler struct {
	installmentService portssvc.InstallmentSvcFacade
}

// registerInstallmentRoutes registers the installment lifecycle routes; all of them mutate.
func registerInstallmentRoutes(rg *gin.RouterGroup, installmentService portssvc.InstallmentSvcFacade, guard ...gin.HandlerFunc) {
	h := &installmentHandler{installmentService: installmentService}

	installments := rg.Group("/installments", guard...)
	{
		installments.POST("/:id/pay", h.payInstallment)
		installments.POST("/:id/duplicate", h.duplicateInstallment)
		installments.PUT("/:id", h.updateInstallment)
		installments.DELETE("/:id", h.deleteInstallment)
	}
}

// payInstallment godoc
// @Summary Pay an installment
// @Description FULL settles the installment. INTEREST_ONLY settles the interest and carries the installment forward.
// @Tags installments
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for retried requests"
// @Param id path string true "Installment ID"
// @Param payment body dto.PayInstallmentRequest true "Payment"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Installment is not pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /installments/{id}/pay [post]
func (h *installmentHandler) payInstallment(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.PayInstallmentRequest
	if !bindJSON(c, &req, "PayInstallment") {
		return
	}

	result, err := h.installmentService.PayInstallment(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to register payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(result))
}

// updateInstallment godoc
// @Summary Correct an installment
// @Description Edits status, amount, due date or payment fields without touching the cash flow
// @Tags installments
// @Accept json
// @Produce json
// @Param id path string true "Installment ID"
// @Param installment body dto.UpdateInstallmentRequest true "Fields to change"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /installments/{id} [put]
func (h *installmentHandler) updateInstallment(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.UpdateInstallmentRequest
	if !bindJSON(c, &req, "UpdateInstallment") {
		return
	}

	inst, err := h.installmentService.UpdateInstallment(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update installment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponse(inst))
}

// duplicateInstallment godoc
// @Summary Duplicate an installment
// @Description Appends a pending copy due one period after the source
// @Tags installments
// @Produce json
// @Param id path string true "Installment ID"
// @Success 201 {object} dto.InstallmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /installments/{id}/duplicate [post]
func (h *installmentHandler) duplicateInstallment(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	inst, err := h.installmentService.DuplicateInstallment(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to duplicate installment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInstallmentResponse(inst))
}

// deleteInstallment godoc
// @Summary Delete an installment
// @Tags installments
// @Param id path string true "Installment ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /installments/{id} [delete]
func (h *installmentHandler) deleteInstallment(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.installmentService.DeleteInstallment(c.Request.Context(), tenant, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete installment")
		return
	}
	c.Status(http.StatusNoContent)
}
