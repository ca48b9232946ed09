package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// registerLoanRoutes registers routes related to loans. guard runs before every mutating route.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, guard ...gin.HandlerFunc) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)

		mutating := loans.Group("", guard...)
		mutating.POST("", h.createLoan)
		mutating.PUT("/:id", h.updateLoan)
		mutating.DELETE("/:id", h.deleteLoan)
		mutating.POST("/:id/renegotiate", h.renegotiateLoan)
	}
}

// listLoans godoc
// @Summary List loans
// @Description Lists the tenant's loans with client and installments, newest first
// @Tags loans
// @Produce json
// @Param status query string false "ACTIVE, COMPLETED or RENEGOTIATED"
// @Param clientId query string false "Only loans of this client"
// @Success 200 {array} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid loan filters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.LoanFilter{Status: domain.LoanStatus(params.Status), ClientID: params.ClientID}
	loans, err := h.loanService.ListLoans(c.Request.Context(), tenant, filter)
	if err != nil {
		respondWithError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	loan, err := h.loanService.GetLoan(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// createLoan godoc
// @Summary Issue a loan
// @Description Creates the loan with its installment schedule and records the disbursement (and partner commission) in the cash flow
// @Tags loans
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for retried requests"
// @Param loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse "Invalid input or plan limit reached"
// @Failure 403 {object} ErrorResponse "Client or partner belongs to another tenant"
// @Failure 404 {object} ErrorResponse "Client or partner not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.CreateLoanRequest
	if !bindJSON(c, &req, "CreateLoan") {
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), tenant, req)
	if err != nil {
		respondWithError(c, err, "Failed to create loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// updateLoan godoc
// @Summary Edit loan metadata
// @Description Changes principal, interest type, start date or partner. The total is never set directly.
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param loan body dto.UpdateLoanRequest true "Fields to change"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.UpdateLoanRequest
	if !bindJSON(c, &req, "UpdateLoan") {
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// renegotiateLoan godoc
// @Summary Renegotiate a loan
// @Description Closes the loan as RENEGOTIATED and opens a successor for the remaining debt minus the entry payment
// @Tags loans
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for retried requests"
// @Param id path string true "Loan ID"
// @Param terms body dto.RenegotiateLoanRequest true "New terms"
// @Success 201 {object} dto.LoanResponse "The successor loan"
// @Failure 400 {object} ErrorResponse "Entry larger than the pending debt"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan already renegotiated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/renegotiate [post]
func (h *loanHandler) renegotiateLoan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.RenegotiateLoanRequest
	if !bindJSON(c, &req, "RenegotiateLoan") {
		return
	}

	successor, err := h.loanService.RenegotiateLoan(c.Request.Context(), tenant, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to renegotiate loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(successor))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes the loan, its installments and every cash-flow entry linked to it
// @Tags loans
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.loanService.DeleteLoan(c.Request.Context(), tenant, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete loan")
		return
	}
	c.Status(http.StatusNoContent)
}
