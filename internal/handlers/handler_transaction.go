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

// transactionHandler handles the cash-flow journal.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.createTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
	}
}

// listTransactions godoc
// @Summary List cash-flow entries
// @Description Newest first. "to" is exclusive; a calendar date includes that whole day.
// @Tags transactions
// @Produce json
// @Param type query string false "IN or OUT"
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid transaction filters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.TransactionFilter{Type: domain.TransactionType(params.Type)}
	if params.From != "" {
		from, err := dto.ParseDate(params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from': " + err.Error()})
			return
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := dto.ParseRangeEnd(params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to': " + err.Error()})
			return
		}
		filter.To = &to
	}

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), tenant, filter)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// createTransaction godoc
// @Summary Record a manual cash-flow entry
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Entry"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req, "CreateTransaction") {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), tenant, req)
	if err != nil {
		respondWithError(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a cash-flow entry
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), tenant, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

