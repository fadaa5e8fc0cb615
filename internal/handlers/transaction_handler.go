package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
	"stocktracker/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// RecordTransactionRequest represents the request payload for recording a
// buy or sell. UnitPrice is in cents.
type RecordTransactionRequest struct {
	Symbol     string                 `json:"symbol" binding:"required,ticker"`
	Kind       models.TransactionKind `json:"kind" binding:"required,transaction_kind"`
	Quantity   float64                `json:"quantity" binding:"required,gt=0"`
	UnitPrice  int64                  `json:"unit_price" binding:"required,gt=0"`
	ExecutedAt *string                `json:"executed_at"`
	Notes      string                 `json:"notes" binding:"max=500"`
}

// ListTransactionsQuery carries the list filters.
type ListTransactionsQuery struct {
	pagination.PageRequest
	Symbol string `form:"symbol"`
	Kind   string `form:"kind"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// RecordTransaction records a buy or sell
// @Summary     Record a transaction
// @Description Record a buy or sell against a portfolio. A sell exceeding the held shares at its timestamp is rejected.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]interface{} "Transaction and updated position"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient shares"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/transactions [post]
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	executedAt := time.Now()
	if req.ExecutedAt != nil && *req.ExecutedAt != "" {
		parsed, parseErr := parseFlexibleTime(*req.ExecutedAt)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		executedAt = parsed
	}

	transaction, position, err := h.transactionService.RecordTransaction(
		userID,
		portfolioID,
		req.Symbol,
		req.Kind,
		req.Quantity,
		req.UnitPrice,
		executedAt,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction": transaction,
		"position":    position,
	})
}

// ListTransactions returns a portfolio's transactions
// @Summary     List transactions
// @Description List a portfolio's transactions, newest first, with optional symbol, kind and date filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       symbol query string false "Filter by symbol"
// @Param       kind query string false "Filter by kind (buy or sell)"
// @Param       from query string false "Executed on or after (RFC 3339 or YYYY-MM-DD)"
// @Param       to query string false "Executed on or before"
// @Success     200 {object} map[string]interface{} "Paginated transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := buildTransactionFilter(query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetPortfolioTransactions(userID, portfolioID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLedger returns the running-totals view of a portfolio
// @Summary     Ledger view
// @Description Every transaction in replay order with per-symbol running shares, average cost and realized profit
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       symbol query string false "Restrict to one symbol"
// @Success     200 {object} map[string]interface{} "Ledger rows"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio or symbol not found"
// @Router      /portfolios/{id}/ledger [get]
func (h *TransactionHandler) GetLedger(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.transactionService.GetLedger(userID, portfolioID, c.Query("symbol"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledger": rows})
}

// DeleteTransaction removes a transaction and recomputes the position
// @Summary     Delete a transaction
// @Description Remove a transaction. Rejected if the remaining history would oversell at any point.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{} "Recomputed position"
// @Failure     400 {object} ErrorResponse "Remaining history would oversell"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	position, err := h.transactionService.RemoveTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Transaction deleted",
		"position": position,
	})
}

// buildTransactionFilter converts query strings into a service filter.
func buildTransactionFilter(query ListTransactionsQuery) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	if query.Symbol != "" {
		filter.Symbol = &query.Symbol
	}
	if query.Kind != "" {
		kind := models.TransactionKind(query.Kind)
		if kind != models.TransactionBuy && kind != models.TransactionSell {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be buy or sell")
		}
		filter.Kind = &kind
	}
	if query.From != "" {
		from, err := parseFlexibleTime(query.From)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := parseFlexibleTime(query.To)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		filter.To = &to
	}
	return filter, nil
}
