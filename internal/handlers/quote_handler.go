package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/pagination"
	"stocktracker/internal/services"
)

// QuoteHandler serves recorded market quotes.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// RefreshQuotesRequest lists the symbols to refresh.
type RefreshQuotesRequest struct {
	Symbols []string `json:"symbols" binding:"required,min=1,max=50"`
}

// QuoteHistoryQuery carries the history filters.
type QuoteHistoryQuery struct {
	pagination.PageRequest
	From string `form:"from"`
	To   string `form:"to"`
}

// GetLatest returns the most recent recorded quote for a symbol
// @Summary     Latest quote
// @Description The most recent recorded quote for a symbol, in cents
// @Tags        quotes
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} map[string]interface{} "Quote"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "No recorded quote"
// @Router      /quotes/{symbol} [get]
func (h *QuoteHandler) GetLatest(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	quote, err := h.quoteService.GetLatest(symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// GetHistory returns recorded quotes for a symbol
// @Summary     Quote history
// @Description Recorded quotes for a symbol within a date range, newest first
// @Tags        quotes
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Param       from query string false "Recorded on or after (RFC 3339 or YYYY-MM-DD)"
// @Param       to query string false "Recorded on or before"
// @Success     200 {object} map[string]interface{} "Paginated quotes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /quotes/{symbol}/history [get]
func (h *QuoteHandler) GetHistory(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	var query QuoteHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var from, to time.Time
	var err error
	if query.From != "" {
		if from, err = parseFlexibleTime(query.From); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}
	if query.To != "" {
		if to, err = parseFlexibleTime(query.To); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	result, err := h.quoteService.GetHistory(symbol, from, to, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshQuotes fetches and records fresh quotes
// @Summary     Refresh quotes
// @Description Fetch fresh quotes for the given symbols and record them
// @Tags        quotes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RefreshQuotesRequest true "Symbols to refresh"
// @Success     200 {object} map[string]interface{} "Refresh result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /quotes/refresh [post]
func (h *QuoteHandler) RefreshQuotes(c *gin.Context) {
	var req RefreshQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stored, failed, err := h.quoteService.Refresh(c.Request.Context(), req.Symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stored": stored,
		"failed": failed,
	})
}
