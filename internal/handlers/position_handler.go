package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stocktracker/internal/services"
)

// PositionHandler serves priced positions and portfolio summaries.
type PositionHandler struct {
	positionService services.PositionServicer
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(positionService services.PositionServicer) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// ListPositions returns every position in a portfolio
// @Summary     List positions
// @Description Per-symbol holdings with market figures where a price is available
// @Tags        positions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} map[string]interface{} "Positions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/positions [get]
func (h *PositionHandler) ListPositions(c *gin.Context) {
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

	summary, err := h.positionService.GetPortfolioSummary(c.Request.Context(), userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"positions":      summary.Positions,
		"missing_prices": summary.MissingPrices,
	})
}

// GetPosition returns one symbol's position
// @Summary     Get a position
// @Description One symbol's holding in a portfolio, priced if possible
// @Tags        positions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} map[string]interface{} "Position"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio or symbol not found"
// @Router      /portfolios/{id}/positions/{symbol} [get]
func (h *PositionHandler) GetPosition(c *gin.Context) {
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

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	position, err := h.positionService.GetPosition(c.Request.Context(), userID, portfolioID, symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": position})
}

// GetSummary returns the portfolio's aggregate valuation
// @Summary     Portfolio summary
// @Description Aggregated market value, cost basis and profit across all positions
// @Tags        positions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} services.PortfolioSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/summary [get]
func (h *PositionHandler) GetSummary(c *gin.Context) {
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

	summary, err := h.positionService.GetPortfolioSummary(c.Request.Context(), userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
