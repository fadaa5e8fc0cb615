package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/pagination"
	"stocktracker/internal/services"
)

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// CreatePortfolioRequest represents the request payload for creating a portfolio
type CreatePortfolioRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreatePortfolio handles the creation of a new portfolio
// @Summary     Create a portfolio
// @Description Create a new portfolio for the authenticated user
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} map[string]interface{} "Portfolio created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(userID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolio})
}

// ListPortfolios returns the authenticated user's portfolios
// @Summary     List portfolios
// @Description List the authenticated user's portfolios, paginated
// @Tags        portfolios
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated portfolios"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolios [get]
func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.portfolioService.GetUserPortfolios(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPortfolio returns a single portfolio
// @Summary     Get a portfolio
// @Description Get one of the authenticated user's portfolios by ID
// @Tags        portfolios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} map[string]interface{} "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
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

	portfolio, err := h.portfolioService.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// DeletePortfolio deletes a portfolio and its transactions
// @Summary     Delete a portfolio
// @Description Delete a portfolio and every transaction in it
// @Tags        portfolios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} map[string]interface{} "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
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

	if err := h.portfolioService.DeletePortfolio(userID, portfolioID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted"})
}

// ImportTransactions replaces a portfolio's contents from an exported history
// @Summary     Import transaction history
// @Description Replace the portfolio's transactions with an exported history, keyed by symbol. Each row is [kind, date, quantity, price-in-dollars].
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       request body services.ImportHistory true "Exported history"
// @Success     200 {object} map[string]interface{} "Import result"
// @Failure     400 {object} ErrorResponse "Invalid or unreplayable history"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/import [post]
func (h *PortfolioHandler) ImportTransactions(c *gin.Context) {
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

	var history services.ImportHistory
	if err := c.ShouldBindJSON(&history); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.portfolioService.ImportTransactions(userID, portfolioID, history)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": count})
}
