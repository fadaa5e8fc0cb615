package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/pagination"
	"stocktracker/internal/services"
)

// SnapshotHandler records and serves portfolio valuations over time.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// RecordSnapshotRequest optionally overrides the snapshot date.
type RecordSnapshotRequest struct {
	RecordedAt *string `json:"recorded_at"`
}

// SnapshotListQuery carries the list filters.
type SnapshotListQuery struct {
	pagination.PageRequest
	From string `form:"from"`
	To   string `form:"to"`
}

// RecordSnapshot values the portfolio and stores the result
// @Summary     Record a snapshot
// @Description Value the portfolio at current prices and store a dated snapshot. One snapshot per day; recording again overwrites.
// @Tags        snapshots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       request body RecordSnapshotRequest false "Optional snapshot date"
// @Success     201 {object} map[string]interface{} "Snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/snapshots [post]
func (h *SnapshotHandler) RecordSnapshot(c *gin.Context) {
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

	var req RecordSnapshotRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil && *req.RecordedAt != "" {
		parsed, parseErr := parseFlexibleTime(*req.RecordedAt)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		recordedAt = parsed
	}

	snapshot, err := h.snapshotService.RecordSnapshot(c.Request.Context(), userID, portfolioID, recordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"snapshot": snapshot})
}

// ListSnapshots returns stored snapshots
// @Summary     List snapshots
// @Description Stored portfolio valuations within a date range, newest first
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       from query string false "Recorded on or after (RFC 3339 or YYYY-MM-DD)"
// @Param       to query string false "Recorded on or before"
// @Success     200 {object} map[string]interface{} "Paginated snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/snapshots [get]
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
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

	var query SnapshotListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var from, to time.Time
	if query.From != "" {
		parsed, parseErr := parseFlexibleTime(query.From)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		from = parsed
	}
	if query.To != "" {
		parsed, parseErr := parseFlexibleTime(query.To)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		to = parsed
	}

	result, err := h.snapshotService.GetSnapshots(userID, portfolioID, from, to, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
