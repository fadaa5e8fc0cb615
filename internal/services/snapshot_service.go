package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
)

// snapshotService persists dated portfolio valuations.
type snapshotService struct {
	db               *gorm.DB
	portfolioService PortfolioServicer
	positionService  PositionServicer
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB, portfolioService PortfolioServicer, positionService PositionServicer) SnapshotServicer {
	return &snapshotService{db: db, portfolioService: portfolioService, positionService: positionService}
}

// RecordSnapshot values the portfolio now and stores the result under
// recordedAt, truncated to the day. Recording twice for the same day
// overwrites the earlier snapshot; recording while any held symbol lacks a
// resolvable price fails instead of storing a partial valuation.
func (s *snapshotService) RecordSnapshot(ctx context.Context, userID, portfolioID string, recordedAt time.Time) (*models.PortfolioSnapshot, error) {
	summary, err := s.positionService.GetPortfolioSummary(ctx, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	// A snapshot is durable, so a partial valuation must not be stored as if
	// it were complete.
	if len(summary.MissingPrices) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrPriceUnavailable,
			fmt.Sprintf("cannot record a snapshot without prices for %s", strings.Join(summary.MissingPrices, ", ")))
	}

	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	recordedAt = recordedAt.UTC().Truncate(24 * time.Hour)

	snapshot := &models.PortfolioSnapshot{
		PortfolioID:      portfolioID,
		RecordedAt:       recordedAt,
		MarketValue:      summary.TotalMarketValue,
		CostBasis:        summary.TotalCostBasis,
		RealizedProfit:   summary.TotalRealized,
		UnrealizedProfit: summary.TotalUnrealized,
		TotalProfit:      summary.TotalProfit,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "portfolio_id"}, {Name: "recorded_at"}},
		DoUpdates: clause.AssignmentColumns([]string{"market_value", "cost_basis", "realized_profit", "unrealized_profit", "total_profit"}),
	}).Create(snapshot).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// GetSnapshots returns snapshots within [from, to], newest first. Zero bounds
// are open-ended.
func (s *snapshotService) GetSnapshots(userID, portfolioID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error) {
	if _, err := s.portfolioService.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	page.Defaults()

	query := s.db.Model(&models.PortfolioSnapshot{}).Where("portfolio_id = ?", portfolioID)
	if !from.IsZero() {
		query = query.Where("recorded_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("recorded_at <= ?", to)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PortfolioSnapshot
	if err := query.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
