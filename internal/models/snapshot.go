package models

import (
	"time"

	"stocktracker/internal/uuid"

	"gorm.io/gorm"
)

// PortfolioSnapshot is a dated valuation of a portfolio, recorded so the
// value-over-time series survives gaps in market data. All money fields are
// cents.
type PortfolioSnapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	PortfolioID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_snapshots_portfolio_recorded" json:"portfolio_id"`
	RecordedAt       time.Time `gorm:"not null;uniqueIndex:idx_snapshots_portfolio_recorded" json:"recorded_at"`
	MarketValue      int64     `gorm:"type:bigint;not null" json:"market_value"`
	CostBasis        int64     `gorm:"type:bigint;not null" json:"cost_basis"`
	RealizedProfit   int64     `gorm:"type:bigint;not null" json:"realized_profit"`
	UnrealizedProfit int64     `gorm:"type:bigint;not null" json:"unrealized_profit"`
	TotalProfit      int64     `gorm:"type:bigint;not null" json:"total_profit"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *PortfolioSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
