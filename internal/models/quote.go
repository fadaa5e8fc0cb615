package models

import (
	"time"

	"stocktracker/internal/uuid"

	"gorm.io/gorm"
)

// Quote is one recorded market price for a symbol. Immutable time-series
// data: no Base embed, no soft deletes. Quotes double as a fallback when the
// upstream provider cannot resolve a symbol.
type Quote struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol     string    `gorm:"not null;index:idx_quotes_symbol_recorded" json:"symbol"`
	Price      int64     `gorm:"type:bigint;not null" json:"price"` // cents
	RecordedAt time.Time `gorm:"not null;index:idx_quotes_symbol_recorded" json:"recorded_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New()
	}
	return nil
}
