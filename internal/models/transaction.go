package models

import "time"

// TransactionKind represents the side of a trade.
type TransactionKind string

const (
	TransactionBuy  TransactionKind = "buy"
	TransactionSell TransactionKind = "sell"
)

// Transaction is a single immutable buy or sell. Rows are only ever appended
// or deleted, never updated; positions come from replaying them in
// (executed_at, id) order. The UUIDv7 primary key makes the id tiebreak follow
// insertion order.
type Transaction struct {
	Base
	PortfolioID string          `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Symbol      string          `gorm:"not null;index" json:"symbol"`
	Kind        TransactionKind `gorm:"not null" json:"kind"`
	Quantity    float64         `gorm:"not null" json:"quantity"`
	UnitPrice   int64           `gorm:"type:bigint;not null" json:"unit_price"` // cents per share
	ExecutedAt  time.Time       `gorm:"not null;index" json:"executed_at"`
	Notes       string          `json:"notes,omitempty"`

	// Relationships
	Portfolio Portfolio `gorm:"foreignKey:PortfolioID" json:"-"`
}
