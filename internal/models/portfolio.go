package models

// Portfolio groups a user's transaction history. Positions are never stored;
// they are recomputed from the transaction rows on every read.
type Portfolio struct {
	Base
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:PortfolioID" json:"transactions,omitempty"`
}
