package models

// User represents an account holder. Each user owns any number of portfolios.
type User struct {
	Base
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Password         string `gorm:"not null" json:"-"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	IsActive         bool   `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string `gorm:"size:64" json:"-"`
}
