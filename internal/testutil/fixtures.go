package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stocktracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPortfolio creates a portfolio owned by userID.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID: userID,
		Name:   fmt.Sprintf("Test Portfolio %d", nextID()),
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestTransaction records a transaction directly, bypassing the service
// layer validation. unitPrice is in cents.
func CreateTestTransaction(t *testing.T, db *gorm.DB, portfolioID, symbol string, kind models.TransactionKind, quantity float64, unitPrice int64, executedAt time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Kind:        kind,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		ExecutedAt:  executedAt,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestQuote records a quote directly. price is in cents.
func CreateTestQuote(t *testing.T, db *gorm.DB, symbol string, price int64, recordedAt time.Time) *models.Quote {
	t.Helper()

	quote := &models.Quote{
		Symbol:     symbol,
		Price:      price,
		RecordedAt: recordedAt,
	}
	if err := db.Create(quote).Error; err != nil {
		t.Fatalf("failed to create test quote: %v", err)
	}
	return quote
}
