package services

import (
	"testing"

	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
	"stocktracker/internal/testutil"
)

func TestCreatePortfolio(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		portfolio, err := svc.CreatePortfolio(user.ID, "Retirement", "long term")
		testutil.AssertNoError(t, err)

		if portfolio.ID == "" {
			t.Fatal("expected non-empty portfolio ID")
		}
		if portfolio.Name != "Retirement" {
			t.Errorf("expected name Retirement, got %s", portfolio.Name)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePortfolio(user.ID, "   ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetPortfolioByID(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestPortfolio(t, db, user.ID)

		portfolio, err := svc.GetPortfolioByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if portfolio.ID != created.ID {
			t.Errorf("expected portfolio %s, got %s", created.ID, portfolio.ID)
		}
	})

	t.Run("other_user_sees_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestPortfolio(t, db, owner.ID)

		_, err := svc.GetPortfolioByID(other.ID, created.ID)
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}

func TestGetUserPortfolios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	for i := 0; i < 3; i++ {
		testutil.CreateTestPortfolio(t, db, user.ID)
	}
	testutil.CreateTestPortfolio(t, db, other.ID)

	result, err := svc.GetUserPortfolios(user.ID, pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Errorf("expected 3 portfolios, got %d", result.TotalItems)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected page of 2, got %d", len(result.Data))
	}
}

func TestDeletePortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db)
	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
	testutil.CreateTestTransaction(t, db, portfolio.ID, "AAPL", models.TransactionBuy, 10, 10000, testBase)

	err := svc.DeletePortfolio(user.ID, portfolio.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetPortfolioByID(user.ID, portfolio.ID)
	testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")

	var count int64
	db.Model(&models.Transaction{}).Where("portfolio_id = ?", portfolio.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected transactions deleted with portfolio, found %d", count)
	}
}

func TestImportTransactions(t *testing.T) {
	t.Run("valid_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

		history := ImportHistory{
			"AAPL": {
				{"Bought", "2024-01-05", "10", "185.50"},
				{"Sold", "2024-02-01", "4", "190.25"},
			},
			"msft": {
				{"bought", "2024-01-10", "2.5", "402.00"},
			},
		}
		count, err := svc.ImportTransactions(user.ID, portfolio.ID, history)
		testutil.AssertNoError(t, err)

		if count != 3 {
			t.Errorf("expected 3 imported transactions, got %d", count)
		}

		var stored []models.Transaction
		db.Where("portfolio_id = ? AND symbol = ?", portfolio.ID, "AAPL").
			Order("executed_at ASC").Find(&stored)
		if len(stored) != 2 {
			t.Fatalf("expected 2 AAPL transactions, got %d", len(stored))
		}
		if stored[0].Kind != models.TransactionBuy || stored[0].UnitPrice != 18550 {
			t.Errorf("expected buy at 18550 cents, got %s at %d", stored[0].Kind, stored[0].UnitPrice)
		}
		if stored[1].Kind != models.TransactionSell || stored[1].Quantity != 4 {
			t.Errorf("expected sell of 4 shares, got %s of %f", stored[1].Kind, stored[1].Quantity)
		}
	})

	t.Run("replaces_existing_contents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
		testutil.CreateTestTransaction(t, db, portfolio.ID, "TSLA", models.TransactionBuy, 1, 20000, testBase)

		history := ImportHistory{
			"AAPL": {{"Bought", "2024-01-05", "10", "185.50"}},
		}
		_, err := svc.ImportTransactions(user.ID, portfolio.ID, history)
		testutil.AssertNoError(t, err)

		var symbols []string
		db.Model(&models.Transaction{}).Where("portfolio_id = ?", portfolio.ID).
			Distinct().Pluck("symbol", &symbols)
		if len(symbols) != 1 || symbols[0] != "AAPL" {
			t.Errorf("expected only AAPL after import, got %v", symbols)
		}
	})

	t.Run("oversell_in_history_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

		history := ImportHistory{
			"AAPL": {
				{"Bought", "2024-01-05", "10", "185.50"},
				{"Sold", "2024-02-01", "15", "190.25"},
			},
		}
		_, err := svc.ImportTransactions(user.ID, portfolio.ID, history)
		testutil.AssertAppError(t, err, "INSUFFICIENT_SHARES")

		// Nothing may be written on a rejected import.
		var count int64
		db.Model(&models.Transaction{}).Where("portfolio_id = ?", portfolio.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no transactions stored, found %d", count)
		}
	})

	t.Run("malformed_rows_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

		cases := []struct {
			name string
			row  []string
		}{
			{"unknown_kind", []string{"Shorted", "2024-01-05", "10", "185.50"}},
			{"bad_date", []string{"Bought", "01/05/2024", "10", "185.50"}},
			{"bad_quantity", []string{"Bought", "2024-01-05", "ten", "185.50"}},
			{"negative_price", []string{"Bought", "2024-01-05", "10", "-185.50"}},
			{"missing_field", []string{"Bought", "2024-01-05", "10"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.ImportTransactions(user.ID, portfolio.ID, ImportHistory{"AAPL": {tc.row}})
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			})
		}
	})
}
