package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/ledger"
	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
)

// importDateLayout is the date format the original dashboard's JSON export used.
const importDateLayout = "2006-01-02"

// portfolioService handles portfolio-related business logic.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePortfolio creates an empty portfolio for the user.
func (s *portfolioService) CreatePortfolio(userID, name, description string) (*models.Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "portfolio name is required")
	}

	portfolio := &models.Portfolio{
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: description,
	}
	if err := s.db.Create(portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// GetUserPortfolios returns a paginated list of the user's portfolios.
func (s *portfolioService) GetUserPortfolios(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Portfolio{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var portfolios []models.Portfolio
	if err := base.Order("created_at ASC").Scopes(pagination.Paginate(page)).Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(portfolios, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPortfolioByID returns a portfolio if it belongs to the user.
func (s *portfolioService) GetPortfolioByID(userID, portfolioID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolio.UserID != userID {
		// Do not reveal that the portfolio exists.
		return nil, apperrors.ErrPortfolioNotFound
	}
	return &portfolio, nil
}

// DeletePortfolio removes a portfolio and its transaction history.
func (s *portfolioService) DeletePortfolio(userID, portfolioID string) error {
	portfolio, err := s.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.Transaction{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(portfolio).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	return err
}

// ImportTransactions replaces the portfolio's history with rows parsed from
// the original dashboard's JSON format. Every symbol's history is parsed and
// replayed before a single row is written, so a bad file leaves the portfolio
// untouched.
func (s *portfolioService) ImportTransactions(userID, portfolioID string, history ImportHistory) (int, error) {
	portfolio, err := s.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		return 0, err
	}

	var rows []models.Transaction
	for symbol, transactions := range history {
		parsed, err := parseImportedSymbol(symbol, transactions)
		if err != nil {
			return 0, err
		}
		rows = append(rows, parsed...)
	}

	// Validate each symbol's replay before touching the database. An oversell
	// in the file is a hard error, not a warning.
	bySymbol := make(map[string][]ledger.Entry)
	for _, row := range rows {
		bySymbol[row.Symbol] = append(bySymbol[row.Symbol], ledger.Entry{
			Kind:       ledger.Kind(row.Kind),
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
			ExecutedAt: row.ExecutedAt,
		})
	}
	for symbol, entries := range bySymbol {
		if _, err := ledger.Replay(entries); err != nil {
			return 0, importError(symbol, err)
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.Transaction{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		// Create rows one at a time so the time-ordered IDs preserve file
		// order for same-day transactions.
		for i := range rows {
			rows[i].PortfolioID = portfolio.ID
			if txErr := tx.Create(&rows[i]).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

// parseImportedSymbol converts one symbol's [action, date, shares, price]
// rows into transaction models.
func parseImportedSymbol(symbol string, transactions [][]string) ([]models.Transaction, error) {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if normalized == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "import contains an empty symbol")
	}

	rows := make([]models.Transaction, 0, len(transactions))
	for i, fields := range transactions {
		if len(fields) != 4 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s row %d: expected [action, date, shares, price]", normalized, i+1))
		}

		var kind models.TransactionKind
		switch strings.ToLower(strings.TrimSpace(fields[0])) {
		case "bought", "buy":
			kind = models.TransactionBuy
		case "sold", "sell":
			kind = models.TransactionSell
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s row %d: unknown action %q", normalized, i+1, fields[0]))
		}

		executedAt, err := time.Parse(importDateLayout, strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s row %d: invalid date %q", normalized, i+1, fields[1]))
		}

		quantity, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil || quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s row %d: invalid share count %q", normalized, i+1, fields[2]))
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil || price <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s row %d: invalid price %q", normalized, i+1, fields[3]))
		}

		rows = append(rows, models.Transaction{
			Symbol:     normalized,
			Kind:       kind,
			Quantity:   quantity,
			UnitPrice:  int64(math.Round(price * 100)),
			ExecutedAt: executedAt,
		})
	}
	return rows, nil
}

// importError maps a replay failure during import to a client error naming
// the offending symbol.
func importError(symbol string, err error) error {
	if errors.Is(err, ledger.ErrInsufficientShares) {
		return apperrors.WithMessage(apperrors.ErrInsufficientShares,
			fmt.Sprintf("imported history for %s sells more shares than it holds", symbol))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("imported history for %s is invalid", symbol))
}
