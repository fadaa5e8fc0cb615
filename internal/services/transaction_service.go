package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/ledger"
	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
)

// transactionService records and replays buy/sell transactions.
type transactionService struct {
	db               *gorm.DB
	portfolioService PortfolioServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, portfolioService PortfolioServicer) TransactionServicer {
	return &transactionService{db: db, portfolioService: portfolioService}
}

// RecordTransaction validates and appends a transaction, returning the stored
// row and the symbol's recomputed position. A sell that exceeds held shares
// is rejected before anything is written.
func (s *transactionService) RecordTransaction(
	userID, portfolioID, symbol string,
	kind models.TransactionKind,
	quantity float64,
	unitPrice int64,
	executedAt time.Time,
	notes string,
) (*models.Transaction, *SymbolPosition, error) {
	portfolio, err := s.portfolioService.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		return nil, nil, err
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if quantity <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}
	if unitPrice <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price must be positive")
	}
	if kind != models.TransactionBuy && kind != models.TransactionSell {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be buy or sell")
	}
	if executedAt.IsZero() {
		executedAt = time.Now()
	}

	entries, err := s.loadEntries(portfolio.ID, symbol)
	if err != nil {
		return nil, nil, err
	}

	candidate := ledger.Entry{
		Kind:       ledger.Kind(kind),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		ExecutedAt: executedAt,
	}
	position, err := ledger.Replay(append(entries, candidate))
	if err != nil {
		return nil, nil, mapLedgerError(err)
	}

	transaction := &models.Transaction{
		PortfolioID: portfolio.ID,
		Symbol:      symbol,
		Kind:        kind,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		ExecutedAt:  executedAt,
		Notes:       notes,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, &SymbolPosition{Symbol: symbol, Position: position}, nil
}

// RemoveTransaction deletes a transaction and recomputes the symbol's
// position from the shortened history. Removing a buy that a later sell
// depended on is rejected, keeping every stored history replayable.
func (s *transactionService) RemoveTransaction(userID, transactionID string) (*SymbolPosition, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Portfolio").First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transaction.Portfolio.UserID != userID {
		return nil, apperrors.ErrTransactionNotFound
	}

	entries, err := s.loadEntries(transaction.PortfolioID, transaction.Symbol)
	if err != nil {
		return nil, err
	}
	remaining := make([]ledger.Entry, 0, len(entries)-1)
	for _, e := range entries {
		if e.ID != transaction.ID {
			remaining = append(remaining, e)
		}
	}

	position, err := ledger.Replay(remaining)
	if err != nil {
		return nil, mapLedgerError(err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &SymbolPosition{Symbol: transaction.Symbol, Position: position}, nil
}

// GetPortfolioTransactions returns a paginated, filtered transaction list,
// newest first.
func (s *transactionService) GetPortfolioTransactions(userID, portfolioID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.portfolioService.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("portfolio_id = ?", portfolioID)
	if filter.Symbol != nil {
		base = base.Where("symbol = ?", strings.ToUpper(strings.TrimSpace(*filter.Symbol)))
	}
	if filter.Kind != nil {
		base = base.Where("kind = ?", *filter.Kind)
	}
	if filter.From != nil {
		base = base.Where("executed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("executed_at <= ?", *filter.To)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("executed_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetLedger returns every transaction with per-symbol running totals, in
// replay order. Pass an empty symbol for the whole portfolio.
func (s *transactionService) GetLedger(userID, portfolioID string, symbol string) ([]LedgerRow, error) {
	if _, err := s.portfolioService.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	query := s.db.Where("portfolio_id = ?", portfolioID)
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	var transactions []models.Transaction
	if err := query.Order("executed_at ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if symbol != "" && len(transactions) == 0 {
		return nil, apperrors.ErrSymbolNotFound
	}

	byID := make(map[string]models.Transaction, len(transactions))
	bySymbol := make(map[string][]ledger.Entry)
	for _, t := range transactions {
		byID[t.ID] = t
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], entryFrom(t))
	}

	rows := make([]LedgerRow, 0, len(transactions))
	for sym, entries := range bySymbol {
		running, err := ledger.RunningTotals(entries)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer,
				errors.Join(errors.New("stored history for "+sym+" failed replay"), err))
		}
		for _, r := range running {
			rows = append(rows, LedgerRow{
				Transaction:      byID[r.ID],
				SharesAfter:      r.SharesAfter,
				AverageCostAfter: r.AverageCostAfter,
				RealizedToDate:   r.RealizedToDate,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ExecutedAt.Equal(rows[j].ExecutedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].ExecutedAt.Before(rows[j].ExecutedAt)
	})
	return rows, nil
}

// loadEntries reads a symbol's history in replay order: executed_at ascending
// with the time-ordered id as the insertion-order tiebreak.
func (s *transactionService) loadEntries(portfolioID, symbol string) ([]ledger.Entry, error) {
	var transactions []models.Transaction
	if err := s.db.Where("portfolio_id = ? AND symbol = ?", portfolioID, symbol).
		Order("executed_at ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]ledger.Entry, len(transactions))
	for i, t := range transactions {
		entries[i] = entryFrom(t)
	}
	return entries, nil
}

// entryFrom converts a stored transaction into a ledger entry.
func entryFrom(t models.Transaction) ledger.Entry {
	return ledger.Entry{
		ID:         t.ID,
		Kind:       ledger.Kind(t.Kind),
		Quantity:   t.Quantity,
		UnitPrice:  t.UnitPrice,
		ExecutedAt: t.ExecutedAt,
	}
}

// mapLedgerError converts ledger sentinels into client-facing AppErrors.
func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientShares):
		return apperrors.ErrInsufficientShares
	case errors.Is(err, ledger.ErrInvalidEntry):
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
