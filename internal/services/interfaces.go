package services

import (
	"context"
	"time"

	"stocktracker/internal/ledger"
	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ImportHistory is the transaction-list format the original dashboard
// exported: symbol -> rows of [action, date, shares, price], e.g.
//
//	{"AAPL": [["Bought", "2024-01-05", "10", "185.50"], ...]}
type ImportHistory map[string][][]string

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	CreatePortfolio(userID, name, description string) (*models.Portfolio, error)
	GetUserPortfolios(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error)
	GetPortfolioByID(userID, portfolioID string) (*models.Portfolio, error)
	DeletePortfolio(userID, portfolioID string) error
	// ImportTransactions replaces the portfolio's history with the imported
	// one. The whole file is validated before any row is written.
	ImportTransactions(userID, portfolioID string, history ImportHistory) (int, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Symbol *string
	Kind   *models.TransactionKind
	From   *time.Time
	To     *time.Time
}

// SymbolPosition pairs a replayed position with its symbol.
type SymbolPosition struct {
	Symbol   string          `json:"symbol"`
	Position ledger.Position `json:"position"`
}

// LedgerRow is one transaction annotated with the per-symbol running totals
// after applying it. This is the flat view export consumers turn into one row
// per transaction.
type LedgerRow struct {
	models.Transaction
	SharesAfter      float64 `json:"shares_after"`
	AverageCostAfter float64 `json:"average_cost_after"`
	RealizedToDate   int64   `json:"realized_to_date"`
}

// TransactionServicer defines the contract for recording and replaying
// buy/sell transactions.
type TransactionServicer interface {
	RecordTransaction(userID, portfolioID, symbol string, kind models.TransactionKind, quantity float64, unitPrice int64, executedAt time.Time, notes string) (*models.Transaction, *SymbolPosition, error)
	RemoveTransaction(userID, transactionID string) (*SymbolPosition, error)
	GetPortfolioTransactions(userID, portfolioID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetLedger(userID, portfolioID string, symbol string) ([]LedgerRow, error)
}

// QuoteServicer resolves and records market prices.
type QuoteServicer interface {
	// Resolve returns the current price in cents for each symbol it can,
	// falling back to the most recent recorded quote when the upstream
	// fails. Unresolvable symbols are returned in missing.
	Resolve(ctx context.Context, symbols []string) (prices map[string]int64, missing []string, err error)
	// Refresh fetches and records fresh quotes, returning the symbols that
	// could not be fetched.
	Refresh(ctx context.Context, symbols []string) (stored int, failed []string, err error)
	GetLatest(symbol string) (*models.Quote, error)
	GetHistory(symbol string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.Quote], error)
}

// PositionView is a per-symbol position with market figures attached. Money
// fields are cents. When no price is available, PriceUnavailable is set and
// the market/unrealized fields are omitted rather than reported as zero.
type PositionView struct {
	Symbol           string   `json:"symbol"`
	Shares           float64  `json:"shares"`
	AverageCost      float64  `json:"average_cost"`
	RealizedProfit   int64    `json:"realized_profit"`
	PriceUnavailable bool     `json:"price_unavailable,omitempty"`
	MarketPrice      *int64   `json:"market_price,omitempty"`
	MarketValue      *int64   `json:"market_value,omitempty"`
	CostBasis        *int64   `json:"cost_basis,omitempty"`
	UnrealizedProfit *int64   `json:"unrealized_profit,omitempty"`
	TotalProfit      *int64   `json:"total_profit,omitempty"`
	GainLossPct      *float64 `json:"gain_loss_pct,omitempty"`
}

// PortfolioSummary aggregates positions across a portfolio. Totals cover only
// symbols with a resolvable price; MissingPrices flags the rest, whose
// realized profit is still included in TotalRealized. GainLossPct is the
// unrealized gain over cost basis, matching the per-position figure.
type PortfolioSummary struct {
	Positions        []PositionView `json:"positions"`
	TotalMarketValue int64          `json:"total_market_value"`
	TotalCostBasis   int64          `json:"total_cost_basis"`
	TotalRealized    int64          `json:"total_realized"`
	TotalUnrealized  int64          `json:"total_unrealized"`
	TotalProfit      int64          `json:"total_profit"`
	GainLossPct      float64        `json:"gain_loss_pct"`
	MissingPrices    []string       `json:"missing_prices,omitempty"`
}

// PositionServicer computes priced positions and portfolio aggregates.
type PositionServicer interface {
	GetPosition(ctx context.Context, userID, portfolioID, symbol string) (*PositionView, error)
	GetPortfolioSummary(ctx context.Context, userID, portfolioID string) (*PortfolioSummary, error)
}

// SnapshotServicer records and serves dated portfolio valuations.
type SnapshotServicer interface {
	RecordSnapshot(ctx context.Context, userID, portfolioID string, recordedAt time.Time) (*models.PortfolioSnapshot, error)
	GetSnapshots(userID, portfolioID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.PortfolioSnapshot], error)
}
