package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/ledger"
	"stocktracker/internal/models"
)

// positionService computes priced positions by replaying transaction
// histories and attaching quotes.
type positionService struct {
	db               *gorm.DB
	portfolioService PortfolioServicer
	quoteService     QuoteServicer
}

// NewPositionService creates a new PositionServicer.
func NewPositionService(db *gorm.DB, portfolioService PortfolioServicer, quoteService QuoteServicer) PositionServicer {
	return &positionService{db: db, portfolioService: portfolioService, quoteService: quoteService}
}

// GetPosition returns one symbol's position with market figures. A symbol
// the portfolio has never traded is a not-found, not an empty position.
func (s *positionService) GetPosition(ctx context.Context, userID, portfolioID, symbol string) (*PositionView, error) {
	positions, err := s.replayPortfolio(userID, portfolioID)
	if err != nil {
		return nil, err
	}

	for _, sp := range positions {
		if sp.Symbol != symbol {
			continue
		}
		prices, _, err := s.quoteService.Resolve(ctx, []string{symbol})
		if err != nil {
			return nil, err
		}
		view := buildPositionView(sp, prices)
		return &view, nil
	}
	return nil, apperrors.ErrSymbolNotFound
}

// GetPortfolioSummary replays every symbol in the portfolio and aggregates
// the priced positions. Symbols without a resolvable price still report
// shares and realized profit, but are excluded from the market totals.
func (s *positionService) GetPortfolioSummary(ctx context.Context, userID, portfolioID string) (*PortfolioSummary, error) {
	positions, err := s.replayPortfolio(userID, portfolioID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(positions))
	for _, sp := range positions {
		if sp.Position.Shares > 0 {
			symbols = append(symbols, sp.Symbol)
		}
	}

	var prices map[string]int64
	var missing []string
	if len(symbols) > 0 {
		prices, missing, err = s.quoteService.Resolve(ctx, symbols)
		if err != nil {
			return nil, err
		}
	}

	summary := &PortfolioSummary{
		Positions:     make([]PositionView, 0, len(positions)),
		MissingPrices: missing,
	}
	for _, sp := range positions {
		view := buildPositionView(sp, prices)
		summary.Positions = append(summary.Positions, view)

		summary.TotalRealized += view.RealizedProfit
		if view.MarketValue != nil {
			summary.TotalMarketValue += *view.MarketValue
			summary.TotalCostBasis += *view.CostBasis
			summary.TotalUnrealized += *view.UnrealizedProfit
		}
	}
	summary.TotalProfit = summary.TotalRealized + summary.TotalUnrealized
	if summary.TotalCostBasis > 0 {
		summary.GainLossPct = float64(summary.TotalUnrealized) / float64(summary.TotalCostBasis) * 100
	}
	return summary, nil
}

// replayPortfolio loads the portfolio's full history and replays it per
// symbol, returning positions sorted by symbol.
func (s *positionService) replayPortfolio(userID, portfolioID string) ([]SymbolPosition, error) {
	if _, err := s.portfolioService.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Where("portfolio_id = ?", portfolioID).
		Order("executed_at ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	bySymbol := make(map[string][]ledger.Entry)
	for _, t := range transactions {
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], entryFrom(t))
	}

	positions := make([]SymbolPosition, 0, len(bySymbol))
	for symbol, entries := range bySymbol {
		position, err := ledger.Replay(entries)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		positions = append(positions, SymbolPosition{Symbol: symbol, Position: position})
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Symbol < positions[j].Symbol })
	return positions, nil
}

// buildPositionView attaches market figures to a position when a price is
// available. Closed positions keep only their realized profit.
func buildPositionView(sp SymbolPosition, prices map[string]int64) PositionView {
	view := PositionView{
		Symbol:         sp.Symbol,
		Shares:         sp.Position.Shares,
		AverageCost:    sp.Position.AverageCost,
		RealizedProfit: sp.Position.RealizedProfit,
	}

	price, priced := prices[sp.Symbol]
	if sp.Position.Shares > 0 && !priced {
		view.PriceUnavailable = true
		return view
	}
	if sp.Position.Shares == 0 {
		return view
	}

	v := sp.Position.Valuate(price)
	view.MarketPrice = &v.MarketPrice
	view.MarketValue = &v.MarketValue
	view.CostBasis = &v.CostBasis
	view.UnrealizedProfit = &v.UnrealizedProfit
	view.TotalProfit = &v.TotalProfit
	view.GainLossPct = &v.GainLossPct
	return view
}
