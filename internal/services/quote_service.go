package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/logger"
	"stocktracker/internal/marketdata"
	"stocktracker/internal/models"
	"stocktracker/internal/pagination"
)

// quoteService resolves prices from a market data source and keeps a history
// of recorded quotes in the database.
type quoteService struct {
	db     *gorm.DB
	source marketdata.Source
	ttl    time.Duration
}

// NewQuoteService creates a new QuoteServicer. ttl bounds how often a fresh
// fetch for a symbol is persisted as a new row.
func NewQuoteService(db *gorm.DB, source marketdata.Source, ttl time.Duration) QuoteServicer {
	return &quoteService{db: db, source: source, ttl: ttl}
}

// Resolve returns a price for each symbol it can. Live fetches win; symbols
// the source cannot serve fall back to the most recent recorded quote, and
// only symbols with neither end up in missing.
func (s *quoteService) Resolve(ctx context.Context, symbols []string) (map[string]int64, []string, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return map[string]int64{}, nil, nil
	}

	fetched, fetchErrs := s.source.FetchLatest(ctx, symbols)
	for _, fe := range fetchErrs {
		logger.Get().Warnw("live quote unavailable", "symbol", fe.Symbol, "source", s.source.Name(), "error", fe.Err)
	}

	stored, err := s.latestQuotes(symbols)
	if err != nil {
		return nil, nil, err
	}

	prices := make(map[string]int64, len(symbols))
	var missing []string
	now := time.Now()
	for _, symbol := range symbols {
		if price, ok := fetched[symbol]; ok {
			prices[symbol] = price
			if last, ok := stored[symbol]; !ok || now.Sub(last.RecordedAt) >= s.ttl {
				s.record(symbol, price, now)
			}
			continue
		}
		if last, ok := stored[symbol]; ok {
			prices[symbol] = last.Price
			continue
		}
		missing = append(missing, symbol)
	}
	return prices, missing, nil
}

// Refresh fetches fresh quotes and records every success, regardless of how
// recently a quote was stored.
func (s *quoteService) Refresh(ctx context.Context, symbols []string) (int, []string, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return 0, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one symbol is required")
	}

	fetched, fetchErrs := s.source.FetchLatest(ctx, symbols)
	failed := make([]string, 0, len(fetchErrs))
	for _, fe := range fetchErrs {
		failed = append(failed, fe.Symbol)
	}

	now := time.Now()
	stored := 0
	for _, symbol := range symbols {
		price, ok := fetched[symbol]
		if !ok {
			continue
		}
		if err := s.record(symbol, price, now); err == nil {
			stored++
		} else {
			failed = append(failed, symbol)
		}
	}
	return stored, failed, nil
}

// GetLatest returns the most recent recorded quote for a symbol.
func (s *quoteService) GetLatest(symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	var quote models.Quote
	err := s.db.Where("symbol = ?", symbol).Order("recorded_at DESC").First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrPriceUnavailable, "no recorded quote for "+symbol)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &quote, nil
}

// GetHistory returns recorded quotes for a symbol within [from, to], newest
// first. Zero bounds are open-ended.
func (s *quoteService) GetHistory(symbol string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.Quote], error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	page.Defaults()

	query := s.db.Model(&models.Quote{}).Where("symbol = ?", symbol)
	if !from.IsZero() {
		query = query.Where("recorded_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("recorded_at <= ?", to)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var quotes []models.Quote
	if err := query.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&quotes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(quotes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// latestQuotes loads the most recent recorded quote per symbol in one query.
func (s *quoteService) latestQuotes(symbols []string) (map[string]models.Quote, error) {
	subquery := s.db.Model(&models.Quote{}).
		Select("symbol, MAX(recorded_at) as max_recorded_at").
		Where("symbol IN ?", symbols).
		Group("symbol")

	var quotes []models.Quote
	err := s.db.Model(&models.Quote{}).
		Joins("JOIN (?) latest ON quotes.symbol = latest.symbol AND quotes.recorded_at = latest.max_recorded_at", subquery).
		Find(&quotes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	latest := make(map[string]models.Quote, len(quotes))
	for _, q := range quotes {
		latest[q.Symbol] = q
	}
	return latest, nil
}

func (s *quoteService) record(symbol string, price int64, at time.Time) error {
	quote := &models.Quote{Symbol: symbol, Price: price, RecordedAt: at}
	if err := s.db.Create(quote).Error; err != nil {
		logger.Get().Errorw("failed to record quote", "symbol", symbol, "error", err)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// normalizeSymbols uppercases, trims and de-duplicates while keeping order.
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}
