package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	yahooBaseURL  = "https://query1.finance.yahoo.com/v7/finance/quote"
	yahooBatchMax = 50
	yahooUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooQuoteResponse is the top-level Yahoo Finance API response.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuoteResult `json:"result"`
		Error  *json.RawMessage   `json:"error"`
	} `json:"quoteResponse"`
}

// yahooQuoteResult is a single quote result from Yahoo Finance.
type yahooQuoteResult struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

type cachedQuote struct {
	price   int64
	fetched time.Time
}

// YahooSource fetches quotes from the Yahoo Finance v7 batch endpoint and
// caches them for a short TTL so a dashboard refreshing every few seconds
// does not hammer the upstream.
type YahooSource struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	ttl        time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

// NewYahooSource creates a Yahoo Finance quote source. A ttl of zero disables
// caching.
func NewYahooSource(httpClient *http.Client, ttl time.Duration) *YahooSource {
	return &YahooSource{
		httpClient: httpClient,
		baseURL:    yahooBaseURL,
		ttl:        ttl,
		cache:      make(map[string]cachedQuote),
	}
}

// Name returns the provider's display name.
func (s *YahooSource) Name() string { return "Yahoo Finance" }

// FetchLatest fetches current prices for the given symbols, serving fresh
// cache hits without a network round trip.
func (s *YahooSource) FetchLatest(ctx context.Context, symbols []string) (map[string]int64, []FetchError) {
	prices := make(map[string]int64, len(symbols))
	var misses []string

	s.mu.RLock()
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		if c, ok := s.cache[symbol]; ok && time.Since(c.fetched) < s.ttl {
			prices[symbol] = c.price
		} else {
			misses = append(misses, symbol)
		}
	}
	s.mu.RUnlock()

	var fetchErrors []FetchError
	now := time.Now()

	for i := 0; i < len(misses); i += yahooBatchMax {
		end := min(i+yahooBatchMax, len(misses))
		batch := misses[i:end]

		fetched, errs := s.fetchBatch(ctx, batch)
		fetchErrors = append(fetchErrors, errs...)

		s.mu.Lock()
		for symbol, price := range fetched {
			prices[symbol] = price
			s.cache[symbol] = cachedQuote{price: price, fetched: now}
		}
		s.mu.Unlock()
	}

	return prices, fetchErrors
}

// fetchBatch fetches prices for a single batch of symbols.
func (s *YahooSource) fetchBatch(ctx context.Context, symbols []string) (map[string]int64, []FetchError) {
	url := s.baseURL + "?symbols=" + strings.Join(symbols, ",")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, batchErrors(symbols, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, batchErrors(symbols, fmt.Errorf("http request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, batchErrors(symbols, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var quoteResp yahooQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return nil, batchErrors(symbols, fmt.Errorf("decoding response: %w", err))
	}

	resultMap := make(map[string]float64, len(quoteResp.QuoteResponse.Result))
	for _, r := range quoteResp.QuoteResponse.Result {
		resultMap[strings.ToUpper(r.Symbol)] = r.RegularMarketPrice
	}

	prices := make(map[string]int64, len(symbols))
	var fetchErrors []FetchError

	for _, symbol := range symbols {
		price, found := resultMap[symbol]
		if !found {
			fetchErrors = append(fetchErrors, FetchError{
				Symbol: symbol,
				Err:    fmt.Errorf("symbol %s not in response: %w", symbol, ErrPriceUnavailable),
			})
			continue
		}
		if price <= 0 {
			fetchErrors = append(fetchErrors, FetchError{
				Symbol: symbol,
				Err:    fmt.Errorf("non-positive price for %s: %w", symbol, ErrPriceUnavailable),
			})
			continue
		}
		prices[symbol] = int64(math.Round(price * 100))
	}

	return prices, fetchErrors
}

// batchErrors marks every symbol in a failed batch as unavailable.
func batchErrors(symbols []string, err error) []FetchError {
	errs := make([]FetchError, len(symbols))
	for i, symbol := range symbols {
		errs[i] = FetchError{Symbol: symbol, Err: fmt.Errorf("%w: %w", ErrPriceUnavailable, err)}
	}
	return errs
}
