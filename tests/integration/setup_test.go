package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stocktracker/internal/handlers"
	"stocktracker/internal/logger"
	"stocktracker/internal/marketdata"
	"stocktracker/internal/middleware"
	"stocktracker/internal/models"
	"stocktracker/internal/services"
	"stocktracker/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Quotes *fakeQuoteSource
}

// fakeQuoteSource stands in for the live quote provider.
type fakeQuoteSource struct {
	prices map[string]int64
}

func (f *fakeQuoteSource) Name() string { return "fake" }

func (f *fakeQuoteSource) FetchLatest(_ context.Context, symbols []string) (map[string]int64, []marketdata.FetchError) {
	fetched := make(map[string]int64)
	var failures []marketdata.FetchError
	for _, symbol := range symbols {
		if price, ok := f.prices[symbol]; ok {
			fetched[symbol] = price
			continue
		}
		failures = append(failures, marketdata.FetchError{Symbol: symbol, Err: marketdata.ErrPriceUnavailable})
	}
	return fetched, failures
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Portfolio{},
		&models.Transaction{},
		&models.Quote{},
		&models.PortfolioSnapshot{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	quotes := &fakeQuoteSource{prices: map[string]int64{}}

	// Services
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	transactionService := services.NewTransactionService(db, portfolioService)
	quoteService := services.NewQuoteService(db, quotes, time.Minute)
	positionService := services.NewPositionService(db, portfolioService, quoteService)
	snapshotService := services.NewSnapshotService(db, portfolioService, positionService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	positionHandler := handlers.NewPositionHandler(positionService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/profile", authHandler.GetProfile)

	portfolios := protected.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.POST("/:id/import", portfolioHandler.ImportTransactions)
	portfolios.POST("/:id/transactions", transactionHandler.RecordTransaction)
	portfolios.GET("/:id/transactions", transactionHandler.ListTransactions)
	portfolios.GET("/:id/ledger", transactionHandler.GetLedger)
	portfolios.GET("/:id/positions", positionHandler.ListPositions)
	portfolios.GET("/:id/positions/:symbol", positionHandler.GetPosition)
	portfolios.GET("/:id/summary", positionHandler.GetSummary)
	portfolios.POST("/:id/snapshots", snapshotHandler.RecordSnapshot)
	portfolios.GET("/:id/snapshots", snapshotHandler.ListSnapshots)

	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	quoteRoutes := protected.Group("/quotes")
	quoteRoutes.POST("/refresh", quoteHandler.RefreshQuotes)
	quoteRoutes.GET("/:symbol", quoteHandler.GetLatest)
	quoteRoutes.GET("/:symbol/history", quoteHandler.GetHistory)

	return &testApp{DB: db, Router: router, Quotes: quotes}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), user["id"].(string)
}

// createPortfolio creates a portfolio and returns its ID.
func (app *testApp) createPortfolio(t *testing.T, token, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/portfolios", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create portfolio failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	portfolio := result["portfolio"].(map[string]interface{})
	return portfolio["id"].(string)
}

// assertErrorCode checks the error envelope of a failed response.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got: %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
