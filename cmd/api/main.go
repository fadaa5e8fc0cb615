package main

import (
	"fmt"
	"net/http"
	"os"

	"stocktracker/internal/config"
	"stocktracker/internal/database"
	"stocktracker/internal/handlers"
	"stocktracker/internal/logger"
	"stocktracker/internal/marketdata"
	"stocktracker/internal/middleware"
	"stocktracker/internal/services"
	"stocktracker/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stocktracker/internal/docs" // Import swagger docs
)

// @title           StockTracker API
// @version         1.0
// @description     StockTracker keeps per-portfolio stock transaction ledgers with average-cost accounting, realized and unrealized profit, and market quotes.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	quoteSource := marketdata.NewYahooSource(&http.Client{Timeout: appConfig.QuoteTimeout}, appConfig.QuoteTTL)

	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	transactionService := services.NewTransactionService(db, portfolioService)
	quoteService := services.NewQuoteService(db, quoteSource, appConfig.QuoteTTL)
	positionService := services.NewPositionService(db, portfolioService, quoteService)
	snapshotService := services.NewSnapshotService(db, portfolioService, positionService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	positionHandler := handlers.NewPositionHandler(positionService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/auth/profile", authHandler.GetProfile)

	// Portfolio routes
	portfolios := protected.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.POST("/:id/import", portfolioHandler.ImportTransactions)

	// Transactions and the running-totals ledger
	portfolios.POST("/:id/transactions", transactionHandler.RecordTransaction)
	portfolios.GET("/:id/transactions", transactionHandler.ListTransactions)
	portfolios.GET("/:id/ledger", transactionHandler.GetLedger)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	// Positions and valuation
	portfolios.GET("/:id/positions", positionHandler.ListPositions)
	portfolios.GET("/:id/positions/:symbol", positionHandler.GetPosition)
	portfolios.GET("/:id/summary", positionHandler.GetSummary)

	// Snapshots
	portfolios.POST("/:id/snapshots", snapshotHandler.RecordSnapshot)
	portfolios.GET("/:id/snapshots", snapshotHandler.ListSnapshots)

	// Quotes
	quotes := protected.Group("/quotes")
	quotes.POST("/refresh", quoteHandler.RefreshQuotes)
	quotes.GET("/:symbol", quoteHandler.GetLatest)
	quotes.GET("/:symbol/history", quoteHandler.GetHistory)

	log.Infof("Starting StockTracker API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
