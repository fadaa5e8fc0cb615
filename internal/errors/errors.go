// Package errors provides the structured error type used across the
// StockTracker API. Service-layer code returns AppError values so handlers can
// produce consistent JSON responses without leaking internal details.
package errors

import "net/http"

// AppError is a structured application error carrying a stable error code,
// a client-safe message, the HTTP status to respond with, and an optional
// wrapped internal error for logging.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{Code: sentinel.Code, Message: sentinel.Message, StatusCode: sentinel.StatusCode, Internal: internal}
}

// WithMessage creates a new AppError with a custom client-facing message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{Code: sentinel.Code, Message: message, StatusCode: sentinel.StatusCode, Internal: sentinel.Internal}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Portfolio and ledger errors.
var (
	ErrPortfolioNotFound   = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInsufficientShares  = &AppError{Code: "INSUFFICIENT_SHARES", Message: "Sell quantity exceeds held shares", StatusCode: http.StatusBadRequest}
)

// Market data errors.
var (
	ErrPriceUnavailable = &AppError{Code: "PRICE_UNAVAILABLE", Message: "No market price available for this symbol", StatusCode: http.StatusBadGateway}
	ErrSymbolNotFound   = &AppError{Code: "SYMBOL_NOT_FOUND", Message: "Symbol not found in this portfolio", StatusCode: http.StatusNotFound}
)
