// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches upper-case ticker symbols like AAPL, BRK.B, or BTC-USD.
var tickerRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,11}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("ticker", validateTicker)
	}
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell":
		return true
	}
	return false
}

// validateTicker accepts symbols in any case; handlers normalize to upper
// before they reach the services.
func validateTicker(fl validator.FieldLevel) bool {
	symbol := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return tickerRegex.MatchString(symbol)
}
