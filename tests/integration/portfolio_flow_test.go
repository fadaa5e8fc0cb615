package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// TestPortfolioLifecycle walks the main flow: register, create a portfolio,
// record buys and sells, view the ledger, value the portfolio, and clean up.
func TestPortfolioLifecycle(t *testing.T) {
	app := setupApp(t)
	app.Quotes.prices["AAPL"] = 15000

	token, _ := app.registerUser(t, "trader@example.com", "password123")
	portfolioID := app.createPortfolio(t, token, "Growth")

	// Two buys at different prices.
	rec := app.request("POST", "/api/v1/portfolios/"+portfolioID+"/transactions",
		`{"symbol":"AAPL","kind":"buy","quantity":10,"unit_price":10000,"executed_at":"2024-01-05"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first buy failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/portfolios/"+portfolioID+"/transactions",
		`{"symbol":"AAPL","kind":"buy","quantity":10,"unit_price":12000,"executed_at":"2024-01-10"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second buy failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	position := result["position"].(map[string]interface{})["position"].(map[string]interface{})
	if position["average_cost"].(float64) != 11000 {
		t.Errorf("expected average cost 11000 after two buys, got %v", position["average_cost"])
	}

	// Sell realizes profit against the average cost.
	rec = app.request("POST", "/api/v1/portfolios/"+portfolioID+"/transactions",
		`{"symbol":"AAPL","kind":"sell","quantity":5,"unit_price":13000,"executed_at":"2024-02-01"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("sell failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	position = result["position"].(map[string]interface{})["position"].(map[string]interface{})
	if position["realized_profit"].(float64) != 10000 {
		t.Errorf("expected realized profit 10000, got %v", position["realized_profit"])
	}

	// Overselling is rejected.
	rec = app.request("POST", "/api/v1/portfolios/"+portfolioID+"/transactions",
		`{"symbol":"AAPL","kind":"sell","quantity":100,"unit_price":13000}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on oversell, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "INSUFFICIENT_SHARES")

	// Ledger shows running totals in replay order.
	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID+"/ledger?symbol=AAPL", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("ledger failed: %d %s", rec.Code, rec.Body.String())
	}
	ledgerRows := parseJSON(t, rec)["ledger"].([]interface{})
	if len(ledgerRows) != 3 {
		t.Fatalf("expected 3 ledger rows, got %d", len(ledgerRows))
	}
	last := ledgerRows[2].(map[string]interface{})
	if last["shares_after"].(float64) != 15 {
		t.Errorf("expected 15 shares after final row, got %v", last["shares_after"])
	}

	// Summary values the open position at the quoted price.
	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID+"/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	// 15 shares at 15000
	if summary["total_market_value"].(float64) != 225000 {
		t.Errorf("expected market value 225000, got %v", summary["total_market_value"])
	}
	// 15 * (15000 - 11000) unrealized + 10000 realized
	if summary["total_profit"].(float64) != 70000 {
		t.Errorf("expected total profit 70000, got %v", summary["total_profit"])
	}

	// Delete the portfolio.
	rec = app.request("DELETE", "/api/v1/portfolios/"+portfolioID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete portfolio failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

// TestRemoveTransactionRecomputes verifies deletion replays the remaining
// history and rejects removals that would break it.
func TestRemoveTransactionRecomputes(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "remover@example.com", "password123")
	portfolioID := app.createPortfolio(t, token, "Main")

	rec := app.request("POST", "/api/v1/portfolios/"+portfolioID+"/transactions",
		`{"symbol":"MSFT","kind":"buy","quantity":10,"unit_price":30000,"executed_at":"2024-01-05"}`, token)
	buyID := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/portfolios/"+portfolioID+"/transactions",
		`{"symbol":"MSFT","kind":"sell","quantity":5,"unit_price":35000,"executed_at":"2024-02-01"}`, token)
	sellID := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	// Removing the buy would leave the sell overselling.
	rec = app.request("DELETE", "/api/v1/transactions/"+buyID, "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 removing load-bearing buy, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "INSUFFICIENT_SHARES")

	// Removing the sell rolls realized profit back.
	rec = app.request("DELETE", "/api/v1/transactions/"+sellID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove sell failed: %d %s", rec.Code, rec.Body.String())
	}
	position := parseJSON(t, rec)["position"].(map[string]interface{})["position"].(map[string]interface{})
	if position["shares"].(float64) != 10 {
		t.Errorf("expected 10 shares after removal, got %v", position["shares"])
	}
	if position["realized_profit"].(float64) != 0 {
		t.Errorf("expected realized profit 0 after removal, got %v", position["realized_profit"])
	}
}

// TestImportAndSnapshotFlow imports an exported history, checks positions,
// and records a snapshot.
func TestImportAndSnapshotFlow(t *testing.T) {
	app := setupApp(t)
	app.Quotes.prices["AAPL"] = 19000

	token, _ := app.registerUser(t, "importer@example.com", "password123")
	portfolioID := app.createPortfolio(t, token, "Imported")

	rec := app.request("POST", "/api/v1/portfolios/"+portfolioID+"/import",
		`{"AAPL":[["Bought","2024-01-05","10","185.50"],["Sold","2024-02-01","4","190.25"]]}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("import failed: %d %s", rec.Code, rec.Body.String())
	}
	if imported := parseJSON(t, rec)["imported"].(float64); imported != 2 {
		t.Errorf("expected 2 imported transactions, got %v", imported)
	}

	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID+"/positions/AAPL", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get position failed: %d %s", rec.Code, rec.Body.String())
	}
	position := parseJSON(t, rec)["position"].(map[string]interface{})
	if position["shares"].(float64) != 6 {
		t.Errorf("expected 6 shares after import, got %v", position["shares"])
	}

	rec = app.request("POST", "/api/v1/portfolios/"+portfolioID+"/snapshots",
		`{"recorded_at":"2024-03-01"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("snapshot failed: %d %s", rec.Code, rec.Body.String())
	}
	snapshot := parseJSON(t, rec)["snapshot"].(map[string]interface{})
	// 6 shares at 19000
	if snapshot["market_value"].(float64) != 114000 {
		t.Errorf("expected snapshot market value 114000, got %v", snapshot["market_value"])
	}

	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID+"/snapshots", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list snapshots failed: %d %s", rec.Code, rec.Body.String())
	}
}

// TestAuthBoundaries covers unauthenticated access and cross-user isolation.
func TestAuthBoundaries(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/portfolios", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	ownerToken, _ := app.registerUser(t, "owner@example.com", "password123")
	otherToken, _ := app.registerUser(t, "other@example.com", "password123")
	portfolioID := app.createPortfolio(t, ownerToken, "Private")

	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's portfolio, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "PORTFOLIO_NOT_FOUND")

	rec = app.request("POST", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID),
		`{"symbol":"AAPL","kind":"buy","quantity":1,"unit_price":10000}`, otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 recording into other user's portfolio, got %d", rec.Code)
	}
}

// TestRefreshTokenFlow logs in, rotates the token pair, and checks that the
// superseded refresh token no longer works.
func TestRefreshTokenFlow(t *testing.T) {
	app := setupApp(t)

	body := `{"email":"jamie@example.com","password":"password123","first_name":"Jamie","last_name":"Doe"}`
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	firstRefresh := parseJSON(t, rec)["refresh_token"].(string)

	// A refresh token is not an access token.
	rec = app.request("GET", "/api/v1/portfolios", "", firstRefresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 using refresh token as bearer, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, firstRefresh), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	newAccess := result["access_token"].(string)

	rec = app.request("GET", "/api/v1/auth/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected refreshed access token to work, got %d", rec.Code)
	}

	// Rotation revoked the first refresh token.
	rec = app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, firstRefresh), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 reusing rotated refresh token, got %d", rec.Code)
	}
}
