package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "stocktracker/internal/errors"
	"stocktracker/internal/middleware"
	"stocktracker/internal/models"
	"stocktracker/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	attemptLoginFn          func(email, password string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	storeRefreshTokenHashFn func(userID, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

// --- test helpers ---

const testUserID = "0198c6a1-0000-7000-8000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.Refresh)
	r.GET("/auth/profile", injectUserID(testUserID), handler.GetProfile)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, firstName, lastName string) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: testUserID},
					Email:     email,
					FirstName: firstName,
					LastName:  lastName,
				}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123","first_name":"Jamie","last_name":"Doe"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["access_token"] == "" {
			t.Error("expected non-empty access_token")
		}
		if result["refresh_token"] == nil || result["refresh_token"] == "" {
			t.Error("expected non-empty refresh_token")
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
	})

	t.Run("stores refresh token hash", func(t *testing.T) {
		var storedHash string
		userSvc := &mockUserService{
			createUserFn: func(email, _, _, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
			storeRefreshTokenHashFn: func(_ string, hash string) error {
				storedHash = hash
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if len(storedHash) != 64 {
			t.Errorf("expected SHA-256 hex digest (64 chars), got %d chars", len(storedHash))
		}
	})

	t.Run("returns 500 when token storage fails", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, _, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
			storeRefreshTokenHashFn: func(_, _ string) error {
				return fmt.Errorf("db connection lost")
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["access_token"] == "" {
			t.Error("expected non-empty access_token")
		}
		if result["refresh_token"] == nil || result["refresh_token"] == "" {
			t.Error("expected non-empty refresh_token")
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/login",
			`{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	user := &models.User{Base: models.Base{ID: testUserID}, Email: "test@example.com"}

	t.Run("returns 200 with rotated pair", func(t *testing.T) {
		refreshToken, err := middleware.GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to sign refresh token: %v", err)
		}

		var storedHash string
		userSvc := &mockUserService{
			getUserByIDFn: func(_ string) (*models.User, error) { return user, nil },
			getRefreshTokenHashFn: func(_ string) (string, error) {
				return middleware.HashToken(refreshToken), nil
			},
			storeRefreshTokenHashFn: func(_ string, hash string) error {
				storedHash = hash
				return nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/refresh",
			fmt.Sprintf(`{"refresh_token":%q}`, refreshToken))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["access_token"] == "" {
			t.Error("expected non-empty access_token")
		}
		newRefresh, _ := result["refresh_token"].(string)
		if newRefresh == "" {
			t.Fatal("expected non-empty refresh_token")
		}
		if storedHash != middleware.HashToken(newRefresh) {
			t.Error("stored hash does not match the newly issued refresh token")
		}
	})

	t.Run("returns 401 on malformed token", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/auth/refresh", `{"refresh_token":"not-a-jwt"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("returns 401 when an access token is presented", func(t *testing.T) {
		accessToken, err := middleware.GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to sign access token: %v", err)
		}
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/auth/refresh",
			fmt.Sprintf(`{"refresh_token":%q}`, accessToken))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 401 when the token was superseded", func(t *testing.T) {
		oldToken, err := middleware.GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to sign refresh token: %v", err)
		}
		userSvc := &mockUserService{
			getRefreshTokenHashFn: func(_ string) (string, error) {
				// A later login rotated the stored hash.
				return middleware.HashToken("a-newer-token"), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, "POST", "/auth/refresh",
			fmt.Sprintf(`{"refresh_token":%q}`, oldToken))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("returns 400 on missing token", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/auth/refresh", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
