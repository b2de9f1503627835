package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepak-dots/property-management-system/middleware"
	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/store"
	"github.com/deepak-dots/property-management-system/utils"
)

func newAuthTestEnv(t *testing.T) (*AccountController, *store.MemoryAccountStore, *utils.TokenIssuer) {
	t.Helper()

	s := store.NewMemoryAccountStore()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	return NewAccountController(s, tokens), s, tokens
}

func jsonRequest(t *testing.T, e *echo.Echo, method, target string, payload interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignupAndDuplicateEmail(t *testing.T) {
	controller, s, _ := newAuthTestEnv(t)
	e := echo.New()

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name: "Admin", Email: "Admin@Example.com", Password: "secret123",
	})
	require.NoError(t, controller.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := s.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	originalHash := stored.Password
	assert.NotEqual(t, "secret123", originalHash, "password must be stored hashed")

	// Second signup with the same address (different case) conflicts
	// and leaves the first account's hash untouched.
	c, rec = jsonRequest(t, e, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name: "Intruder", Email: "admin@example.com", Password: "other-password",
	})
	require.NoError(t, controller.Signup(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	stored, err = s.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.Password)
}

func TestSignupMissingFields(t *testing.T) {
	controller, _, _ := newAuthTestEnv(t)
	e := echo.New()

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Email: "admin@example.com",
	})
	require.NoError(t, controller.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	controller, _, tokens := newAuthTestEnv(t)
	e := echo.New()

	c, _ := jsonRequest(t, e, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name: "Admin", Email: "admin@example.com", Password: "secret123",
	})
	require.NoError(t, controller.Signup(c))

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "admin@example.com", Password: "secret123",
	})
	require.NoError(t, controller.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "admin@example.com", resp.User.Email)
	assert.Equal(t, "Admin", resp.User.Name)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	controller, _, _ := newAuthTestEnv(t)
	e := echo.New()

	c, _ := jsonRequest(t, e, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name: "Admin", Email: "admin@example.com", Password: "secret123",
	})
	require.NoError(t, controller.Signup(c))

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "admin@example.com", Password: "wrong",
	})
	require.NoError(t, controller.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	controller, _, _ := newAuthTestEnv(t)
	e := echo.New()

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "nobody@example.com", Password: "secret123",
	})
	require.NoError(t, controller.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileThroughMiddleware(t *testing.T) {
	controller, _, tokens := newAuthTestEnv(t)

	e := echo.New()
	e.GET("/api/auth/profile", controller.Profile, middleware.JWT(tokens.Verify))

	signup, _ := jsonRequest(t, e, http.MethodPost, "/api/auth/signup", models.SignupRequest{
		Name: "Admin", Email: "admin@example.com", Password: "secret123",
	})
	require.NoError(t, controller.Signup(signup))

	login, loginRec := jsonRequest(t, e, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email: "admin@example.com", Password: "secret123",
	})
	require.NoError(t, controller.Login(login))
	var loginResp models.LoginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginResp))

	// Without a token the middleware rejects.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// With the issued token the profile comes back without a password.
	req = httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Admin", body["name"])
	assert.NotContains(t, body, "password")
}
