package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/store"
	"github.com/deepak-dots/property-management-system/utils"
)

// AccountController serves signup/login/profile for one account
// collection. The admin and user surfaces are two instances of it.
type AccountController struct {
	store  store.AccountStore
	tokens *utils.TokenIssuer
}

func NewAccountController(s store.AccountStore, tokens *utils.TokenIssuer) *AccountController {
	return &AccountController{store: s, tokens: tokens}
}

func (ac *AccountController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Name, email and password are required"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	now := time.Now()
	account := models.Account{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = ac.store.Create(c.Request().Context(), &account)
	if errors.Is(err, store.ErrEmailTaken) {
		return c.JSON(http.StatusConflict, map[string]string{"message": "Email already exists"})
	}
	if err != nil {
		slog.Error("failed to create account", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Account registered successfully"})
}

func (ac *AccountController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	account, err := ac.store.GetByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	}
	if err != nil {
		slog.Error("failed to look up account", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	if err := utils.CheckPassword(account.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	}

	token, err := ac.tokens.Generate(account)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User: models.AccountInfo{
			ID:    account.ID.Hex(),
			Name:  account.Name,
			Email: account.Email,
		},
	})
}

func (ac *AccountController) Profile(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	account, err := ac.store.GetByID(c.Request().Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Account not found"})
	}
	if err != nil {
		slog.Error("failed to fetch profile", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, account)
}
