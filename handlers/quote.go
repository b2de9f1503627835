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
)

type QuoteController struct {
	store store.QuoteStore
}

func NewQuoteController(s store.QuoteStore) *QuoteController {
	return &QuoteController{store: s}
}

func (qc *QuoteController) CreateQuote(c echo.Context) error {
	var req models.CreateQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if hasEmptyField(req.PropertyID, req.Name, req.Email, req.ContactNumber, req.Message) {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "All fields are required"})
	}

	quote := models.QuoteRequest{
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Message:       req.Message,
		CreatedAt:     time.Now(),
	}

	if err := qc.store.Create(c.Request().Context(), &quote); err != nil {
		slog.Error("failed to save quote", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Quote request submitted successfully",
		"quote":   quote,
	})
}

func (qc *QuoteController) GetAllQuotes(c echo.Context) error {
	quotes, err := qc.store.List(c.Request().Context())
	if err != nil {
		slog.Error("failed to fetch quotes", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, quotes)
}

func (qc *QuoteController) GetQuoteByID(c echo.Context) error {
	quote, err := qc.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Quote not found"})
	}
	if err != nil {
		slog.Error("failed to fetch quote", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, quote)
}

func (qc *QuoteController) DeleteQuote(c echo.Context) error {
	err := qc.store.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Quote not found"})
	}
	if err != nil {
		slog.Error("failed to delete quote", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Quote deleted successfully"})
}

func hasEmptyField(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
