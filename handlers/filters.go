package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deepak-dots/property-management-system/store"
)

// FilterController serves the distinct values the catalogue filter bar
// is built from.
type FilterController struct {
	store store.PropertyStore
}

func NewFilterController(s store.PropertyStore) *FilterController {
	return &FilterController{store: s}
}

func (fc *FilterController) GetCities(c echo.Context) error {
	cities, err := fc.store.DistinctCities(c.Request().Context())
	if err != nil {
		slog.Error("failed to fetch cities", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch cities"})
	}
	return c.JSON(http.StatusOK, cities)
}

func (fc *FilterController) GetBHKTypes(c echo.Context) error {
	bhkTypes, err := fc.store.DistinctBHKTypes(c.Request().Context())
	if err != nil {
		slog.Error("failed to fetch BHK types", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch BHK types"})
	}
	return c.JSON(http.StatusOK, bhkTypes)
}
