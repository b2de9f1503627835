package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/store"
)

func TestCreateQuoteRequiresAllFields(t *testing.T) {
	controller := NewQuoteController(store.NewMemoryQuoteStore())
	e := echo.New()

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/quotes", models.CreateQuoteRequest{
		PropertyID: "65f000000000000000000000",
		Name:       "Visitor",
		Email:      "v@example.com",
		// contactNumber and message missing
	})
	require.NoError(t, controller.CreateQuote(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteLifecycle(t *testing.T) {
	s := store.NewMemoryQuoteStore()
	controller := NewQuoteController(s)
	e := echo.New()

	c, rec := jsonRequest(t, e, http.MethodPost, "/api/quotes", models.CreateQuoteRequest{
		PropertyID:    "65f000000000000000000000",
		Name:          "Visitor",
		Email:         "v@example.com",
		ContactNumber: "9999999999",
		Message:       "Interested in a visit",
	})
	require.NoError(t, controller.CreateQuote(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Message string              `json:"message"`
		Quote   models.QuoteRequest `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.Quote.ID.IsZero())
	assert.False(t, created.Quote.CreatedAt.IsZero())

	// List is always a bare array.
	c, rec = jsonRequest(t, e, http.MethodGet, "/api/quotes", nil)
	require.NoError(t, controller.GetAllQuotes(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var quotes []models.QuoteRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, "Visitor", quotes[0].Name)

	c, rec = jsonRequest(t, e, http.MethodGet, "/api/quotes/"+created.Quote.ID.Hex(), nil)
	c.SetParamNames("id")
	c.SetParamValues(created.Quote.ID.Hex())
	require.NoError(t, controller.GetQuoteByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = jsonRequest(t, e, http.MethodDelete, "/api/quotes/"+created.Quote.ID.Hex(), nil)
	c.SetParamNames("id")
	c.SetParamValues(created.Quote.ID.Hex())
	require.NoError(t, controller.DeleteQuote(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = jsonRequest(t, e, http.MethodDelete, "/api/quotes/"+created.Quote.ID.Hex(), nil)
	c.SetParamNames("id")
	c.SetParamValues(created.Quote.ID.Hex())
	require.NoError(t, controller.DeleteQuote(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteNotFound(t *testing.T) {
	controller := NewQuoteController(store.NewMemoryQuoteStore())
	e := echo.New()

	c, rec := jsonRequest(t, e, http.MethodGet, "/api/quotes/65f000000000000000000000", nil)
	c.SetParamNames("id")
	c.SetParamValues("65f000000000000000000000")
	require.NoError(t, controller.GetQuoteByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
