package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deepak-dots/property-management-system/handlers"
)

// Deps carries the controllers and the auth middleware into route
// registration, so nothing here depends on package-level state.
type Deps struct {
	Properties *handlers.PropertyController
	Quotes     *handlers.QuoteController
	AdminAuth  *handlers.AccountController
	UserAuth   *handlers.AccountController
	Filters    *handlers.FilterController
	Auth       echo.MiddlewareFunc
	UploadsDir string
}

func Register(e *echo.Echo, d Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Property API running")
	})
	e.GET("/health", handlers.HealthCheck)

	e.Static("/uploads", d.UploadsDir)

	properties := e.Group("/api/properties")
	properties.GET("", d.Properties.ListProperties)
	properties.GET("/:id", d.Properties.GetProperty)
	properties.GET("/:id/related", d.Properties.GetRelatedProperties)
	properties.POST("", d.Properties.CreateProperty, d.Auth)
	properties.PUT("/:id", d.Properties.UpdateProperty, d.Auth)
	properties.POST("/:id/duplicate", d.Properties.DuplicateProperty, d.Auth)
	properties.DELETE("/:id", d.Properties.DeleteProperty, d.Auth)

	quotes := e.Group("/api/quotes")
	quotes.POST("", d.Quotes.CreateQuote)
	quotes.GET("", d.Quotes.GetAllQuotes, d.Auth)
	quotes.GET("/:id", d.Quotes.GetQuoteByID, d.Auth)
	quotes.DELETE("/:id", d.Quotes.DeleteQuote, d.Auth)

	admin := e.Group("/api/auth")
	admin.POST("/signup", d.AdminAuth.Signup)
	admin.POST("/login", d.AdminAuth.Login)
	admin.GET("/profile", d.AdminAuth.Profile, d.Auth)

	user := e.Group("/api/user")
	user.POST("/signup", d.UserAuth.Signup)
	user.POST("/login", d.UserAuth.Login)
	user.GET("/profile", d.UserAuth.Profile, d.Auth)

	filters := e.Group("/api/filters")
	filters.GET("/cities", d.Filters.GetCities)
	filters.GET("/bhkTypes", d.Filters.GetBHKTypes)
}
