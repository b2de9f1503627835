package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/lmittmann/tint"

	"github.com/deepak-dots/property-management-system/config"
	"github.com/deepak-dots/property-management-system/handlers"
	"github.com/deepak-dots/property-management-system/middleware"
	"github.com/deepak-dots/property-management-system/routes"
	"github.com/deepak-dots/property-management-system/store"
	"github.com/deepak-dots/property-management-system/uploads"
	"github.com/deepak-dots/property-management-system/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := store.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())
	slog.Info("mongodb connected")

	db := client.Database(cfg.Mongo.Database)
	propertyStore := store.NewMongoPropertyStore(db.Collection("properties"))
	quoteStore := store.NewMongoQuoteStore(db.Collection("quotes"))
	adminStore := store.NewMongoAccountStore(db.Collection("admins"))
	userStore := store.NewMongoAccountStore(db.Collection("users"))

	if err := adminStore.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create admin indexes", "error", err)
		os.Exit(1)
	}
	if err := userStore.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create user indexes", "error", err)
		os.Exit(1)
	}

	assets, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		slog.Error("failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	cache := utils.NewCache(cfg.Redis.Addr, cfg.Redis.Password)
	if cache != nil {
		slog.Info("redis cache enabled", "addr", cfg.Redis.Addr)
	}

	tokens := utils.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	routes.Register(e, routes.Deps{
		Properties: handlers.NewPropertyController(propertyStore, assets, cache, cfg.App.CascadeDeleteImages),
		Quotes:     handlers.NewQuoteController(quoteStore),
		AdminAuth:  handlers.NewAccountController(adminStore, tokens),
		UserAuth:   handlers.NewAccountController(userStore, tokens),
		Filters:    handlers.NewFilterController(propertyStore),
		Auth:       middleware.JWT(tokens.Verify),
		UploadsDir: assets.Dir(),
	})

	slog.Info("server starting", "port", cfg.Server.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
