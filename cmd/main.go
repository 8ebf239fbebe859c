package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stockview/internal/apiclient"
	"stockview/internal/config"
	"stockview/internal/export"
	"stockview/internal/forms"
	"stockview/internal/handlers"
	"stockview/internal/middleware"
	"stockview/internal/notify"
	"stockview/internal/session"
	"stockview/internal/store"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Token store: Redis when configured, in-process otherwise.
	var tokenStore session.TokenStore
	if cfg.RedisAddr != "" {
		tokenStore = session.NewRedisTokenStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	} else {
		tokenStore = session.NewMemoryTokenStore()
		log.Printf("WARNING: REDIS_ADDR not set, session token will not survive restarts")
	}

	sessions := session.NewController(ctx, tokenStore)
	log.Printf("Session restored from storage: %s", sessions.State())

	api := apiclient.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeoutSec)*time.Second)
	inventory := store.New(api)
	flash := notify.NewFlashQueue()

	addForm := forms.NewAddItemForm(inventory, flash)
	editForm := forms.NewEditItemForm(inventory, flash)
	loginForm := forms.NewLoginForm(api, sessions, flash)
	registerForm := forms.NewRegisterForm(api, flash)

	// Export archive: optional, enabled by MINIO_ENDPOINT.
	var archive export.ArchiveStore
	if cfg.MinioEndpoint != "" {
		var err error
		archive, err = export.NewMinioArchive(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize export archive: %v", err)
		}
	}

	homeHandlers := handlers.NewHomeHandlers(inventory, sessions, addForm, editForm, flash, archive)
	authHandlers := handlers.NewAuthHandlers(sessions, inventory, loginForm, registerForm, flash)

	e := echo.New()
	e.Renderer = handlers.NewTemplateRenderer()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", handlers.HealthCheck)

	// Auth routes (no session required)
	e.GET("/login", authHandlers.LoginPage)
	e.POST("/login", authHandlers.Login)
	e.GET("/register", authHandlers.RegisterPage)
	e.POST("/register", authHandlers.Register)
	e.POST("/logout", authHandlers.Logout)

	// Gated routes: the session controller decides which view renders.
	gate := middleware.NewSessionGate(sessions)
	home := e.Group("", gate.RequireAuthenticated())
	home.GET("/", homeHandlers.Home)
	home.POST("/items", homeHandlers.AddItem)
	home.POST("/items/:id", homeHandlers.UpdateItem)
	home.POST("/items/:id/delete", homeHandlers.DeleteItem)
	home.POST("/inventory/sort", homeHandlers.SortByQuantity)
	home.POST("/inventory/sort/reset", homeHandlers.ResetSort)
	home.GET("/inventory/export", homeHandlers.ExportPDF)

	log.Printf("Stockview v%s starting on port %d (API: %s)", version, cfg.Port, cfg.APIBaseURL)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
