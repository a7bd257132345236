package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/base48/vietqr-portal/internal/config"
	"github.com/base48/vietqr-portal/internal/handler"
	"github.com/base48/vietqr-portal/internal/logger"
	"github.com/base48/vietqr-portal/internal/qrpay"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "text").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Load rendering assets
	renderer, err := qrpay.NewRenderer(qrpay.RendererOptions{
		LogoPath:       cfg.LogoPath,
		FontPath:       cfg.FontPath,
		BackgroundPath: cfg.BackgroundPath,
		Size:           cfg.QRSize,
	})
	if err != nil {
		log.Error("failed to create renderer", "error", err)
		os.Exit(1)
	}
	if !renderer.HasLogo() {
		log.Warn("LOGO_PATH not set, rendering codes without a logo")
	}

	// Initialize handlers
	qrService := qrpay.NewService(cfg.DefaultBankBIN, renderer, log)
	h, err := handler.New(qrService, cfg, log)
	if err != nil {
		log.Error("failed to create handler", "error", err)
		os.Exit(1)
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/", h.Routes())

	// Create server
	srv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("starting server", "addr", srv.Addr, "base_url", cfg.BaseURL, "default_bank_bin", cfg.DefaultBankBIN)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
