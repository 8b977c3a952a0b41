package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/solvend/solvend/pkg/config"
	"github.com/solvend/solvend/pkg/mailer"
	"github.com/solvend/solvend/pkg/notification"
	"github.com/solvend/solvend/pkg/ratelimit"
)

type Config struct {
	Port        uint16 `env:"MAILER_PORT" env-default:"4100"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`

	RateBurst  int     `env:"MAILER_RATE_BURST" env-default:"20"`
	RatePerSec float64 `env:"MAILER_RATE_PER_SEC" env-default:"1"`

	EmailConfig config.EmailConfig
	CorsConfig  config.CorsConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment")
	}

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	emailNotifier, err := notification.NewEmailNotifier(cfg.EmailConfig.ToSMTPConfig())
	if err != nil {
		slog.Error("Failed to create email notifier", "err", err)
		os.Exit(1)
	}

	// Verify the relay once at startup. The service still starts when the
	// relay is down; sends will fail individually until it recovers.
	emailReady := true
	verifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := emailNotifier.Verify(verifyCtx); err != nil {
		emailReady = false
		slog.Warn("SMTP relay verification failed", "host", cfg.EmailConfig.Host, "err", err)
	} else {
		slog.Info("SMTP relay verified", "host", cfg.EmailConfig.Host)
	}
	cancel()

	manager, err := notification.NewNotificationManagerWithOptions(cfg.FrontendURL,
		notification.WithNotifier(notification.EmailSystem, emailNotifier),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed to initialize notification manager", "err", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsConfig.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(ratelimit.PerIP(cfg.RateBurst, cfg.RatePerSec))

	mailer.Routes(r, mailer.NewHandle(manager, emailReady))

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Mailer service ready", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
