package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/solvend/solvend/pkg/config"
	"github.com/solvend/solvend/pkg/contentgen"
	contentgenapi "github.com/solvend/solvend/pkg/contentgen/api"
	"github.com/solvend/solvend/pkg/ratelimit"
)

type Config struct {
	Port uint16 `env:"CONTENTGEN_PORT" env-default:"4200"`

	// Completions are metered upstream, so callers get a tighter limit
	// than on ordinary endpoints.
	RateBurst  int     `env:"CONTENTGEN_RATE_BURST" env-default:"10"`
	RatePerSec float64 `env:"CONTENTGEN_RATE_PER_SEC" env-default:"0.5"`

	ContentGenConfig config.ContentGenConfig
	CorsConfig       config.CorsConfig
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

	llm := contentgen.NewLLMClient(
		cfg.ContentGenConfig.Endpoint,
		cfg.ContentGenConfig.APIKey,
		cfg.ContentGenConfig.Model,
	)
	service := contentgen.NewGenerationService(llm)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsConfig.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(ratelimit.PerIP(cfg.RateBurst, cfg.RatePerSec))

	contentgenapi.Routes(r, contentgenapi.NewHandle(service))

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Content generation service ready", "addr", addr, "model", cfg.ContentGenConfig.Model)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
