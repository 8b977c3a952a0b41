package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"

	"github.com/solvend/solvend/pkg/account"
	accountapi "github.com/solvend/solvend/pkg/account/api"
	"github.com/solvend/solvend/pkg/catalog"
	catalogapi "github.com/solvend/solvend/pkg/catalog/api"
	"github.com/solvend/solvend/pkg/config"
	"github.com/solvend/solvend/pkg/insights"
	insightsapi "github.com/solvend/solvend/pkg/insights/api"
	"github.com/solvend/solvend/pkg/mailer"
	"github.com/solvend/solvend/pkg/translate"
	"github.com/solvend/solvend/pkg/verification"
)

type Config struct {
	BaseURL     string `env:"BASE_URL" env-default:"http://localhost:4000"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`

	DbConfig        config.DatabaseConfig
	JwtConfig       config.JwtConfig
	MailerConfig    config.MailerConfig
	TranslateConfig config.TranslateConfig
	AppConfig       app.AppConfig
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

	pool, err := pgxpool.New(context.Background(), cfg.DbConfig.URL())
	if err != nil {
		slog.Error("Failed to connect to database",
			"host", cfg.DbConfig.Host,
			"database", cfg.DbConfig.Database,
			"err", err)
		os.Exit(1)
	}
	defer pool.Close()

	accountRepo := account.NewPostgresAccountRepository(pool)
	accounts := account.NewAccountService(accountRepo,
		account.WithJwtSecret(cfg.JwtConfig.Secret),
		account.WithJwtIssuer(cfg.JwtConfig.Issuer),
	)

	mailerClient := mailer.NewClient(cfg.MailerConfig.URL, cfg.FrontendURL)
	verifications := verification.NewVerificationService(accountRepo, accounts, mailerClient)

	translations := translate.NewTranslationService(
		translate.NewClient(cfg.TranslateConfig.Endpoint),
		translate.NewCache(),
	)

	catalogRepo := catalog.NewPostgresSolutionRepository(pool)
	catalogSvc := catalog.NewCatalogService(catalogRepo, catalog.WithTranslations(translations))

	insightsSvc := insights.NewInsightsService(catalogRepo, accountRepo)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.Secret), nil)

	accountHandle := accountapi.NewHandle(accounts, verifications)
	catalogHandle := catalogapi.NewHandle(catalogSvc)
	insightsHandle := insightsapi.NewHandle(insightsSvc)

	server.R.Group(func(protected chi.Router) {
		protected.Use(jwtauth.Verifier(tokenAuth))
		protected.Use(jwtauth.Authenticator(tokenAuth))

		accountapi.Routes(server.R, protected, accountHandle)
		catalogapi.Routes(server.R, protected, catalogHandle)
	})
	insightsapi.Routes(server.R, insightsHandle)

	slog.Info("Solvend directory service ready", "base_url", cfg.BaseURL)
	server.Run()
}
