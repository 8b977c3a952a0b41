// Package config holds the environment-driven configuration of the solvend
// services. One struct per concern; the cmd mains compose the ones they need.
package config

import (
	"fmt"

	"github.com/solvend/solvend/pkg/notification"
)

type DatabaseConfig struct {
	Host     string `env:"SOLVEND_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"SOLVEND_PG_PORT" env-default:"5432"`
	Database string `env:"SOLVEND_PG_DATABASE" env-default:"solvend_db"`
	User     string `env:"SOLVEND_PG_USER" env-default:"solvend"`
	Password string `env:"SOLVEND_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"SOLVEND_PG_SCHEMA" env-default:"public"`
}

// URL builds the pgx connection string.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		c.User, c.Password, c.Host, c.Port, c.Database, c.Schema)
}

type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     uint16 `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME" env-default:""`
	Password string `env:"EMAIL_PASSWORD" env-default:""`
	From     string `env:"EMAIL_FROM" env-default:"noreply@solvend.example"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

// ToSMTPConfig maps the env fields onto the notification package's SMTP
// options.
func (c EmailConfig) ToSMTPConfig() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:     c.Host,
		Port:     int(c.Port),
		Username: c.Username,
		Password: c.Password,
		From:     c.From,
		TLS:      c.TLS,
	}
}

type JwtConfig struct {
	Secret string `env:"JWT_SECRET" env-default:"solvend-dev-secret"`
	Issuer string `env:"JWT_ISSUER" env-default:"solvend"`
}

type TranslateConfig struct {
	Endpoint string `env:"TRANSLATE_ENDPOINT" env-default:"http://localhost:5000"`
}

type ContentGenConfig struct {
	Endpoint string `env:"LLM_ENDPOINT" env-default:"http://localhost:8081/v1/chat/completions"`
	APIKey   string `env:"LLM_API_KEY" env-default:""`
	Model    string `env:"LLM_MODEL" env-default:"gpt-4o-mini"`
}

type MailerConfig struct {
	URL string `env:"MAILER_URL" env-default:"http://localhost:4100"`
}

type CorsConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}
