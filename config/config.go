// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret for admin sessions (required).
	JWTSecret string

	// Mercado Pago access token (required).
	MPAccessToken string

	// Public base URL of this API, used as the webhook notification URL.
	BaseURL string
	// Public site URL, used for checkout back_urls and verification redirects.
	SiteURL string

	// Price per vehicle in BRL.
	PrecoInscricao float64
	// How long a pending registration stays claimable before it expires.
	PendenteTTL time.Duration

	// Privileged credential that bypasses the account store.
	AdminEmail string
	AdminSenha string

	// Outbound mail.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Google Sheets export. Empty values disable the push.
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string

	// Local spreadsheet artifact path.
	PlanilhaPath string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "inscricoes")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "inscricoes")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":3000")
	v.SetDefault("TLS_DOMAINS", "api.arrancadaroraima.com.br")
	v.SetDefault("DEBUG", false)
	v.SetDefault("SITE_URL", "https://arrancadaroraima.com.br")
	v.SetDefault("PRECO_INSCRICAO", 50.0)
	v.SetDefault("PENDENTE_TTL_HORAS", 48)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("PLANILHA_PATH", "inscricoes_confirmadas.xlsx")

	cfg := &Config{
		DatabaseURL:           v.GetString("DATABASE_URL"),
		DBUser:                v.GetString("DB_USER"),
		DBPass:                v.GetString("DB_PASS"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBName:                v.GetString("DB_NAME"),
		DBSSLMode:             v.GetString("DB_SSLMODE"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		MPAccessToken:         v.GetString("MP_ACCESS_TOKEN"),
		BaseURL:               strings.TrimRight(v.GetString("BASE_URL"), "/"),
		SiteURL:               strings.TrimRight(v.GetString("SITE_URL"), "/"),
		PrecoInscricao:        v.GetFloat64("PRECO_INSCRICAO"),
		PendenteTTL:           time.Duration(v.GetInt("PENDENTE_TTL_HORAS")) * time.Hour,
		AdminEmail:            v.GetString("ADMIN_EMAIL"),
		AdminSenha:            v.GetString("ADMIN_SENHA"),
		SMTPHost:              v.GetString("SMTP_HOST"),
		SMTPPort:              v.GetInt("SMTP_PORT"),
		SMTPUser:              v.GetString("SMTP_USER"),
		SMTPPass:              v.GetString("SMTP_PASS"),
		MailFrom:              v.GetString("MAIL_FROM"),
		SheetsCredentialsFile: v.GetString("SHEETS_CREDENTIALS_FILE"),
		SheetsSpreadsheetID:   v.GetString("SHEETS_SPREADSHEET_ID"),
		PlanilhaPath:          v.GetString("PLANILHA_PATH"),
		Debug:                 v.GetBool("DEBUG"),
		Port:                  v.GetString("PORT"),
		TLSDomains:            splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// MailEnabled reports whether outbound mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != ""
}

// SheetsEnabled reports whether the Google Sheets push is configured.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsCredentialsFile != "" && c.SheetsSpreadsheetID != ""
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
	if c.MPAccessToken == "" {
		log.Fatal("config: MP_ACCESS_TOKEN must be set")
	}
	if c.BaseURL == "" {
		log.Fatal("config: BASE_URL must be set (webhook notification URL)")
	}
	if c.AdminEmail == "" || c.AdminSenha == "" {
		log.Fatal("config: ADMIN_EMAIL and ADMIN_SENHA must be set")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
