package config

import (
	"errors"
	"os"
	"strings"
)

const (
	PaymentProviderPostFinance = "postfinance"
	PaymentProviderStripe      = "stripe"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// Enabled reports whether pledge receipts should be archived.
func (c R2Config) Enabled() bool {
	return c.Bucket != ""
}

type PaymentConfig struct {
	Provider          string
	PostFinancePSPID  string
	PostFinanceSecret string
	StripeSecretKey   string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

type Config struct {
	Env             string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	FrontendURL     string
	DefaultLocale   string
	AllowOrigins    string
	TurnstileSecret string
	Payment         PaymentConfig
	Email           EmailConfig
	R2              R2Config
}

func LoadConfig() *Config {
	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		FrontendURL:     strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		DefaultLocale:   getEnv("DEFAULT_LOCALE", "de"),
		AllowOrigins:    getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		TurnstileSecret: os.Getenv("CF_TURNSTILE_SECRET_KEY"),
	}

	// Payment provider
	cfg.Payment.Provider = strings.ToLower(getEnv("PAYMENT_PROVIDER", PaymentProviderPostFinance))
	cfg.Payment.PostFinancePSPID = os.Getenv("PF_PSPID")
	cfg.Payment.PostFinanceSecret = os.Getenv("PF_SHA_IN_SECRET")
	cfg.Payment.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")

	// Email
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")

	// R2 receipt archive
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_RECEIPT_BUCKET")

	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.WildcardOrigins() {
		errs = append(errs, errors.New("CORS_ALLOW_ORIGINS must list explicit origins"))
	}
	if c.DefaultLocale != "de" && c.DefaultLocale != "en" {
		errs = append(errs, errors.New("DEFAULT_LOCALE must be de or en"))
	}

	switch c.Payment.Provider {
	case PaymentProviderPostFinance:
		if c.Payment.PostFinancePSPID == "" || c.Payment.PostFinanceSecret == "" {
			errs = append(errs, errors.New("PF_PSPID and PF_SHA_IN_SECRET are required for postfinance"))
		}
	case PaymentProviderStripe:
		if c.Payment.StripeSecretKey == "" {
			errs = append(errs, errors.New("STRIPE_SECRET_KEY is required for stripe"))
		}
	default:
		errs = append(errs, errors.New("PAYMENT_PROVIDER must be postfinance or stripe"))
	}

	if c.R2.Enabled() && (c.R2.AccountID == "" || c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "") {
		errs = append(errs, errors.New("R2 credentials are incomplete"))
	}

	return errors.Join(errs...)
}

// WildcardOrigins reports whether any browser origin is allowed.
func (c *Config) WildcardOrigins() bool {
	for _, origin := range strings.Split(c.AllowOrigins, ",") {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
