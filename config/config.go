package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the API reads from the environment.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	FrontendURL   string

	StripeSecretKey string
	WebhookSecret   string
	Currency        string
	PaymentTimeout  time.Duration

	CloudinaryURL string

	SendGridAPIKey  string
	MailFromAddress string
	MailFromName    string

	RedisAddr         string
	ProcessedEventTTL time.Duration

	KafkaBrokers    []string
	KafkaOrderTopic string

	LogLevel string
}

var defaults = map[string]any{
	"port":                "8000",
	"mongodb_database":    "fooddelivery",
	"frontend_url":        "http://localhost:5173",
	"checkout_currency":   "usd",
	"payment_timeout":     "10s",
	"mail_from_name":      "Food Delivery",
	"processed_event_ttl": "72h",
	"kafka_order_topic":   "order-events",
	"log_level":           "info",
}

// LoadEnv loads environment variables from the .env file, if there is one.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
}

// Load reads the environment into a Config.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetString("port"),
		MongoURI:          v.GetString("mongodb_uri"),
		MongoDatabase:     v.GetString("mongodb_database"),
		JWTSecret:         v.GetString("jwt_secret"),
		FrontendURL:       strings.TrimRight(v.GetString("frontend_url"), "/"),
		StripeSecretKey:   v.GetString("stripe_secret_key"),
		WebhookSecret:     v.GetString("webhook_endpoint_secret"),
		Currency:          strings.ToLower(v.GetString("checkout_currency")),
		PaymentTimeout:    v.GetDuration("payment_timeout"),
		CloudinaryURL:     v.GetString("cloudinary_url"),
		SendGridAPIKey:    v.GetString("sendgrid_api_key"),
		MailFromAddress:   v.GetString("mail_from_address"),
		MailFromName:      v.GetString("mail_from_name"),
		RedisAddr:         v.GetString("redis_addr"),
		ProcessedEventTTL: v.GetDuration("processed_event_ttl"),
		KafkaBrokers:      splitList(v.GetString("kafka_brokers")),
		KafkaOrderTopic:   v.GetString("kafka_order_topic"),
		LogLevel:          v.GetString("log_level"),
	}

	return cfg, cfg.Validate()
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.PaymentTimeout <= 0 {
		errs = append(errs, errors.New("PAYMENT_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
