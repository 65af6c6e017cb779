package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort   = "5000"
	defaultDBHost = "cluster0.pcpwejc.mongodb.net"
	defaultDBName = "car-house"
)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	MongoURI string `yaml:"mongo_uri"`
	DBUser   string `yaml:"db_user"`
	DBPass   string `yaml:"db_pass"`
	DBHost   string `yaml:"db_host"`
	DBName   string `yaml:"db_name"`

	StripeSecretKey string `yaml:"stripe_secret_key"`
	StripeAPIURL    string `yaml:"stripe_api_url"`
	PaymentCurrency string `yaml:"payment_currency"`
	AtomicPayments  bool   `yaml:"payments_atomic"`
}

// LoadConfig reads the optional YAML file named by CONFIG_FILE, then lets
// environment variables override whatever it set.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            defaultPort,
		LogLevel:        "info",
		DBHost:          defaultDBHost,
		DBName:          defaultDBName,
		PaymentCurrency: "usd",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPass = getEnv("DB_PASS", cfg.DBPass)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.StripeSecretKey = getEnv("STRIPE_SECRET_KEY", cfg.StripeSecretKey)
	cfg.StripeAPIURL = getEnv("STRIPE_API_URL", cfg.StripeAPIURL)
	cfg.PaymentCurrency = getEnv("PAYMENT_CURRENCY", cfg.PaymentCurrency)
	if v, ok := os.LookupEnv("PAYMENTS_ATOMIC"); ok {
		cfg.AtomicPayments = v == "true"
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Warn("Invalid PORT, falling back to default", "PORT", cfg.Port, "default", defaultPort)
		cfg.Port = defaultPort
	}

	return cfg, nil
}

// ConnectionString returns MONGO_URI when set, otherwise the Atlas SRV
// string built from the credentials.
func (c *Config) ConnectionString() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
