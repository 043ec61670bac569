package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// FX pricing and quote lifecycle
	FXMarkupFraction       decimal.Decimal
	FXQuoteValiditySeconds int
	FXSweepInterval        time.Duration

	// Rate provider selection: "mock" or "fixer"
	FXProvider        string
	FXProviderAPIKey  string
	FXProviderURL     string
	FXProviderTimeout time.Duration

	// Optional Redis rate cache; empty disables caching
	RedisURL     string
	RateCacheTTL time.Duration

	// Per-IP limit on quote requests, limiter format (e.g. "30-M")
	QuoteRateLimit string

	// Comma-separated list of allowed CORS origins; "*" allows all
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "flow-backend")
	viper.SetDefault("FX_MARKUP_FRACTION", "0.005")
	viper.SetDefault("FX_QUOTE_VALIDITY_SECONDS", 120)
	viper.SetDefault("FX_SWEEP_INTERVAL", "1m")
	viper.SetDefault("FX_PROVIDER", "mock")
	viper.SetDefault("FX_PROVIDER_API_KEY", "")
	viper.SetDefault("FX_PROVIDER_URL", "")
	viper.SetDefault("FX_PROVIDER_TIMEOUT", "5s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_CACHE_TTL", "30s")
	viper.SetDefault("QUOTE_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET not set in production. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	var err error
	cfg.JWTExpiryDuration, err = time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		cfg.JWTExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION. Defaulting to %s.\n", cfg.JWTExpiryDuration)
	}

	markupStr := viper.GetString("FX_MARKUP_FRACTION")
	cfg.FXMarkupFraction, err = decimal.NewFromString(markupStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FX_MARKUP_FRACTION %q: %w", markupStr, err)
	}
	if cfg.FXMarkupFraction.IsNegative() {
		return nil, fmt.Errorf("FX_MARKUP_FRACTION must not be negative, got %s", markupStr)
	}

	cfg.FXQuoteValiditySeconds = viper.GetInt("FX_QUOTE_VALIDITY_SECONDS")
	if cfg.FXQuoteValiditySeconds <= 0 {
		return nil, fmt.Errorf("FX_QUOTE_VALIDITY_SECONDS must be positive, got %d", cfg.FXQuoteValiditySeconds)
	}

	cfg.FXSweepInterval, err = time.ParseDuration(viper.GetString("FX_SWEEP_INTERVAL"))
	if err != nil {
		cfg.FXSweepInterval = time.Minute
		log.Printf("Warning: Invalid value for FX_SWEEP_INTERVAL. Defaulting to %s.\n", cfg.FXSweepInterval)
	}

	cfg.FXProvider = viper.GetString("FX_PROVIDER")
	switch cfg.FXProvider {
	case "mock", "fixer":
	default:
		return nil, fmt.Errorf("FX_PROVIDER must be \"mock\" or \"fixer\", got %q", cfg.FXProvider)
	}
	cfg.FXProviderAPIKey = viper.GetString("FX_PROVIDER_API_KEY")
	if cfg.FXProvider == "fixer" && cfg.FXProviderAPIKey == "" {
		return nil, fmt.Errorf("FX_PROVIDER_API_KEY is required when FX_PROVIDER is \"fixer\"")
	}
	cfg.FXProviderURL = viper.GetString("FX_PROVIDER_URL")
	cfg.FXProviderTimeout, err = time.ParseDuration(viper.GetString("FX_PROVIDER_TIMEOUT"))
	if err != nil {
		cfg.FXProviderTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for FX_PROVIDER_TIMEOUT. Defaulting to %s.\n", cfg.FXProviderTimeout)
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateCacheTTL, err = time.ParseDuration(viper.GetString("RATE_CACHE_TTL"))
	if err != nil {
		cfg.RateCacheTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL. Defaulting to %s.\n", cfg.RateCacheTTL)
	}

	cfg.QuoteRateLimit = viper.GetString("QUOTE_RATE_LIMIT")

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
