package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// DBQueryTimeout bounds the request context handed to repositories.
	DBQueryTimeout time.Duration

	// ContractSweepInterval is how often the expiry sweep marks contracts
	// past their end date as EXPIRED.
	ContractSweepInterval time.Duration

	// RateLimit uses the ulule/limiter formatted syntax, e.g. "100-M".
	RateLimit string

	// ReconcileEpsilon is the tolerance for reconciliation drift checks.
	ReconcileEpsilon decimal.Decimal

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DB_QUERY_TIMEOUT", "5s")
	viper.SetDefault("CONTRACT_SWEEP_INTERVAL", "12h")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("RECONCILE_EPSILON", "0.01")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	timeoutStr := viper.GetString("DB_QUERY_TIMEOUT")
	queryTimeout, err := time.ParseDuration(timeoutStr)
	if err != nil || queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for DB_QUERY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, queryTimeout)
	}
	cfg.DBQueryTimeout = queryTimeout

	sweepStr := viper.GetString("CONTRACT_SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepStr)
	if err != nil || sweepInterval <= 0 {
		sweepInterval = 12 * time.Hour
		log.Printf("Warning: Invalid value for CONTRACT_SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepStr, sweepInterval)
	}
	cfg.ContractSweepInterval = sweepInterval

	epsilonStr := viper.GetString("RECONCILE_EPSILON")
	epsilon, err := decimal.NewFromString(epsilonStr)
	if err != nil || epsilon.IsNegative() {
		epsilon = decimal.NewFromFloat(0.01)
		log.Printf("Warning: Invalid value for RECONCILE_EPSILON ('%s'). Defaulting to %s.\n", epsilonStr, epsilon)
	}
	cfg.ReconcileEpsilon = epsilon

	return cfg, nil
}
