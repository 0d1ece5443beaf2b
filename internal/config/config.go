package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Journal  JournalConfig
	Auth     AuthConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

// JournalConfig holds the scalars the metrics engine is parameterised with.
// These used to be literals in the dashboard; they are injected from here.
type JournalConfig struct {
	InitialCapital   float64
	BuyingPower      float64
	DefaultLotSize   float64
	SnapshotSchedule string // cron spec, empty disables the job
	InstrumentsFile  string
	Instruments      *Instruments
}

// AuthConfig holds the shared secret for admin endpoints
type AuthConfig struct {
	InternalAPIKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	initialCapital, err := getEnvFloat("JOURNAL_INITIAL_CAPITAL", 0)
	if err != nil {
		return nil, err
	}
	buyingPower, err := getEnvFloat("JOURNAL_BUYING_POWER", 0)
	if err != nil {
		return nil, err
	}
	lotSize, err := getEnvFloat("JOURNAL_DEFAULT_LOT_SIZE", 1)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/trading_journal.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Journal: JournalConfig{
			InitialCapital:   initialCapital,
			BuyingPower:      buyingPower,
			DefaultLotSize:   lotSize,
			SnapshotSchedule: getEnvAllowEmpty("SNAPSHOT_SCHEDULE", "@daily"),
			InstrumentsFile:  getEnv("INSTRUMENTS_FILE", "./config/instruments.yaml"),
		},
		Auth: AuthConfig{
			InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),
		},
	}

	instruments, err := LoadInstruments(config.Journal.InstrumentsFile, lotSize)
	if err != nil {
		return nil, err
	}
	config.Journal.Instruments = instruments

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty is getEnv for settings where an explicitly empty value means "off".
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s: must be finite", key)
	}
	if f < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return f, nil
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
