package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	APIURL       string
	APIKey       string
	FetchTimeout time.Duration

	TimezoneName string
	Location     *time.Location

	ListenAddr        string
	DefaultWindowDays int

	// Legacy-compatibility switches, see DESIGN.md.
	TolerantShape    bool
	CarrierNaNBucket bool
}

// Load loads the configuration from a .env file and environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "60"))
	if timeoutSecs <= 0 {
		timeoutSecs = 60
	}

	windowDays := getEnvInt("DEFAULT_WINDOW_DAYS", 3)
	if windowDays < 1 {
		log.Warn().Int("value", windowDays).Msg("DEFAULT_WINDOW_DAYS below 1, using 1")
		windowDays = 1
	}

	tzName := getEnv("LOCAL_TZ", "America/Monterrey")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCAL_TZ %q: %w", tzName, err)
	}

	cfg := &AppConfig{
		APIURL:            getEnv("API_URL", ""),
		APIKey:            getEnv("API_KEY", ""),
		FetchTimeout:      time.Duration(timeoutSecs) * time.Second,
		TimezoneName:      tzName,
		Location:          loc,
		ListenAddr:        getEnv("LISTEN_ADDR", ":8383"),
		DefaultWindowDays: windowDays,
		TolerantShape:     getEnvBool("TOLERANT_SHAPE", false),
		CarrierNaNBucket:  getEnvBool("CARRIER_NAN_BUCKET", false),
	}

	return cfg, nil
}

// RequireAPI validates the settings needed to reach the delivery API.
func (c *AppConfig) RequireAPI() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is not configured")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is not configured")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
