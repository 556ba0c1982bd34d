package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the process-level settings. Everything has a usable
// default so the binary runs with no environment at all.
type Config struct {
	// DataDir is where the CSV tables live.
	DataDir string
	// MatchThreshold is the minimum similarity ratio an ingredient lookup
	// must reach.
	MatchThreshold float64
	// MarginThresholdPercent flags dishes whose margin falls below it.
	MarginThresholdPercent float64
}

// Load reads configuration from the environment, honoring a .env file in
// the working directory when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:                getEnvOrDefault("FOODCOST_DATA_DIR", "data"),
		MatchThreshold:         0.6,
		MarginThresholdPercent: 40,
	}

	if raw := os.Getenv("FOODCOST_MATCH_THRESHOLD"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 1 {
			return nil, fmt.Errorf("FOODCOST_MATCH_THRESHOLD must be in (0,1], got %q", raw)
		}
		cfg.MatchThreshold = v
	}
	if raw := os.Getenv("FOODCOST_MARGIN_THRESHOLD"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			return nil, fmt.Errorf("FOODCOST_MARGIN_THRESHOLD must be in [0,100], got %q", raw)
		}
		cfg.MarginThresholdPercent = v
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
