// Package config reads CLI defaults from the environment.
//
// Values come from SHEETMAP_* variables, optionally seeded from a .env file.
// Variables already set in the environment win over the file. Command-line
// flags override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"sheet-mapper/extract"
	"sheet-mapper/schema"
)

// Environment variable names.
const (
	EnvSheet     = "SHEETMAP_SHEET"
	EnvMode      = "SHEETMAP_MODE"
	EnvStop      = "SHEETMAP_STOP"
	EnvMaxRows   = "SHEETMAP_MAX_ROWS"
	EnvLogLevel  = "SHEETMAP_LOG_LEVEL"
	EnvLogFormat = "SHEETMAP_LOG_FORMAT"
)

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

// Config holds the CLI defaults.
type Config struct {
	// Sheet is the worksheet name. Empty selects the first sheet.
	Sheet string
	// Mode is the record shape.
	Mode extract.Mode
	// Stop is where extraction ends.
	Stop extract.StopPolicy
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
}

// Load reads the configuration. Named env files must exist; without names,
// DefaultEnvFile is loaded if it exists. Values that fail to parse are
// errors; call Validate once overrides are applied.
func Load(envFiles ...string) (*Config, error) {
	err := loadEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}

	mode, err := extract.ParseMode(getEnvOrDefault(EnvMode, "nested"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvMode, err)
	}

	stop, err := ParseStop(getEnvOrDefault(EnvStop, "end"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvStop, err)
	}

	stop.MaxRows, err = getEnvIntOrDefault(EnvMaxRows, 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Sheet:     getEnvOrDefault(EnvSheet, ""),
		Mode:      mode,
		Stop:      stop,
		LogLevel:  strings.ToLower(getEnvOrDefault(EnvLogLevel, "info")),
		LogFormat: strings.ToLower(getEnvOrDefault(EnvLogFormat, "text")),
	}

	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", DefaultEnvFile, err)
		}

		return nil
	}

	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

// Validate checks the enumerated settings and the row cap.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: unknown log level %q", EnvLogLevel, c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%s: unknown log format %q", EnvLogFormat, c.LogFormat)
	}

	if c.Stop.MaxRows < 0 {
		return fmt.Errorf("%s: must not be negative", EnvMaxRows)
	}

	return nil
}

// ParseStop parses a stop policy:
//   - "end" reads to the end of the worksheet
//   - "blank" stops at the first row where every field is blank
//   - "blank:a,b.c" stops at the first row where fields a and b.c are blank
func ParseStop(s string) (extract.StopPolicy, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "" || s == "end":
		return extract.StopPolicy{}, nil
	case s == "blank":
		return extract.StopPolicy{OnBlank: true}, nil
	case strings.HasPrefix(s, "blank:"):
		var keys []string

		for key := range strings.SplitSeq(strings.TrimPrefix(s, "blank:"), ",") {
			key = strings.TrimSpace(key)

			_, err := schema.SplitKey(key)
			if err != nil {
				return extract.StopPolicy{}, fmt.Errorf("invalid stop policy %q: %w", s, err)
			}

			keys = append(keys, key)
		}

		return extract.StopPolicy{OnBlank: true, Keys: keys}, nil
	default:
		return extract.StopPolicy{}, fmt.Errorf("invalid stop policy %q (want end, blank or blank:<keys>)", s)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}

	return n, nil
}
