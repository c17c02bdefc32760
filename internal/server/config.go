package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/calc-engine/internal/config"
	"github.com/iwvelando/calc-engine/internal/engine"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the API server settings and the engine defaults it serves with.
type Config struct {
	Address          string                 `yaml:"address"`
	MaxRequestSize   string                 `yaml:"maxRequestSize"`
	Logging          config.LoggingConfig   `yaml:"logging"`
	Precision        config.PrecisionConfig `yaml:"precision"`
	PetFood          config.PetFoodConfig   `yaml:"petFood"`
	requestSizeBytes int64
}

func defaultConfig() *Config {
	return &Config{
		Address:          constants.DefaultServerAddress,
		MaxRequestSize:   strconv.FormatInt(constants.DefaultMaxRequestSizeBytes, 10),
		requestSizeBytes: constants.DefaultMaxRequestSizeBytes,
	}
}

// LoadConfig reads the server configuration at path. An empty path or a
// missing file yields the defaults. Unknown keys are rejected so that a
// misspelt setting does not silently fall back to its default.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// RequestSizeBytes returns the largest accepted request body in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// SetRequestSizeBytes replaces the body limit, as the -max-request-size flag
// does. Non-positive sizes are ignored.
func (c *Config) SetRequestSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.requestSizeBytes = size
	c.MaxRequestSize = strconv.FormatInt(size, 10)
}

// EngineOptions returns the calculation defaults configured for the server.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		FractionDecimalPlaces: c.Precision.FractionDecimalPlaces,
		DecimalPlaces:         c.Precision.DecimalPlaces,
		DefaultMealsPerDay:    c.PetFood.DefaultMealsPerDay,
	}
}

// normalize fills defaults and rejects engine settings out of range. The
// server fails fast here where the batch CLI only warns.
func (c *Config) normalize() error {
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxRequestSize)
	if err != nil {
		return fmt.Errorf("maxRequestSize: %w", err)
	}
	if size == 0 {
		size = constants.DefaultMaxRequestSizeBytes
	}
	c.requestSizeBytes = size
	c.MaxRequestSize = strconv.FormatInt(size, 10)

	if p := c.Precision.FractionDecimalPlaces; p < 0 || p > constants.MaxFractionDecimalPlaces {
		return fmt.Errorf("precision.fractionDecimalPlaces %d is outside 0-%d", p, constants.MaxFractionDecimalPlaces)
	}
	if p := c.Precision.DecimalPlaces; p < 0 || p > constants.MaxDecimalPlaces {
		return fmt.Errorf("precision.decimalPlaces %d is outside 0-%d", p, constants.MaxDecimalPlaces)
	}
	if m := c.PetFood.DefaultMealsPerDay; m < 0 || m > constants.MaxMealsPerDay {
		return fmt.Errorf("petFood.defaultMealsPerDay %d is outside 0-%d", m, constants.MaxMealsPerDay)
	}
	return nil
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
}

// ParseSize converts a body size such as "512", "64K" or "1MB" into bytes.
// Units are binary. An empty string selects the default, and sizes above
// MaxRequestSizeLimitBytes are rejected since calculation requests are small.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	if split == -1 {
		split = len(trimmed)
	}
	if split == 0 {
		return 0, fmt.Errorf("invalid size %q", value)
	}

	multiplier, ok := sizeUnits[strings.TrimSpace(trimmed[split:])]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit in %q", value)
	}

	n, err := strconv.ParseInt(trimmed[:split], 10, 64)
	if err != nil || n > constants.MaxRequestSizeLimitBytes/multiplier {
		return 0, fmt.Errorf("size %q exceeds the %d byte limit", value, constants.MaxRequestSizeLimitBytes)
	}
	return n * multiplier, nil
}
