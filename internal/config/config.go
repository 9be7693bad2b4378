package config

import (
	"delivery-hub-service/internal/services"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Represents optimizer settings loaded from an optional YAML file and
// overridden by HUBOPT_* environment variables.
type Config struct {
	PlacesPath      string        `yaml:"places_path"`
	Strict          bool          `yaml:"strict"`
	Seed            uint64        `yaml:"seed"`
	Step            float64       `yaml:"step"`
	SecondHubStep   float64       `yaml:"second_hub_step"`
	SecondHubPadLat float64       `yaml:"second_hub_pad_lat"`
	SecondHubPadLon float64       `yaml:"second_hub_pad_lon"`
	MaxIterations   int           `yaml:"max_iterations"`
	Parallel        bool          `yaml:"parallel"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisDB         int           `yaml:"redis_db"`
	// Requests per second across all clients; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit_rps"`
	RateBurst int     `yaml:"rate_limit_burst"`
}

func Default() Config {
	opts := services.DefaultOptions()
	return Config{
		PlacesPath:      "data/places.csv",
		Strict:          true,
		Step:            opts.Step,
		SecondHubStep:   opts.SecondHubStep,
		SecondHubPadLat: opts.SecondHubPadLat,
		SecondHubPadLon: opts.SecondHubPadLon,
		MaxIterations:   opts.MaxIterations,
		CacheTTL:        time.Hour,
		RateBurst:       10,
	}
}

// Load starts from Default, applies the YAML file at path (skipped when
// path is empty) and then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error

	if v := Get("HUBOPT_PLACES_PATH", ""); v != "" {
		c.PlacesPath = v
	}
	parseEnv(&errs, "HUBOPT_STRICT", strconv.ParseBool, &c.Strict)
	parseEnv(&errs, "HUBOPT_SEED", func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }, &c.Seed)
	parseEnv(&errs, "HUBOPT_STEP", parseFloat, &c.Step)
	parseEnv(&errs, "HUBOPT_SECOND_HUB_STEP", parseFloat, &c.SecondHubStep)
	parseEnv(&errs, "HUBOPT_SECOND_HUB_PAD_LAT", parseFloat, &c.SecondHubPadLat)
	parseEnv(&errs, "HUBOPT_SECOND_HUB_PAD_LON", parseFloat, &c.SecondHubPadLon)
	parseEnv(&errs, "HUBOPT_MAX_ITERATIONS", strconv.Atoi, &c.MaxIterations)
	parseEnv(&errs, "HUBOPT_PARALLEL", strconv.ParseBool, &c.Parallel)
	parseEnv(&errs, "HUBOPT_CACHE_TTL", time.ParseDuration, &c.CacheTTL)

	if v := Get("REDIS_ADDR", ""); v != "" {
		c.RedisAddr = v
	}
	parseEnv(&errs, "REDIS_DB", strconv.Atoi, &c.RedisDB)
	parseEnv(&errs, "RATE_LIMIT_RPS", parseFloat, &c.RateLimit)
	parseEnv(&errs, "RATE_LIMIT_BURST", strconv.Atoi, &c.RateBurst)

	return errors.Join(errs...)
}

func parseEnv[T any](errs *[]error, key string, parse func(string) (T, error), dst *T) {
	raw := Get(key, "")
	if raw == "" {
		return
	}
	v, err := parse(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q: %w", key, raw, err))
		return
	}
	*dst = v
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func (c Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: cache ttl must not be negative: %s", c.CacheTTL)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config: redis db must not be negative: %d", c.RedisDB)
	}
	if c.RateLimit < 0 || math.IsNaN(c.RateLimit) || math.IsInf(c.RateLimit, 0) {
		return fmt.Errorf("config: rate limit must be a finite non-negative number: %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("config: rate limit burst must be at least 1: %d", c.RateBurst)
	}
	return nil
}

// Options maps the optimizer settings onto the runner.
func (c Config) Options() services.Options {
	return services.Options{
		Step:            c.Step,
		SecondHubStep:   c.SecondHubStep,
		SecondHubPadLat: c.SecondHubPadLat,
		SecondHubPadLon: c.SecondHubPadLon,
		MaxIterations:   c.MaxIterations,
		Parallel:        c.Parallel,
	}
}
