package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"leetStats/internal/leetcode"
)

type Config struct {
	Port        string
	LogLevel    string
	Environment string
	CORSOrigins []string

	// LeetCode API
	LeetCodeURL    string
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	RateLimitDelay time.Duration
	UpstreamMaxRPS float64

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Inbound rate limiting, per client IP
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool

	MetricsUser string
	MetricsPass string
}

// Load reads the configuration from the environment. Malformed numbers and
// durations are reported rather than silently replaced.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		LeetCodeURL:    getEnv("LEETCODE_GRAPHQL_URL", leetcode.DefaultEndpoint),
		RequestTimeout: parseDuration(&errs, "LEETCODE_TIMEOUT", 10*time.Second),
		MaxAttempts:    parseInt(&errs, "LEETCODE_MAX_ATTEMPTS", 3),
		RetryDelay:     parseDuration(&errs, "LEETCODE_RETRY_DELAY", time.Second),
		RateLimitDelay: parseDuration(&errs, "LEETCODE_RATE_LIMIT_DELAY", 2*time.Second),
		UpstreamMaxRPS: parseFloat(&errs, "LEETCODE_MAX_RPS", 0),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		RateLimitRPS:   parseFloat(&errs, "RATE_LIMIT_RPS", 5),
		RateLimitBurst: parseInt(&errs, "RATE_LIMIT_BURST", 30),
		TrustProxy:     parseBool(&errs, "TRUST_PROXY", false),

		MetricsUser: os.Getenv("METRICS_USER"),
		MetricsPass: os.Getenv("METRICS_PASS"),
	}

	if cfg.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("LEETCODE_MAX_ATTEMPTS must be at least 1, got %d", cfg.MaxAttempts))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LEETCODE_TIMEOUT must be positive, got %s", cfg.RequestTimeout))
	}
	if cfg.RetryDelay < 0 || cfg.RateLimitDelay < 0 {
		errs = append(errs, errors.New("retry delays must not be negative"))
	}
	if cfg.UpstreamMaxRPS < 0 || cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		errs = append(errs, errors.New("rate limits must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(errs *[]error, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func parseFloat(errs *[]error, key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func parseBool(errs *[]error, key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func parseDuration(errs *[]error, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
