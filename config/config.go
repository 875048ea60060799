package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Crawl     CrawlConfig
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Webhook   WebhookConfig
}

// CrawlConfig controls the crawl engine.
type CrawlConfig struct {
	// MaxDepth is the deepest wavefront that is still fetched. Children of
	// a page at MaxDepth are never submitted.
	MaxDepth int // default: 1

	// Workers bounds the number of concurrently executing page tasks.
	Workers int // default: 10

	// Timeout is the per-request fetch timeout.
	Timeout time.Duration // default: 20s

	// Seeds maps a category name to its seed URL. Each category gets its
	// own output namespace.
	Seeds map[string]string

	// Keywords are the substrings an href must contain to qualify as a
	// child link.
	Keywords []string

	// OutputDir is the root directory artifacts are written under.
	OutputDir string // default: "./data"
}

// ServerConfig controls the viewer HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication on the viewer.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting on the viewer.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// WebhookConfig controls the optional run-completion notification.
type WebhookConfig struct {
	URL    string
	Secret string
}

// defaultSeeds are the MITRE ATT&CK v15 index pages, one per category.
var defaultSeeds = map[string]string{
	"Enterprise_Techniques": "https://attack.mitre.org/versions/v15/techniques/enterprise/",
	"Threat_Actor_Groups":   "https://attack.mitre.org/versions/v15/groups/",
	"Software_Tools":        "https://attack.mitre.org/versions/v15/software/",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Crawl: CrawlConfig{
			MaxDepth:  envIntOr("TABLESCRAPE_MAX_DEPTH", 1),
			Workers:   envIntOr("TABLESCRAPE_WORKERS", 10),
			Timeout:   envDurationOr("TABLESCRAPE_TIMEOUT", 20*time.Second),
			Seeds:     envSeedsOr("TABLESCRAPE_SEEDS", defaultSeeds),
			Keywords:  envSliceOr("TABLESCRAPE_KEYWORDS", []string{"/techniques/", "/groups/", "/software/"}),
			OutputDir: envOr("TABLESCRAPE_OUTPUT_DIR", "./data"),
		},
		Server: ServerConfig{
			Host: envOr("TABLESCRAPE_HOST", "0.0.0.0"),
			Port: envIntOr("TABLESCRAPE_PORT", 8080),
			Mode: envOr("TABLESCRAPE_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("TABLESCRAPE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("TABLESCRAPE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("TABLESCRAPE_RATE_RPS", 5.0),
			Burst:             envIntOr("TABLESCRAPE_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("TABLESCRAPE_LOG_LEVEL", "info"),
			Format: envOr("TABLESCRAPE_LOG_FORMAT", "json"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("TABLESCRAPE_WEBHOOK_URL"),
			Secret: os.Getenv("TABLESCRAPE_WEBHOOK_SECRET"),
		},
	}
}

// envSeedsOr parses "category=url,category=url" pairs.
func envSeedsOr(key string, fallback map[string]string) map[string]string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	result := make(map[string]string)
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, url, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		url = strings.TrimSpace(url)
		if !ok || name == "" || url == "" {
			continue
		}
		result[name] = url
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
