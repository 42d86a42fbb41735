package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Paths ending in "/" match by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // bucket capacity, Limit when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused for this long are dropped
	Allow           map[string]bool
	Deny            map[string]bool
	Exempt          []string // paths never limited
	Rules           []Rule
}

// DefaultRules limits the generation endpoints, which call paid model APIs.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/generate", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/generate/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	rules := DefaultRules()
	if n := envInt("RATE_LIMIT_GENERATE_PER_HOUR", 0); n > 0 {
		for i := range rules {
			rules[i].Limit = n
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Allow:           parseList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Deny:            parseList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Exempt:          []string{"/health", "/metrics"},
		Rules:           rules,
	}
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

// parseList turns "a, b,c" into a set.
func parseList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}
