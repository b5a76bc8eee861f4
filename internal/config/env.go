package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookup returns the trimmed value of key; blank counts as unset.
func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func envOrDefault(key, defaultValue string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	return int(int64EnvOrDefault(key, int64(defaultValue)))
}

// int64EnvOrDefault accepts positive integers only.
func int64EnvOrDefault(key string, defaultValue int64) int64 {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// listEnvOrDefault splits a comma separated value, dropping blank entries.
// An empty result yields defaultValue.
func listEnvOrDefault(key string, defaultValue []string) []string {
	raw, _ := lookup(key)
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
