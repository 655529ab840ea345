package util

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// GetEnv returns the value of the environment variable key or defaultVal if it is not set.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

func GetEnvEnum(key string, defaultVal string, allowedValues []string) string {
	val := GetEnv(key, defaultVal)

	for _, allowed := range allowedValues {
		if val == allowed {
			return val
		}
	}

	log.Panic().Str("key", key).Str("value", val).Strs("allowed_values", allowedValues).Msg("Invalid value for env variable")
	return defaultVal
}

func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	return defaultVal
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	return defaultVal
}

func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")

	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsStringArr splits the env variable key by separator (default ",") and drops empty entries.
func GetEnvAsStringArr(key string, defaultVal []string, separator ...string) []string {
	strVal := GetEnv(key, "")

	if len(strVal) == 0 {
		return defaultVal
	}

	sep := ","
	if len(separator) >= 1 {
		sep = separator[0]
	}

	parts := strings.Split(strVal, sep)
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			res = append(res, trimmed)
		}
	}

	return res
}

// LogLevelFromString parses s, falling back to zerolog.InfoLevel for unknown levels.
func LogLevelFromString(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		log.Error().Err(err).Str("level", s).Msg("Failed to parse log level, defaulting to info")
		return zerolog.InfoLevel
	}

	return level
}
