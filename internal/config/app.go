package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv переопределяет значения конфигурации переменными окружения
// и повторно проверяет результат.
func (c *Config) ApplyEnv() error {
	c.Source.Path = getEnv("EXAM_SOURCE", c.Source.Path)
	c.Parse.Workers = getEnvAsInt("EXAM_WORKERS", c.Parse.Workers)
	c.Progress.Driver = getEnv("EXAM_PROGRESS_DRIVER", c.Progress.Driver)
	c.Progress.Path = getEnv("EXAM_PROGRESS_PATH", c.Progress.Path)
	c.Progress.DSN = getEnv("EXAM_PROGRESS_DSN", c.Progress.DSN)
	c.Study.StartQuestion = getEnvAsInt("EXAM_START_QUESTION", c.Study.StartQuestion)
	c.Study.NoColor = getEnvAsBool("EXAM_NO_COLOR", c.Study.NoColor)
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.Gops = getEnvAsBool("SERVER_GOPS", c.Server.Gops)
	if origins := getEnv("SERVER_ALLOWED_ORIGINS", ""); origins != "" {
		c.Server.AllowedOrigins = splitCSV(origins)
	}
	return validateConfig(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
