package config

import (
	"os"
	"strconv"
)

// Runtime holds process settings that are not part of the YAML document
type Runtime struct {
	LogLevel              string
	LogFile               string
	RequestTimeout        int // seconds
	RequestsPerSec        int
	Workers               int
	GroqModel             string
	GoogleCredentialsPath string
	DatabaseURL           string
	TelegramBotToken      string
	TelegramChatID        int64
}

// LoadRuntime reads runtime settings from environment variables
func LoadRuntime() Runtime {
	return Runtime{
		LogLevel:              getEnvWithDefault("LOG_LEVEL", "info"),
		LogFile:               getEnvWithDefault("LOG_FILE", "logs/stock_analyzer.log"),
		RequestTimeout:        getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		RequestsPerSec:        getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		Workers:               getEnvIntWithDefault("WORKERS", 4),
		GroqModel:             getEnvWithDefault("GROQ_MODEL", "llama3-8b-8192"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:        getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),
	}
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
