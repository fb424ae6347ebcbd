package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment with a
// .env file as an optional source.
type Config struct {
	Addr         string
	PublicURL    string
	WordBankPath string
	LogLevel     string
}

// Load reads configuration. A missing .env file is fine; real environment
// variables win over .env entries.
func Load() *Config {
	godotenv.Load()
	return &Config{
		Addr:         getEnv("ADDR", ":8080"),
		PublicURL:    getEnv("PUBLIC_URL", "http://localhost:8080"),
		WordBankPath: getEnv("WORDBANK_PATH", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
