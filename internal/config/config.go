// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	DBPath string

	// OTPStore selects the code store backend: "gorm", "redis" or "memory".
	OTPStore  string
	RedisAddr string

	// OTPRecipient is the single identity codes are bound to. An explicit
	// configuration value rather than a hidden constant, so per-user codes
	// stay a configuration change, not a protocol change.
	OTPRecipient string

	MailRelayURL      string
	MailRelayKey      string
	ContactForwardURL string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       env,
		DBPath:            getEnv("DB_PATH", "portfolio.db"),
		OTPStore:          strings.ToLower(getEnv("OTP_STORE", "gorm")),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		OTPRecipient:      getEnv("OTP_RECIPIENT", ""),
		MailRelayURL:      getEnv("MAIL_RELAY_URL", ""),
		MailRelayKey:      getEnv("MAIL_RELAY_KEY", ""),
		ContactForwardURL: getEnv("CONTACT_FORWARD_URL", ""),
	}

	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.OTPRecipient == "" {
			missing = append(missing, "OTP_RECIPIENT")
		}
		if cfg.MailRelayURL == "" {
			missing = append(missing, "MAIL_RELAY_URL")
		}
		if cfg.OTPStore == "redis" && cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
