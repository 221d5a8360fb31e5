package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	JwtSecret        string
	JwtIssuer        string
	JwtAudience      string
	JwtExpiryMinutes int
	AuthPassword     string
	DocSeed          int64
	StreamDelayMs    int
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		JwtSecret:        getEnv("JWT_SECRET", ""),
		JwtIssuer:        getEnv("JWT_ISSUER", "ChatBot"),
		JwtAudience:      getEnv("JWT_AUDIENCE", "ChatBotClient"),
		JwtExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 60),
		AuthPassword:     getEnv("AUTH_PASSWORD", "P@ssw0rd"),
		DocSeed:          getEnvInt64("DOC_SEED", 0),
		StreamDelayMs:    getEnvInt("STREAM_DELAY_MS", 100),
	}

	if cfg.JwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
