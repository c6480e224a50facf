package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	PostgresURL string
	MongoURI    string
	JWTSecret   string
	TokenSecret string
}

func Load() *Config {
	// A missing .env file is fine; the environment itself may carry the values.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		PostgresURL: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:    getEnv("MONGO_URI", ""),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenSecret: getEnv("TOKEN_SECRET", "fallback-key"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
