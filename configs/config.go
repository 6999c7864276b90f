package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBSource       string
	GatewayBaseURL string
	GatewayTimeout time.Duration
	JWTSecret      string
	JWTTTL         time.Duration
	Environment    string
	Version        string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		DBSource:       getEnv("DB_SOURCE", "storefront.db"),
		GatewayBaseURL: getEnv("GATEWAY_BASE_URL", "http://localhost:8080"),
		GatewayTimeout: time.Duration(15) * time.Second,
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         time.Duration(24) * time.Hour,
		Environment:    getEnv("ENVIRONMENT", "development"),
		Version:        getEnv("VERSION", "1.0.0"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
