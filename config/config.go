package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBUrl     string
	JWTSecret string
	// Inter-service URLs
	AuthServiceURL        string
	RecruitmentServiceURL string
	// Recruiter registration
	RecruiterSecretCode string
	// Registration saga: one bounded attempt against the recruitment
	// service, no retry
	ProvisionTimeoutSeconds int
	// Token issuance
	TokenTTLHours int
	// Redis Configuration (gateway rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		DBUrl:                   getEnv("DATABASE_URL", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		AuthServiceURL:          getEnv("AUTH_SERVICE_URL", "http://auth-service:8080"),
		RecruitmentServiceURL:   getEnv("RECRUITMENT_SERVICE_URL", "http://recruitment-service:8080"),
		RecruiterSecretCode:     getEnv("RECRUITER_SECRET_CODE", ""),
		ProvisionTimeoutSeconds: getEnvInt("PROVISION_TIMEOUT_SECONDS", 5),
		TokenTTLHours:           getEnvInt("TOKEN_TTL_HOURS", 10),
		RedisURL:                getEnv("REDIS_URL", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Token issuance and verification will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
