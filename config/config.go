package config

import (
	"os"
	"time"
)

type Config struct {
	Port string
	Env  string

	MongoURL string
	MongoDB  string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string

	AllowedOrigins string
	RedisURL       string
	LogDir         string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "3500"),
		Env:  getEnv("ENV", "development"),

		MongoURL: getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "shopkart"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenTTL:     getDuration("ACCESS_TOKEN_TTL", time.Minute),
		RefreshTokenTTL:    getDuration("REFRESH_TOKEN_TTL", 24*time.Hour),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		RedisURL:       getEnv("REDIS_URL", ""),
		LogDir:         getEnv("LOG_DIR", "logs"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
