package config

import (
	"os"
)

// Config carries everything read from the environment so the rest of
// the code takes explicit values instead of calling os.Getenv ad hoc.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       string

	Port          string
	SessionSecret string
	SessionCookie string
	CORSOrigin    string
	FrontendURL   string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	Prod bool
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=grove port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenv("REDIS_DB", "0"),
		Port:          getenv("PORT", "4000"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		SessionCookie: getenv("SESSION_COOKIE", "qid"),
		CORSOrigin:    getenv("CORS_ORIGIN", "http://localhost:3000"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:3000"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		Prod:          os.Getenv("ENV") == "production",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
