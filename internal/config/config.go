package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config collects every setting the application reads from the environment.
// It is built once in main and handed to the handlers explicitly, so tests
// can construct their own instance.
type Config struct {
	Port          string
	DatabaseURL   string // Postgres DSN; when empty the SQLite file is used
	SQLitePath    string
	SessionSecret string
	AdminEmail    string
	AdminPassword string // when set, the admin account is seeded at startup
	MPAccessToken string // Mercado Pago access token; empty disables payments
	MediaDir      string
	Currency      string
}

// Load reads the .env file (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getenv("SQLITE_PATH", "storefront.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@admin.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		MPAccessToken: os.Getenv("MP_ACCESS_TOKEN"),
		MediaDir:      getenv("MEDIA_DIR", "media"),
		Currency:      getenv("CURRENCY", "USD"),
	}
	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET not set, using an insecure development secret")
		cfg.SessionSecret = "insecure-dev-secret"
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
