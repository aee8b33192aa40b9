package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the API reads from the environment.
type Config struct {
	Port         string
	DSN          string
	JWTSecret    []byte
	TokenTTL     time.Duration
	Location     *time.Location
	UploadDir    string
	BaseURL      string
	CORSOrigins  []string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, applying development defaults.
func FromEnv() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	zone := getenv("APP_TIME_ZONE", "Asia/Tokyo")
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIME_ZONE %q: %w", zone, err)
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	return &Config{
		Port:         getenv("PORT", "8080"),
		DSN:          getenv("DB_DSN_PRIMARY", "root@tcp(127.0.0.1:3306)/travelschedule?parseTime=true"),
		JWTSecret:    []byte(secret),
		TokenTTL:     ttl,
		Location:     loc,
		UploadDir:    getenv("UPLOAD_DIR", "./uploads"),
		BaseURL:      strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
