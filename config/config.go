package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	NotionAPIKey        string
	NotionWebhookSecret string
	DBWardrobe          string
	DBStyleInspo        string
	DBOutfitRequests    string
	DBMyOutfits         string
	DBWornToday         string
	GoogleAPIKey        string
	Port                string
	PollInterval        time.Duration
	LogLevel            string
	Env                 string
}

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s environment variable is not set!", key)
	}
	return value
}

// Load reads the full service configuration from the environment. A local
// .env file is applied first if present. Missing required variables abort
// startup.
func Load() Config {
	_ = godotenv.Load()

	pollMs, err := strconv.Atoi(GetEnv("POLL_INTERVAL_MS", "30000"))
	if err != nil || pollMs <= 0 {
		log.Fatalf("Invalid POLL_INTERVAL_MS: %s", os.Getenv("POLL_INTERVAL_MS"))
	}

	return Config{
		NotionAPIKey:        mustEnv("NOTION_API_KEY"),
		NotionWebhookSecret: mustEnv("NOTION_WEBHOOK_SECRET"),
		DBWardrobe:          mustEnv("NOTION_DB_WARDROBE"),
		DBStyleInspo:        mustEnv("NOTION_DB_STYLE_INSPO"),
		DBOutfitRequests:    mustEnv("NOTION_DB_OUTFIT_REQUESTS"),
		DBMyOutfits:         mustEnv("NOTION_DB_MY_OUTFITS"),
		DBWornToday:         mustEnv("NOTION_DB_WORN_TODAY"),
		GoogleAPIKey:        mustEnv("GOOGLE_API_KEY"),
		Port:                GetEnv("PORT", "3000"),
		PollInterval:        time.Duration(pollMs) * time.Millisecond,
		LogLevel:            GetEnv("LOG_LEVEL", "info"),
		Env:                 GetEnv("ENV", "local"),
	}
}
