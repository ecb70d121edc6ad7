package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds environment-derived settings. Secrets are never hardcoded;
// they come from the environment or a local .env file.
type Config struct {
	// OpenRouter
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterReferer string
	Model             string

	// Cohere (image embeddings for near-duplicate removal)
	CohereAPIKey string

	// YouTube upload
	ServiceAccountFile string
	PrivacyStatus      string

	// Redis (optional seen-trend filter)
	RedisAddr string
	RedisPass string
	RedisDB   int

	// S3 archive (optional)
	S3Bucket string
	S3Region string

	// Serve mode
	ServePort    string
	CronSpec     string
	KafkaBrokers string
	KafkaTopic   string

	// Workspace
	WorkDir  string
	MusicDir string
}

// Load reads .env (if present) and builds the configuration. Missing
// optional values fall back to defaults; required secrets are validated
// by the components that need them.
func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:  envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterReferer:  envOr("OPENROUTER_REFERER", "https://github.com/uqbar"),
		Model:              envOr("UQBAR_MODEL", DefaultModelAlias),
		CohereAPIKey:       os.Getenv("COHERE_API_KEY"),
		ServiceAccountFile: envOr("YOUTUBE_SERVICE_ACCOUNT_FILE", "service-account.json"),
		PrivacyStatus:      envOr("YOUTUBE_PRIVACY_STATUS", "public"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPass:          os.Getenv("REDIS_PASS"),
		S3Bucket:           os.Getenv("UQBAR_S3_BUCKET"),
		S3Region:           os.Getenv("AWS_REGION"),
		ServePort:          envOr("UQBAR_PORT", "8080"),
		CronSpec:           os.Getenv("UQBAR_CRON"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:         envOr("KAFKA_TOPIC", "acta.events"),
		WorkDir:            envOr("UQBAR_WORKDIR", "runs"),
		MusicDir:           envOr("UQBAR_MUSIC_DIR", "music"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = db
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
