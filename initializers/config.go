package initializers

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	DBURL       string        `envconfig:"DB_URL" required:"true"`
	Secret      string        `envconfig:"SECRET" required:"true"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	RedisURL    string        `envconfig:"REDIS_URL"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string        `envconfig:"LOG_FORMAT" default:"json"`
	GinMode     string        `envconfig:"GIN_MODE" default:"release"`
	RateLimited bool          `envconfig:"RATE_LIMITED" default:"true"`

	ResendAPIKey    string `envconfig:"RESEND_API_KEY"`
	ResendFromEmail string `envconfig:"RESEND_FROM_EMAIL" default:"Grace Harbor <noreply@graceharbor.church>"`

	FirebaseServiceAccountPath string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	LiveStreamPoll             string `envconfig:"LIVE_STREAM_POLL" default:"@every 60s"`
	LiveStreamTopic            string `envconfig:"LIVE_STREAM_TOPIC" default:"live-stream"`
}

var Cfg Config

// LoadEnv reads .env when present and parses the environment into Cfg.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	return ParseConfig()
}

// ParseConfig parses the current environment into Cfg.
func ParseConfig() error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	Cfg = cfg
	return nil
}
