package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process-level configuration for the admin gateway.
// Values come from the environment so main stays lean.
type Server struct {
	Addr          string        `env:"AMORIA_ADDR" envDefault:":8080"`
	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"8h"`

	// ManualSearchEnabled gates the operator-triggered person search. The
	// automated pipeline runs on profile update instead; the endpoint stays
	// registered and reports "not available" while the flag is off.
	ManualSearchEnabled bool `env:"MANUAL_SEARCH_ENABLED" envDefault:"false"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic   string   `env:"AUDIT_TOPIC" envDefault:"amoria.admin.audit"`

	SearchBugBaseURL string        `env:"SEARCHBUG_BASE_URL"`
	SearchBugAPIKey  string        `env:"SEARCHBUG_API_KEY"`
	SearchBugTimeout time.Duration `env:"SEARCHBUG_TIMEOUT" envDefault:"30s"`

	ReportCacheTTL time.Duration `env:"REPORT_CACHE_TTL" envDefault:"15m"`
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
