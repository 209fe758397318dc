// Package config reads runtime settings from the environment, after loading
// a .env file when one is present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"healthmate/internal/events"
	"healthmate/internal/kv"
)

type Config struct {
	KV        kv.Config
	KeyPrefix string
	Events    events.Config

	JWTSecret  string
	SessionTTL time.Duration

	GRPCPort string
	WebPort  string
}

// Load reads .env (if any) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	pathStyle, err := strconv.ParseBool(env("HM_S3_PATH_STYLE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("HM_S3_PATH_STYLE: %w", err)
	}
	ttl, err := time.ParseDuration(env("SESSION_TTL", "8h"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}

	return Config{
		KV: kv.Config{
			Driver:      env("HM_KV_DRIVER", kv.DriverSQLite),
			DSN:         env("HM_KV_DSN", "healthmate.db"),
			S3Region:    os.Getenv("HM_S3_REGION"),
			S3Endpoint:  os.Getenv("HM_S3_ENDPOINT"),
			S3PathStyle: pathStyle,
		},
		KeyPrefix: os.Getenv("HM_KEY_PREFIX"),
		Events: events.Config{
			Driver:       env("HM_EVENTS_DRIVER", "log"),
			KafkaBrokers: splitList(env("HM_KAFKA_BROKERS", "localhost:9092")),
			KafkaTopic:   env("HM_KAFKA_TOPIC", "healthmate.events"),
			SQSQueue:     os.Getenv("HM_SQS_QUEUE"),
		},
		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: ttl,
		GRPCPort:   env("PORT", "50051"),
		WebPort:    env("WEB_PORT", "8080"),
	}, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
