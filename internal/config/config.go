package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lambrugeorge/colipop-site/internal/notify"
)

// Config is built once at startup and injected everywhere. Nothing below
// main reads the environment, so every channel-skip path is testable
// without environment mutation.
type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	// Empty RedisAddr selects the in-memory cart store.
	RedisAddr string

	CatalogDBPath  string
	MigrationsPath string

	ChannelTimeout time.Duration
	Notify         notify.Settings
}

// DefaultNotifyEmails are the business inboxes orders and contact messages
// are forwarded to; the first is the primary recipient.
var DefaultNotifyEmails = []string{
	"lambru_george@yahoo.com",
	"sc.colipop.sr@gmail.com",
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		CatalogDBPath:      getEnv("CATALOG_DB_PATH", "colipop.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),
		ChannelTimeout:     getEnvDuration("NOTIFY_CHANNEL_TIMEOUT", notify.DefaultChannelTimeout),
		Notify: notify.Settings{
			SMTP: notify.MailerConfig{
				Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
				Port:     getEnvInt("SMTP_PORT", 465),
				Username: getEnv("SMTP_USER", "sc.colipop.sr@gmail.com"),
				Password: getEnv("SMTP_PASSWORD", ""),
			},
			Web3FormsKey: getEnv("WEB3FORMS_KEY", ""),
			FormspreeID:  getEnv("FORMSPREE_ID", ""),
			Recipients:   splitList(getEnv("NOTIFY_EMAILS", strings.Join(DefaultNotifyEmails, ","))),
			FromName:     getEnv("NOTIFY_FROM_NAME", "ColiPop Website"),
			Chain:        notify.DefaultChain(),
		},
	}

	if path := getEnv("NOTIFY_CHANNELS_FILE", ""); path != "" {
		chain, err := loadChain(path)
		if err != nil {
			return nil, err
		}
		cfg.Notify.Chain = chain
	}

	return cfg, nil
}

// chainFile is the YAML shape of the optional channel configuration:
//
//	channels:
//	  - type: formsubmit
//	  - type: smtp
//	    disabled: true
type chainFile struct {
	Channels []struct {
		Type     string `yaml:"type"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"channels"`
}

func loadChain(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read channels file: %w", err)
	}

	var file chainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse channels file: %w", err)
	}

	var chain []string
	for _, ch := range file.Channels {
		if ch.Disabled {
			continue
		}
		chain = append(chain, ch.Type)
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("channels file %s enables no channels", path)
	}
	return chain, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
