package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Claude
	AnthropicAPIKey   string
	ClaudeModel       string
	ClaudeTemperature float64
	ClaudeMaxTokens   int
	CompletionTimeout time.Duration

	// Storage
	DBPath         string
	WhatsAppDBPath string
	RedisAddr      string
	CatalogueTTL   time.Duration

	// Auto-responder
	AutoReply             bool
	RequireVerifiedAccess bool
	WorkerCount           int
	RepliesPerMinute      int
	SchedulerInterval     time.Duration

	// Escalation e-mail
	ResendAPIKey    string
	EmailFrom       string
	EscalationEmail string

	HTTPPort  int
	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("claude_model", "claude-sonnet-4-20250514")
	v.SetDefault("claude_temperature", 0.7)
	v.SetDefault("claude_max_tokens", 500)
	v.SetDefault("completion_timeout", 30*time.Second)

	v.SetDefault("db_path", "./concierge.db")
	v.SetDefault("whatsapp_db_path", "./whatsapp.db")
	v.SetDefault("redis_addr", "")
	v.SetDefault("catalogue_ttl", 5*time.Minute)

	v.SetDefault("auto_reply", true)
	v.SetDefault("require_verified_access", true)
	v.SetDefault("worker_count", 4)
	v.SetDefault("replies_per_minute", 6)
	v.SetDefault("scheduler_interval", 30*time.Second)

	v.SetDefault("email_from", "")
	v.SetDefault("escalation_email", "")

	v.SetDefault("http_port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
}

// Load reads defaults, then an optional YAML file named by
// CONCIERGE_CONFIG_FILE, then CONCIERGE_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CONCIERGE")
	v.AutomaticEnv()
	if err := v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}
	if err := v.BindEnv("resend_api_key", "RESEND_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if path := os.Getenv("CONCIERGE_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		AnthropicAPIKey:   v.GetString("anthropic_api_key"),
		ClaudeModel:       v.GetString("claude_model"),
		ClaudeTemperature: v.GetFloat64("claude_temperature"),
		ClaudeMaxTokens:   v.GetInt("claude_max_tokens"),
		CompletionTimeout: v.GetDuration("completion_timeout"),

		DBPath:         v.GetString("db_path"),
		WhatsAppDBPath: v.GetString("whatsapp_db_path"),
		RedisAddr:      v.GetString("redis_addr"),
		CatalogueTTL:   v.GetDuration("catalogue_ttl"),

		AutoReply:             v.GetBool("auto_reply"),
		RequireVerifiedAccess: v.GetBool("require_verified_access"),
		WorkerCount:           v.GetInt("worker_count"),
		RepliesPerMinute:      v.GetInt("replies_per_minute"),
		SchedulerInterval:     v.GetDuration("scheduler_interval"),

		ResendAPIKey:    v.GetString("resend_api_key"),
		EmailFrom:       v.GetString("email_from"),
		EscalationEmail: v.GetString("escalation_email"),

		HTTPPort:  v.GetInt("http_port"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.HTTPPort <= 0 || c.HTTPPort > 65535:
		return fmt.Errorf("http_port out of range: %d", c.HTTPPort)
	case c.WorkerCount <= 0:
		return errors.New("worker_count must be positive")
	case c.CompletionTimeout < 0:
		return errors.New("completion_timeout must not be negative")
	case c.SchedulerInterval <= 0:
		return errors.New("scheduler_interval must be positive")
	case c.RepliesPerMinute < 0:
		return errors.New("replies_per_minute must not be negative")
	}
	return nil
}

// EmailConfigured reports whether escalation e-mails can be sent.
func (c *Config) EmailConfigured() bool {
	return c.ResendAPIKey != "" && c.EmailFrom != "" && c.EscalationEmail != ""
}
