package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	DatabaseURL           string
	RedisURL              string
	NATSURL               string
	EventChannelBase      string
	OpenAIAPIKey          string
	OpenAIModel           string
	OpenAIEvaluateTimeout time.Duration
	OpenAISuggestTimeout  time.Duration
	OpenAIGenerateTimeout time.Duration
	SessionDuration       time.Duration
	MaxQuestions          int
	InactivityWindow      time.Duration
	ResponseTimeout       time.Duration
	ConversationTTL       time.Duration
	ReportCacheTTL        time.Duration
	SeedEnabled           bool
	SeedToken             string
	RateLimitPerMinute    int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INTERVIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Intervia API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("events.channel_base", "intervia")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.evaluate_timeout", "30s")
	v.SetDefault("openai.suggest_timeout", "15s")
	v.SetDefault("openai.generate_timeout", "30s")
	v.SetDefault("session.duration", "1h")
	v.SetDefault("session.max_questions", 20)
	v.SetDefault("session.inactivity_window", "30m")
	v.SetDefault("conversation.response_timeout", "90s")
	v.SetDefault("conversation.ttl", "1h")
	v.SetDefault("report.cache_ttl", "24h")
	v.SetDefault("rate_limit.per_minute", 60)

	evaluateTimeout, err := parseDuration(v, "openai.evaluate_timeout", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	suggestTimeout, err := parseDuration(v, "openai.suggest_timeout", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	generateTimeout, err := parseDuration(v, "openai.generate_timeout", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	sessionDuration, err := parseDuration(v, "session.duration", time.Hour)
	if err != nil {
		return Config{}, err
	}
	inactivityWindow, err := parseDuration(v, "session.inactivity_window", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}
	responseTimeout, err := parseDuration(v, "conversation.response_timeout", 90*time.Second)
	if err != nil {
		return Config{}, err
	}
	conversationTTL, err := parseDuration(v, "conversation.ttl", time.Hour)
	if err != nil {
		return Config{}, err
	}
	reportCacheTTL, err := parseDuration(v, "report.cache_ttl", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		DatabaseURL:           v.GetString("database.url"),
		RedisURL:              v.GetString("redis.url"),
		NATSURL:               v.GetString("nats.url"),
		EventChannelBase:      v.GetString("events.channel_base"),
		OpenAIAPIKey:          v.GetString("openai_api_key"),
		OpenAIModel:           v.GetString("openai.model"),
		OpenAIEvaluateTimeout: evaluateTimeout,
		OpenAISuggestTimeout:  suggestTimeout,
		OpenAIGenerateTimeout: generateTimeout,
		SessionDuration:       sessionDuration,
		MaxQuestions:          v.GetInt("session.max_questions"),
		InactivityWindow:      inactivityWindow,
		ResponseTimeout:       responseTimeout,
		ConversationTTL:       conversationTTL,
		ReportCacheTTL:        reportCacheTTL,
		SeedEnabled:           v.GetBool("seed.enabled"),
		SeedToken:             v.GetString("seed.token"),
		RateLimitPerMinute:    v.GetInt("rate_limit.per_minute"),
	}

	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = 20
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 60
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
