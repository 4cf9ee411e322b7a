package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv  string
	Bot     BotConfig
	Gateway GatewayConfig
}

// BotConfig configures the Telegram connection.
type BotConfig struct {
	Token   string
	Mode    string // "polling" or "webhook"
	Workers int
	Webhook WebhookConfig
}

// WebhookConfig is only consulted when Mode is "webhook".
type WebhookConfig struct {
	URL        string
	ListenPort int
}

// GatewayConfig selects and configures the data gateway adapter.
type GatewayConfig struct {
	Mode        string // "api" (remote storefront) or "postgres" (self-hosted)
	APIURL      string
	DatabaseURL string
}

// Load loads configuration from environment variables, with a .env file
// feeding the process environment first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in prod; anything else is worth failing on.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	bindings := map[string]string{
		"app.env":          "APP_ENV",
		"bot.token":        "BOT_TOKEN",
		"bot.mode":         "BOT_MODE",
		"bot.workers":      "BOT_WORKERS",
		"bot.webhook.url":  "WEBHOOK_URL",
		"bot.webhook.port": "WEBHOOK_PORT",
		"gateway.mode":     "GATEWAY_MODE",
		"gateway.api_url":  "API_URL",
		"gateway.db_url":   "DATABASE_URL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("bot.mode", "polling")
	viper.SetDefault("bot.workers", 4)
	viper.SetDefault("bot.webhook.port", 8443)
	viper.SetDefault("gateway.mode", "api")

	cfg := Config{
		AppEnv: viper.GetString("app.env"),
		Bot: BotConfig{
			Token:   viper.GetString("bot.token"),
			Mode:    viper.GetString("bot.mode"),
			Workers: viper.GetInt("bot.workers"),
			Webhook: WebhookConfig{
				URL:        viper.GetString("bot.webhook.url"),
				ListenPort: viper.GetInt("bot.webhook.port"),
			},
		},
		Gateway: GatewayConfig{
			Mode:        viper.GetString("gateway.mode"),
			APIURL:      viper.GetString("gateway.api_url"),
			DatabaseURL: viper.GetString("gateway.db_url"),
		},
	}

	if cfg.Bot.Token == "" {
		return nil, errors.New("BOT_TOKEN is not set in environment or .env file")
	}
	if cfg.Bot.Mode != "polling" && cfg.Bot.Mode != "webhook" {
		return nil, fmt.Errorf("BOT_MODE must be 'polling' or 'webhook', got %q", cfg.Bot.Mode)
	}
	if cfg.Bot.Workers < 1 {
		return nil, fmt.Errorf("BOT_WORKERS must be at least 1, got %d", cfg.Bot.Workers)
	}
	if cfg.Bot.Mode == "webhook" && cfg.Bot.Webhook.URL == "" {
		return nil, errors.New("WEBHOOK_URL is required in webhook mode")
	}

	switch cfg.Gateway.Mode {
	case "api":
		if cfg.Gateway.APIURL == "" {
			return nil, errors.New("API_URL is required when GATEWAY_MODE is 'api'")
		}
	case "postgres":
		if cfg.Gateway.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when GATEWAY_MODE is 'postgres'")
		}
	default:
		return nil, fmt.Errorf("GATEWAY_MODE must be 'api' or 'postgres', got %q", cfg.Gateway.Mode)
	}

	return &cfg, nil
}
