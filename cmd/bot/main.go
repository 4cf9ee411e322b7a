package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"PizzaBot/internal/adapters/postgres"
	"PizzaBot/internal/adapters/storefront"
	"PizzaBot/internal/adapters/telegram"
	"PizzaBot/internal/bot"
	"PizzaBot/internal/bot/commands"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/ports"
	"PizzaBot/internal/shared/config"
	"PizzaBot/internal/shared/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("bot_mode", cfg.Bot.Mode).
		Str("gateway_mode", cfg.Gateway.Mode).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the data gateway adapter.
	var gateway ports.Gateway
	switch cfg.Gateway.Mode {
	case "api":
		gateway = storefront.NewClient(cfg.Gateway.APIURL, &baseLogger)
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Gateway.DatabaseURL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		gateway = postgres.NewGateway(db, &baseLogger)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}
	api.Debug = isDevMode
	baseLogger.Info().Str("username", api.Self.UserName).Msg("Bot API connected")

	client := telegram.NewClient(api, &baseLogger)
	registry := commands.NewRegistry(&commands.Deps{
		Gateway: gateway,
		Bot:     client,
		Log:     baseLogger.With().Str("component", "commands").Logger(),
	})
	router := bot.NewRouter(registry, session.NewStore(), client, &baseLogger)

	server := telegram.NewBotServer(api, router, &cfg.Bot, &baseLogger)
	if err := server.Start(ctx); err != nil {
		baseLogger.Fatal().Err(err).Msg("Bot server failed")
	}
	baseLogger.Info().Msg("Shutdown complete")
}
