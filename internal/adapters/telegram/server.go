package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"PizzaBot/internal/shared/config"
)

// UpdateHandler is what the server feeds updates into; the bot router
// implements it.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *tgbotapi.Update)
}

// BotServer is responsible for running the bot (polling or webhook).
// Updates are dispatched to a worker pool sharded by user id, so two
// events from the same user are never processed concurrently — the
// checkout session relies on that ordering.
type BotServer struct {
	api     *tgbotapi.BotAPI
	handler UpdateHandler
	cfg     *config.BotConfig
	log     zerolog.Logger
}

// NewBotServer creates a new server instance.
func NewBotServer(
	api *tgbotapi.BotAPI,
	handler UpdateHandler,
	cfg *config.BotConfig,
	baseLogger *zerolog.Logger,
) *BotServer {
	return &BotServer{
		api:     api,
		handler: handler,
		cfg:     cfg,
		log:     baseLogger.With().Str("component", "bot_server").Logger(),
	}
}

// Start begins the bot server based on the config mode.
func (s *BotServer) Start(ctx context.Context) error {
	s.log.Info().Str("mode", s.cfg.Mode).Msg("Starting bot server...")

	switch s.cfg.Mode {
	case "polling":
		return s.startPolling(ctx)
	case "webhook":
		return s.startWebhook(ctx)
	default:
		return fmt.Errorf("unknown bot mode: %s", s.cfg.Mode)
	}
}

// shardFor picks the worker queue for an update. All updates of one user
// land on the same queue.
func shardFor(update *tgbotapi.Update, shards int) int {
	var userID int64
	switch {
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.From != nil:
		userID = update.Message.From.ID
	}
	if userID < 0 {
		userID = -userID
	}
	return int(userID % int64(shards))
}

// runWorkers starts one goroutine per shard and returns the shard queues.
func (s *BotServer) runWorkers(ctx context.Context, wg *sync.WaitGroup) []chan tgbotapi.Update {
	shards := make([]chan tgbotapi.Update, s.cfg.Workers)
	for i := range shards {
		shards[i] = make(chan tgbotapi.Update, 100)
		wg.Add(1)
		go func(id int, jobs <-chan tgbotapi.Update) {
			defer wg.Done()
			log := s.log.With().Int("worker_id", id).Logger()
			log.Info().Msg("Starting update worker")
			for {
				select {
				case <-ctx.Done():
					log.Info().Msg("Stopping update worker (context done)")
					return
				case job, ok := <-jobs:
					if !ok {
						log.Info().Msg("Stopping update worker (channel closed)")
						return
					}
					s.handler.HandleUpdate(context.Background(), &job)
				}
			}
		}(i, shards[i])
	}
	return shards
}

// startPolling starts the bot in long polling mode.
func (s *BotServer) startPolling(ctx context.Context) error {
	s.log.Info().Int("workers", s.cfg.Workers).Msg("Starting bot in POLLING mode")

	// Clear any existing webhook
	deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: false,
	}
	if _, err := s.api.Request(deleteWebhookConfig); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete webhook (continuing anyway)")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	shards := s.runWorkers(ctx, &wg)

	s.log.Info().Msg("Polling update listener started")

	for {
		select {
		case <-ctx.Done():
			for _, jobs := range shards {
				close(jobs)
			}
			s.api.StopReceivingUpdates()
			wg.Wait()
			s.log.Info().Msg("Polling stopped gracefully")
			return nil
		case update := <-updates:
			shards[shardFor(&update, len(shards))] <- update
		}
	}
}

// startWebhook starts the bot in webhook mode (for production).
// ListenAndServe without TLS assumes a reverse proxy terminates SSL.
func (s *BotServer) startWebhook(ctx context.Context) error {
	s.log.Info().
		Int("port", s.cfg.Webhook.ListenPort).
		Int("workers", s.cfg.Workers).
		Msg("Starting bot in WEBHOOK mode")

	webhookURL := fmt.Sprintf("%s/webhook/%s", s.cfg.Webhook.URL, s.api.Token)
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create webhook config")
		return err
	}
	if _, err := s.api.Request(wh); err != nil {
		s.log.Error().Err(err).Msg("Failed to set webhook")
		return err
	}

	info, err := s.api.GetWebhookInfo()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to get webhook info")
		return err
	}
	if info.LastErrorDate != 0 {
		s.log.Error().
			Str("error_message", info.LastErrorMessage).
			Msg("Telegram webhook has a last error")
	}

	updates := s.api.ListenForWebhook("/webhook/" + s.api.Token)

	listenAddr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Webhook.ListenPort)
	s.log.Info().Str("addr", listenAddr).Msg("Starting HTTP server for webhook")

	httpServer := &http.Server{Addr: listenAddr}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("Webhook HTTP server failed")
		}
	}()

	var wg sync.WaitGroup
	shards := s.runWorkers(ctx, &wg)

	s.log.Info().Msg("Webhook update listener started")
	for {
		select {
		case <-ctx.Done():
			for _, jobs := range shards {
				close(jobs)
			}
			s.log.Info().Msg("Shutting down HTTP server...")
			if err := httpServer.Shutdown(context.Background()); err != nil {
				s.log.Error().Err(err).Msg("HTTP server shutdown error")
			}
			wg.Wait()
			s.log.Info().Msg("Webhook server stopped gracefully")
			return nil
		case update := <-updates:
			shards[shardFor(&update, len(shards))] <- update
		}
	}
}
