// Package bot routes inbound Telegram updates to named commands.
package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"PizzaBot/internal/bot/commands"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/ports"
)

// Router is the single entry point for chat events. It classifies each
// update into one of four categories (typed command, button press, contact
// share, location share), maps the category to a command name, and runs
// the command. It is also the error boundary: a failing handler is logged
// and swallowed, never propagated to the transport.
type Router struct {
	log      zerolog.Logger
	registry commands.Resolver
	sessions *session.Store
	bot      ports.BotClientPort
}

// NewRouter creates a router over a populated command registry.
func NewRouter(
	registry commands.Resolver,
	sessions *session.Store,
	botClient ports.BotClientPort,
	baseLogger *zerolog.Logger,
) *Router {
	return &Router{
		log:      baseLogger.With().Str("component", "router").Logger(),
		registry: registry,
		sessions: sessions,
		bot:      botClient,
	}
}

// HandleUpdate processes one update from Telegram.
func (r *Router) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	botUpdate, ok := parseUpdate(update)
	if !ok {
		r.log.Debug().Int("update_id", update.UpdateID).Msg("Ignoring unsupported update type")
		return
	}

	log := r.log.With().
		Int64("user_id", botUpdate.UserID).
		Int64("chat_id", botUpdate.ChatID).
		Logger()
	ctx = log.WithContext(ctx)

	switch {
	case botUpdate.Command != "":
		r.routeCommand(ctx, &log, botUpdate)
	case botUpdate.Contact != nil:
		r.execute(ctx, &log, commands.CmdGotPhoneNumber, botUpdate)
	case botUpdate.Location != nil:
		r.execute(ctx, &log, commands.CmdGotLocation, botUpdate)
	case botUpdate.CallbackData != nil:
		r.routeCallback(ctx, &log, botUpdate)
	default:
		log.Debug().Str("text", botUpdate.Text).Msg("Ignoring plain text message")
	}
}

// routeCommand handles typed slash commands. Only /start and /details are
// part of the bot's surface; everything else is ignored.
func (r *Router) routeCommand(ctx context.Context, log *zerolog.Logger, update *ports.BotUpdate) {
	switch update.Command {
	case "start":
		r.execute(ctx, log, commands.CmdStart, update)
	case "details":
		r.execute(ctx, log, commands.CmdDetails, update)
	default:
		log.Debug().Str("command", update.Command).Msg("Ignoring unknown slash command")
	}
}

// routeCallback handles inline button presses. Payloads starting with the
// product-add prefix carry a product id; any other payload is first tried
// as a command name and, failing that, treated as a product name for the
// details lookup — menu buttons are labeled with product names and reuse
// the generic detail path instead of a separate callback namespace.
func (r *Router) routeCallback(ctx context.Context, log *zerolog.Logger, update *ports.BotUpdate) {
	// Stop the client-side spinner regardless of what happens next.
	if err := r.bot.AnswerCallbackQuery(ctx, ports.AnswerCallbackParams{
		CallbackQueryID: update.CallbackQueryID,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to answer callback query")
	}

	data := *update.CallbackData

	if strings.HasPrefix(data, commands.AddToCartPrefix) {
		update.Args = strings.TrimPrefix(data, commands.AddToCartPrefix)
		r.execute(ctx, log, commands.CmdAddToCart, update)
		return
	}

	err := r.run(ctx, data, update)
	if errors.Is(err, commands.ErrUnknownCommand) {
		update.Args = data
		r.execute(ctx, log, commands.CmdDetails, update)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("command", data).Msg("Command failed")
	}
}

// execute runs a command by name, logging and swallowing any failure.
// This is the single cross-cutting failure boundary: the user sees no
// response rather than a raw error.
func (r *Router) execute(ctx context.Context, log *zerolog.Logger, name string, update *ports.BotUpdate) {
	if err := r.run(ctx, name, update); err != nil {
		log.Error().Err(err).Str("command", name).Msg("Command failed")
	}
}

// run resolves and executes one command against the user's session.
func (r *Router) run(ctx context.Context, name string, update *ports.BotUpdate) error {
	cmd, err := r.registry.Resolve(name)
	if err != nil {
		return err
	}
	sess := r.sessions.Get(update.UserID)
	return cmd.Execute(ctx, sess, update)
}

// parseUpdate converts a tgbotapi.Update into the transport-independent
// event the commands consume.
func parseUpdate(update *tgbotapi.Update) (*ports.BotUpdate, bool) {
	if cb := update.CallbackQuery; cb != nil && cb.Message != nil {
		return &ports.BotUpdate{
			MessageID:       cb.Message.MessageID,
			ChatID:          cb.Message.Chat.ID,
			UserID:          cb.From.ID,
			Username:        cb.From.UserName,
			FirstName:       cb.From.FirstName,
			LastName:        cb.From.LastName,
			CallbackQueryID: cb.ID,
			CallbackData:    &cb.Data,
		}, true
	}

	if msg := update.Message; msg != nil && msg.From != nil {
		botUpdate := &ports.BotUpdate{
			MessageID: msg.MessageID,
			ChatID:    msg.Chat.ID,
			UserID:    msg.From.ID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			Text:      msg.Text,
			Command:   msg.Command(),
			Args:      msg.CommandArguments(),
		}
		if msg.Contact != nil {
			botUpdate.Contact = &ports.ContactInfo{
				PhoneNumber: msg.Contact.PhoneNumber,
				UserID:      msg.Contact.UserID,
			}
		}
		if msg.Location != nil {
			botUpdate.Location = &ports.LocationInfo{
				Latitude:  msg.Location.Latitude,
				Longitude: msg.Location.Longitude,
			}
		}
		return botUpdate, true
	}

	return nil, false
}
