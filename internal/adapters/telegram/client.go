package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"PizzaBot/internal/core/ports"
)

// tgClient implements the BotClientPort.
type tgClient struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

// NewClient creates a new Telegram client adapter.
func NewClient(api *tgbotapi.BotAPI, baseLogger *zerolog.Logger) ports.BotClientPort {
	log := baseLogger.With().Str("component", "tg_client").Logger()
	return &tgClient{api: api, log: log}
}

// SendMessage translates our params into a tgbotapi message.
func (c *tgClient) SendMessage(ctx context.Context, params ports.SendMessageParams) error {
	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	msg.ParseMode = params.ParseMode

	// Handle keyboard removal first
	if params.RemoveKeyboard {
		msg.ReplyMarkup = tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true}
	} else if params.ReplyMarkup != nil {
		if params.ReplyMarkup.IsInline {
			msg.ReplyMarkup = buildInlineKeyboard(params.ReplyMarkup.Buttons)
		} else {
			msg.ReplyMarkup = buildReplyKeyboard(params.ReplyMarkup.Buttons, params.OneTime)
		}
	}

	if _, err := c.api.Send(msg); err != nil {
		c.log.Error().Err(err).Int64("chat_id", params.ChatID).Msg("Failed to send message")
		return err
	}
	return nil
}

// SendPhoto sends a photo by URL with a caption and optional keyboard.
func (c *tgClient) SendPhoto(ctx context.Context, params ports.SendPhotoParams) error {
	msg := tgbotapi.NewPhoto(params.ChatID, tgbotapi.FileURL(params.Photo))
	msg.Caption = params.Caption
	msg.ParseMode = params.ParseMode
	if params.ReplyMarkup != nil && params.ReplyMarkup.IsInline {
		msg.ReplyMarkup = buildInlineKeyboard(params.ReplyMarkup.Buttons)
	}

	if _, err := c.api.Send(msg); err != nil {
		c.log.Error().Err(err).Int64("chat_id", params.ChatID).Msg("Failed to send photo")
		return err
	}
	return nil
}

// SendLocation sends a map pin with an optional inline keyboard.
func (c *tgClient) SendLocation(ctx context.Context, params ports.SendLocationParams) error {
	msg := tgbotapi.NewLocation(params.ChatID, params.Latitude, params.Longitude)
	if params.ReplyMarkup != nil && params.ReplyMarkup.IsInline {
		msg.ReplyMarkup = buildInlineKeyboard(params.ReplyMarkup.Buttons)
	}

	if _, err := c.api.Send(msg); err != nil {
		c.log.Error().Err(err).Int64("chat_id", params.ChatID).Msg("Failed to send location")
		return err
	}
	return nil
}

// AnswerCallbackQuery sends a response to a callback query (stops the spinner).
func (c *tgClient) AnswerCallbackQuery(ctx context.Context, params ports.AnswerCallbackParams) error {
	callbackConfig := tgbotapi.NewCallback(params.CallbackQueryID, params.Text)

	if _, err := c.api.Request(callbackConfig); err != nil {
		c.log.Error().Err(err).
			Str("callback_query_id", params.CallbackQueryID).
			Msg("Failed to answer callback query")
		return err
	}
	return nil
}

// buildInlineKeyboard is a helper to create the inline keyboard.
func buildInlineKeyboard(buttons [][]ports.Button) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, buttonRow := range buttons {
		var row []tgbotapi.InlineKeyboardButton
		for _, btn := range buttonRow {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildReplyKeyboard is a helper to create the reply (non-inline) keyboard.
func buildReplyKeyboard(buttons [][]ports.Button, oneTime bool) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, buttonRow := range buttons {
		var row []tgbotapi.KeyboardButton
		for _, btn := range buttonRow {
			if btn.RequestContact {
				row = append(row, tgbotapi.NewKeyboardButtonContact(btn.Text))
			} else {
				row = append(row, tgbotapi.NewKeyboardButton(btn.Text))
			}
		}
		rows = append(rows, row)
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	markup.OneTimeKeyboard = oneTime
	return markup
}
