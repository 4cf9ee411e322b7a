package commands

import (
	"context"

	"PizzaBot/internal/bot/messages"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/ports"
)

// startCommand renders the welcome screen. It is also the universal
// fallback: every guarded order-flow command chains here when it fires
// out of sequence.
type startCommand struct {
	deps *Deps
}

func (c *startCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()

	msg := messages.NewBuilder(update.ChatID).
		WithText(textWelcome).
		WithInlineButtons([][]ports.Button{
			{menuButton()},
			{cartButton()},
		}).
		Build()

	return c.deps.Bot.SendMessage(ctx, msg)
}
