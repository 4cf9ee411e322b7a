package commands

import (
	"context"
	"fmt"

	"PizzaBot/internal/bot/messages"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/ports"
)

// menuCommand lists the menu as one button per product. Button payloads
// are the product names themselves; the router's details fallback turns a
// press into a lookup.
type menuCommand struct {
	deps *Deps
}

func (c *menuCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()

	items, err := c.deps.Gateway.GetMenu(ctx)
	if err != nil {
		return fmt.Errorf("fetch menu: %w", err)
	}

	buttons := make([][]ports.Button, 0, len(items)+1)
	for _, item := range items {
		buttons = append(buttons, []ports.Button{{Text: item.Name, Data: item.Name}})
	}
	buttons = append(buttons, []ports.Button{{Text: labelAllDetails, Data: CmdAllDetails}})

	msg := messages.NewBuilder(update.ChatID).
		WithText(textMenuHeader).
		WithInlineButtons(buttons).
		Build()

	return c.deps.Bot.SendMessage(ctx, msg)
}
