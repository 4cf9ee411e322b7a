package commands

import (
	"context"
	"fmt"

	"PizzaBot/internal/bot/messages"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/domain"
	"PizzaBot/internal/core/ports"
)

// addToCartCommand adds the product whose id arrived in the button
// payload. The id is passed through as a string; the backend owns its
// format.
type addToCartCommand struct {
	deps *Deps
}

func (c *addToCartCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()

	productID := update.Args
	item, err := c.deps.Gateway.GetItemByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch item by id %q: %w", productID, err)
	}
	if item == nil {
		msg := messages.NewBuilder(update.ChatID).WithText(textItemNotFound).Build()
		return c.deps.Bot.SendMessage(ctx, msg)
	}

	if err := c.deps.Gateway.AddToCart(ctx, update.UserID, productID); err != nil {
		return fmt.Errorf("add item %q to cart: %w", productID, err)
	}

	msg := messages.NewBuilder(update.ChatID).
		WithText(textItemAdded).
		WithInlineButtons([][]ports.Button{{cartButton()}}).
		Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}

// openCartCommand renders the cart as a table plus the summed total, or
// the empty-cart screen when there is nothing in it.
type openCartCommand struct {
	deps *Deps
}

func (c *openCartCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()

	lines, err := c.deps.Gateway.GetCart(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}

	if len(lines) == 0 {
		msg := messages.NewBuilder(update.ChatID).
			WithText(textCartEmpty).
			WithInlineButtons([][]ports.Button{{menuButton()}}).
			Build()
		return c.deps.Bot.SendMessage(ctx, msg)
	}

	text := fmt.Sprintf(
		"<code>%s</code>\n\n💵 <b>До сплати:</b> %s грн",
		renderCartTable(lines), formatPrice(domain.CartTotal(lines)),
	)
	msg := messages.NewBuilder(update.ChatID).
		WithText(text).
		WithInlineButtons([][]ports.Button{
			{{Text: labelStartOrder, Data: CmdStartOrder}},
			{{Text: labelCleanCart, Data: CmdCleanCart}},
			{menuButton()},
		}).
		Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}

// cleanCartCommand empties the cart.
type cleanCartCommand struct {
	deps *Deps
}

func (c *cleanCartCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()

	if err := c.deps.Gateway.ClearCart(ctx, update.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	msg := messages.NewBuilder(update.ChatID).
		WithText(textCartCleaned).
		WithInlineButtons([][]ports.Button{{menuButton()}}).
		Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}
