package commands

import (
	"context"
	"fmt"

	"PizzaBot/internal/bot/messages"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/ports"
)

// detailsCommand shows one product looked up by free-text name. The name
// comes either from "/details <name>" arguments or from a menu button
// press routed through the details fallback.
type detailsCommand struct {
	deps *Deps
}

func (c *detailsCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()
	return showItemDetails(ctx, c.deps, update, update.Args)
}

// allDetailsCommand expands the whole menu into per-item details renders,
// in listing order. There is no separate display path: the output is the
// concatenation of what details would send for each name.
type allDetailsCommand struct {
	deps *Deps
}

func (c *allDetailsCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	sess.Reset()

	items, err := c.deps.Gateway.GetMenu(ctx)
	if err != nil {
		return fmt.Errorf("fetch menu: %w", err)
	}
	for _, item := range items {
		if err := showItemDetails(ctx, c.deps, update, item.Name); err != nil {
			return err
		}
	}
	return nil
}

// showItemDetails is the single render path for a product card: photo with
// caption when an image reference exists, plain text otherwise, either way
// with an add-to-cart button embedding the numeric product id.
func showItemDetails(ctx context.Context, deps *Deps, update *ports.BotUpdate, name string) error {
	item, err := deps.Gateway.GetItem(ctx, name)
	if err != nil {
		return fmt.Errorf("fetch item %q: %w", name, err)
	}
	if item == nil {
		msg := messages.NewBuilder(update.ChatID).WithText(textItemNotFound).Build()
		return deps.Bot.SendMessage(ctx, msg)
	}

	caption := fmt.Sprintf(
		"🍕 <b>%s</b>\n\n💡 <b>Склад:</b> <i>%s</i>\n\n💵 <b>Ціна:</b> %s грн",
		item.Name, item.Ingredients, formatPrice(item.Price),
	)
	markup := &ports.ReplyMarkup{
		IsInline: true,
		Buttons: [][]ports.Button{
			{{Text: labelAddToCart, Data: fmt.Sprintf("%s%d", AddToCartPrefix, item.ID)}},
		},
	}

	if item.ImageURL != "" {
		return deps.Bot.SendPhoto(ctx, ports.SendPhotoParams{
			ChatID:      update.ChatID,
			Photo:       item.ImageURL,
			Caption:     caption,
			ParseMode:   "HTML",
			ReplyMarkup: markup,
		})
	}

	return deps.Bot.SendMessage(ctx, ports.SendMessageParams{
		ChatID:      update.ChatID,
		Text:        caption,
		ParseMode:   "HTML",
		ReplyMarkup: markup,
	})
}
