package commands

import (
	"context"
	"errors"
	"fmt"

	"PizzaBot/internal/bot/messages"
	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/domain"
	"PizzaBot/internal/core/ports"
)

// The checkout conversation is a fixed linear chain of commands:
//
//	start_order -> request_phone_number -> (contact) got_phone_number
//	            -> request_location     -> (location) got_location
//	            -> request_order_confirmation -> confirm_order / cancel_order
//
// Known users skip straight from start_order to the confirmation screen.
// Each guarded step re-checks sess.InProgress() rather than trusting
// control flow, because every command is independently reachable from a
// button press; a stray continuation falls back to the start screen.

// startOrderCommand enters the checkout flow.
type startOrderCommand struct {
	deps     *Deps
	resolver Resolver
}

func (c *startOrderCommand) SetResolver(r Resolver) { c.resolver = r }

func (c *startOrderCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	user, err := c.deps.Gateway.GetUser(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}

	if user != nil {
		sess.Stage = session.StageAwaitingConfirmation
		return chain(ctx, c.resolver, CmdRequestOrderConfirmation, sess, update)
	}

	newUser := &domain.User{
		TelegramID: update.UserID,
		Username:   update.Username,
		FirstName:  update.FirstName,
		LastName:   update.LastName,
	}
	if err := c.deps.Gateway.RegisterUser(ctx, newUser); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	c.deps.Log.Info().Int64("user_id", update.UserID).Msg("Registered new customer")

	sess.Stage = session.StageAwaitingPhone
	return chain(ctx, c.resolver, CmdRequestPhoneNumber, sess, update)
}

// requestPhoneNumberCommand prompts for the contact card. Pure prompt,
// no state change.
type requestPhoneNumberCommand struct {
	deps *Deps
}

func (c *requestPhoneNumberCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	msg := messages.NewBuilder(update.ChatID).
		WithText(textPhoneRequest).
		WithContactButton(labelShareContact).
		Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}

// requestLocationCommand prompts for a location share. Pure prompt, no
// state change: it is also reachable from the "change address" button on
// the confirmation screen.
type requestLocationCommand struct {
	deps *Deps
}

func (c *requestLocationCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	msg := messages.NewBuilder(update.ChatID).WithText(textLocationRequest).Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}

// gotPhoneNumberCommand handles the shared contact card mid-flow.
type gotPhoneNumberCommand struct {
	deps     *Deps
	resolver Resolver
}

func (c *gotPhoneNumberCommand) SetResolver(r Resolver) { c.resolver = r }

func (c *gotPhoneNumberCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	if !sess.InProgress() {
		// Stray contact share outside checkout.
		return chain(ctx, c.resolver, CmdStart, sess, update)
	}
	if update.Contact == nil {
		return errors.New("got_phone_number without contact payload")
	}

	if err := c.deps.Gateway.UpdateUserContact(ctx, update.UserID, update.Contact.PhoneNumber, ""); err != nil {
		return fmt.Errorf("store phone number: %w", err)
	}

	msg := messages.NewBuilder(update.ChatID).
		WithText(textPhoneSaved).
		WithRemoveKeyboard().
		Build()
	if err := c.deps.Bot.SendMessage(ctx, msg); err != nil {
		return err
	}

	sess.Stage = session.StageAwaitingLocation
	return chain(ctx, c.resolver, CmdRequestLocation, sess, update)
}

// gotLocationCommand handles the shared delivery location mid-flow.
type gotLocationCommand struct {
	deps     *Deps
	resolver Resolver
}

func (c *gotLocationCommand) SetResolver(r Resolver) { c.resolver = r }

func (c *gotLocationCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	if !sess.InProgress() {
		return chain(ctx, c.resolver, CmdStart, sess, update)
	}
	if update.Location == nil {
		return errors.New("got_location without location payload")
	}

	encoded := domain.Location{
		Latitude:  update.Location.Latitude,
		Longitude: update.Location.Longitude,
	}.Encode()
	if err := c.deps.Gateway.UpdateUserContact(ctx, update.UserID, "", encoded); err != nil {
		return fmt.Errorf("store location: %w", err)
	}

	msg := messages.NewBuilder(update.ChatID).WithText(textLocationSaved).Build()
	if err := c.deps.Bot.SendMessage(ctx, msg); err != nil {
		return err
	}

	sess.Stage = session.StageAwaitingConfirmation
	return chain(ctx, c.resolver, CmdRequestOrderConfirmation, sess, update)
}

// requestOrderConfirmationCommand shows the order summary: the cart table
// and contact details as one message, then the delivery pin as a second
// message carrying the confirm/cancel/change-address keyboard.
type requestOrderConfirmationCommand struct {
	deps     *Deps
	resolver Resolver
}

func (c *requestOrderConfirmationCommand) SetResolver(r Resolver) { c.resolver = r }

func (c *requestOrderConfirmationCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	if !sess.InProgress() {
		return chain(ctx, c.resolver, CmdStart, sess, update)
	}

	lines, err := c.deps.Gateway.GetCart(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	user, err := c.deps.Gateway.GetUser(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no profile for user %d mid-checkout", update.UserID)
	}

	// Users who never shared an address decode to (0,0) and still get a
	// pin rendered. Kept as-is for compatibility with the backend data.
	loc, err := domain.ParseLocation(user.Location)
	if err != nil {
		return fmt.Errorf("decode stored location: %w", err)
	}

	text := fmt.Sprintf(
		"📄 Ваше замовлення:\n<code>%s</code>\n\n💵 <b>До сплати:</b> %s\n\n📱 Номер телефону: %s\n🗺️ Адреса доставки:",
		renderCartTable(lines), formatPrice(domain.CartTotal(lines)), user.PhoneNumber,
	)
	msg := messages.NewBuilder(update.ChatID).WithText(text).Build()
	if err := c.deps.Bot.SendMessage(ctx, msg); err != nil {
		return err
	}

	return c.deps.Bot.SendLocation(ctx, ports.SendLocationParams{
		ChatID:    update.ChatID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		ReplyMarkup: &ports.ReplyMarkup{
			IsInline: true,
			Buttons: [][]ports.Button{
				{{Text: labelConfirmOrder, Data: CmdConfirmOrder}},
				{{Text: labelCancelOrder, Data: CmdCancelOrder}},
				{{Text: labelChangeAddress, Data: CmdRequestLocation}},
			},
		},
	})
}

// confirmOrderCommand submits the order and leaves the flow. The stage is
// reset before any gateway call: whatever happens next, the checkout is
// over for this session.
type confirmOrderCommand struct {
	deps     *Deps
	resolver Resolver
}

func (c *confirmOrderCommand) SetResolver(r Resolver) { c.resolver = r }

func (c *confirmOrderCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	if !sess.InProgress() {
		return chain(ctx, c.resolver, CmdStart, sess, update)
	}
	sess.Reset()

	lines, err := c.deps.Gateway.GetCart(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	user, err := c.deps.Gateway.GetUser(ctx, update.UserID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no profile for user %d mid-checkout", update.UserID)
	}

	order := &domain.Order{
		UserID:      update.UserID,
		PhoneNumber: user.PhoneNumber,
		Lines:       domain.OrderLinesFromCart(lines),
		Total:       domain.CartTotal(lines),
		Location:    user.Location,
	}
	orderID, err := c.deps.Gateway.CreateOrder(ctx, order)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if err := c.deps.Gateway.ClearCart(ctx, update.UserID); err != nil {
		return fmt.Errorf("clear cart after order %s: %w", orderID, err)
	}
	c.deps.Log.Info().
		Int64("user_id", update.UserID).
		Str("order_id", orderID).
		Msg("Order submitted")

	msg := messages.NewBuilder(update.ChatID).
		WithText(fmt.Sprintf("✅ Ваше замовлення #%s оформлено. Очікуйте на дзвінок кур'єра ❣️", orderID)).
		Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}

// cancelOrderCommand abandons the checkout.
type cancelOrderCommand struct {
	deps     *Deps
	resolver Resolver
}

func (c *cancelOrderCommand) SetResolver(r Resolver) { c.resolver = r }

func (c *cancelOrderCommand) Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error {
	if !sess.InProgress() {
		return chain(ctx, c.resolver, CmdStart, sess, update)
	}
	sess.Reset()

	msg := messages.NewBuilder(update.ChatID).
		WithText(textOrderCancelled).
		WithInlineButtons([][]ports.Button{
			{menuButton()},
			{cartButton()},
		}).
		Build()
	return c.deps.Bot.SendMessage(ctx, msg)
}
