// Package commands implements the bot's unit of work: named, stateless
// command objects resolved by name from a Registry. The router maps every
// inbound chat event to one command name; commands may chain into further
// commands through the Resolver injected at construction time.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/ports"
)

// Command names. The set is closed: resolving anything else is a
// programming error, not user input.
const (
	CmdStart                    = "start"
	CmdMenu                     = "menu"
	CmdDetails                  = "details"
	CmdAllDetails               = "all_details"
	CmdAddToCart                = "add_to_cart"
	CmdOpenCart                 = "open_cart"
	CmdCleanCart                = "clean_cart"
	CmdStartOrder               = "start_order"
	CmdConfirmOrder             = "confirm_order"
	CmdCancelOrder              = "cancel_order"
	CmdRequestOrderConfirmation = "request_order_confirmation"
	CmdRequestPhoneNumber       = "request_phone_number"
	CmdRequestLocation          = "request_location"
	CmdGotPhoneNumber           = "got_phone_number"
	CmdGotLocation              = "got_location"
)

// AddToCartPrefix is the callback payload prefix carrying a product id,
// e.g. "add_to_cart_7".
const AddToCartPrefix = "add_to_cart_"

// ErrUnknownCommand is returned by Resolve for unregistered names.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a single unit of work over one chat event. Instances are
// created fresh per invocation and hold no state of their own; per-user
// state lives on the session, persistent state behind the gateway.
type Command interface {
	Execute(ctx context.Context, sess *session.Session, update *ports.BotUpdate) error
}

// Resolver produces a ready-to-run command for a name. Commands that chain
// receive one via SetResolver; the router uses the same interface.
type Resolver interface {
	Resolve(name string) (Command, error)
}

// ResolverSetter marks commands that chain into other commands. The
// registry injects itself into every resolved instance implementing it.
type ResolverSetter interface {
	SetResolver(r Resolver)
}

// Deps bundles what every command needs: the remote data gateway, the
// outbound chat client and a logger.
type Deps struct {
	Gateway ports.Gateway
	Bot     ports.BotClientPort
	Log     zerolog.Logger
}

// chain resolves and runs another command as a continuation of the current
// one. Used by the order flow, where the next prompt is itself a command.
func chain(ctx context.Context, r Resolver, name string, sess *session.Session, update *ports.BotUpdate) error {
	cmd, err := r.Resolve(name)
	if err != nil {
		return fmt.Errorf("chain into %q: %w", name, err)
	}
	return cmd.Execute(ctx, sess, update)
}
