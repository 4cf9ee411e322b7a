package commands

import (
	"fmt"
)

// Factory builds a fresh command instance. Instances are never pooled or
// reused across invocations.
type Factory func() Command

// Registry maps command names to factories. It holds no session state;
// Resolve is construction plus optional resolver injection, nothing more.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds a registry pre-populated with every bot command,
// all sharing the same dependencies.
func NewRegistry(deps *Deps) *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register(CmdStart, func() Command { return &startCommand{deps: deps} })
	r.Register(CmdMenu, func() Command { return &menuCommand{deps: deps} })
	r.Register(CmdDetails, func() Command { return &detailsCommand{deps: deps} })
	r.Register(CmdAllDetails, func() Command { return &allDetailsCommand{deps: deps} })
	r.Register(CmdAddToCart, func() Command { return &addToCartCommand{deps: deps} })
	r.Register(CmdOpenCart, func() Command { return &openCartCommand{deps: deps} })
	r.Register(CmdCleanCart, func() Command { return &cleanCartCommand{deps: deps} })
	r.Register(CmdStartOrder, func() Command { return &startOrderCommand{deps: deps} })
	r.Register(CmdConfirmOrder, func() Command { return &confirmOrderCommand{deps: deps} })
	r.Register(CmdCancelOrder, func() Command { return &cancelOrderCommand{deps: deps} })
	r.Register(CmdRequestOrderConfirmation, func() Command { return &requestOrderConfirmationCommand{deps: deps} })
	r.Register(CmdRequestPhoneNumber, func() Command { return &requestPhoneNumberCommand{deps: deps} })
	r.Register(CmdRequestLocation, func() Command { return &requestLocationCommand{deps: deps} })
	r.Register(CmdGotPhoneNumber, func() Command { return &gotPhoneNumberCommand{deps: deps} })
	r.Register(CmdGotLocation, func() Command { return &gotLocationCommand{deps: deps} })

	return r
}

// Register associates a name with a factory, replacing any previous one.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Resolve constructs a fresh instance for the name and, if the command
// chains into others, injects the registry itself before returning.
func (r *Registry) Resolve(name string) (Command, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	cmd := factory()
	if setter, ok := cmd.(ResolverSetter); ok {
		setter.SetResolver(r)
	}
	return cmd, nil
}
