package ports

import (
	"PizzaBot/internal/core/domain"
	"context"
)

// Gateway is the remote backend that owns all persistent state: the menu,
// per-user carts, user profiles and orders. The bot keeps nothing locally
// beyond the in-flight checkout stage; every command re-fetches through
// this port. Lookups return (nil, nil) when the record does not exist —
// absence is an answer, not an error.
type Gateway interface {
	// GetMenu returns all products in listing order.
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)

	// GetItem finds a product by its exact name.
	GetItem(ctx context.Context, name string) (*domain.MenuItem, error)

	// GetItemByID finds a product by the id embedded in button payloads.
	// The id stays a string end to end; the backend owns its format.
	GetItemByID(ctx context.Context, productID string) (*domain.MenuItem, error)

	AddToCart(ctx context.Context, userID int64, productID string) error
	GetCart(ctx context.Context, userID int64) ([]domain.CartLine, error)
	ClearCart(ctx context.Context, userID int64) error

	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	RegisterUser(ctx context.Context, user *domain.User) error

	// UpdateUserContact patches the stored phone number and/or location.
	// Empty strings mean "leave unchanged".
	UpdateUserContact(ctx context.Context, userID int64, phoneNumber, location string) error

	// CreateOrder submits an order and returns the backend-assigned id.
	CreateOrder(ctx context.Context, order *domain.Order) (string, error)
}
