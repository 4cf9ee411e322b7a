// Package postgres implements the Gateway port directly against a
// database, for self-hosted deployments that run without the storefront
// API. Carts are materialized as (user, product, quantity) rows; line
// subtotals are computed from the menu price at read time.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"PizzaBot/internal/core/domain"
	"PizzaBot/internal/core/ports"
)

type gateway struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.Gateway = (*gateway)(nil)

// NewGateway creates a database-backed data gateway.
func NewGateway(db *DB, baseLogger *zerolog.Logger) ports.Gateway {
	return &gateway{
		db:  db,
		log: baseLogger.With().Str("component", "pg_gateway").Logger(),
	}
}

func (g *gateway) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := g.db.pool.Query(ctx, `
		SELECT id, name, ingredients, COALESCE(image_url, ''), price
		FROM menu_items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Ingredients, &item.ImageURL, &item.Price); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (g *gateway) GetItem(ctx context.Context, name string) (*domain.MenuItem, error) {
	return g.scanItem(g.db.pool.QueryRow(ctx, `
		SELECT id, name, ingredients, COALESCE(image_url, ''), price
		FROM menu_items
		WHERE name = $1
	`, name))
}

func (g *gateway) GetItemByID(ctx context.Context, productID string) (*domain.MenuItem, error) {
	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		// A non-numeric id cannot match anything; treat as absent.
		return nil, nil
	}
	return g.scanItem(g.db.pool.QueryRow(ctx, `
		SELECT id, name, ingredients, COALESCE(image_url, ''), price
		FROM menu_items
		WHERE id = $1
	`, id))
}

func (g *gateway) scanItem(row pgx.Row) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.Name, &item.Ingredients, &item.ImageURL, &item.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan menu item: %w", err)
	}
	return &item, nil
}

func (g *gateway) AddToCart(ctx context.Context, userID int64, productID string) error {
	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad product id %q: %w", productID, err)
	}
	_, err = g.db.pool.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1
	`, userID, id)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (g *gateway) GetCart(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	rows, err := g.db.pool.Query(ctx, `
		SELECT m.name, c.quantity, c.quantity * m.price
		FROM cart_items c
		JOIN menu_items m ON m.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY m.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.Name, &line.Quantity, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (g *gateway) ClearCart(ctx context.Context, userID int64) error {
	if _, err := g.db.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (g *gateway) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var user domain.User
	err := g.db.pool.QueryRow(ctx, `
		SELECT telegram_id, username, first_name, last_name,
		       COALESCE(phone_number, ''), COALESCE(location, '')
		FROM users
		WHERE telegram_id = $1
	`, userID).Scan(
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Location,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (g *gateway) RegisterUser(ctx context.Context, user *domain.User) error {
	_, err := g.db.pool.Exec(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO NOTHING
	`, user.TelegramID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (g *gateway) UpdateUserContact(ctx context.Context, userID int64, phoneNumber, location string) error {
	_, err := g.db.pool.Exec(ctx, `
		UPDATE users
		SET phone_number = COALESCE(NULLIF($2, ''), phone_number),
		    location     = COALESCE(NULLIF($3, ''), location)
		WHERE telegram_id = $1
	`, userID, phoneNumber, location)
	if err != nil {
		return fmt.Errorf("update user contact: %w", err)
	}
	return nil
}

func (g *gateway) CreateOrder(ctx context.Context, order *domain.Order) (string, error) {
	tx, err := g.db.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	orderID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, phone_number, total_price, location)
		VALUES ($1, $2, $3, $4, $5)
	`, orderID, order.UserID, order.PhoneNumber, order.Total, order.Location)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_lines (order_id, name, quantity, subtotal)
			VALUES ($1, $2, $3, $4)
		`, orderID, line.Name, line.Quantity, line.Subtotal)
		if err != nil {
			return "", fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit order tx: %w", err)
	}

	g.log.Info().Str("order_id", orderID.String()).Int64("user_id", order.UserID).Msg("Order persisted")
	return orderID.String(), nil
}
