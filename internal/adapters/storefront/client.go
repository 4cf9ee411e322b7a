// Package storefront implements the Gateway port as a JSON client over
// the storefront REST API. The client is a stateless request/response
// facade: no retries, no caching — a failed call surfaces as an error and
// the router's boundary decides what the user sees.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"PizzaBot/internal/core/domain"
	"PizzaBot/internal/core/ports"
)

type client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ ports.Gateway = (*client)(nil)

// NewClient creates a storefront API client rooted at baseURL.
func NewClient(baseURL string, baseLogger *zerolog.Logger) ports.Gateway {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     baseLogger.With().Str("component", "storefront").Logger(),
	}
}

// do performs one JSON round trip. A nil out discards the body; a 404
// reports absence through errNotFound so lookups can answer (nil, nil).
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

var errNotFound = fmt.Errorf("storefront: not found")

func (c *client) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *client) GetItem(ctx context.Context, name string) (*domain.MenuItem, error) {
	// Decoding into a pointer lets a JSON null body mean "absent".
	var item *domain.MenuItem
	err := c.do(ctx, http.MethodGet, "/menu/details/"+url.PathEscape(name), nil, &item)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *client) GetItemByID(ctx context.Context, productID string) (*domain.MenuItem, error) {
	var item *domain.MenuItem
	err := c.do(ctx, http.MethodGet, "/menu/details-by-id/"+url.PathEscape(productID), nil, &item)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *client) AddToCart(ctx context.Context, userID int64, productID string) error {
	payload := map[string]any{
		"user_id":    userID,
		"product_id": productID,
	}
	return c.do(ctx, http.MethodPost, "/cart/add", payload, nil)
}

func (c *client) GetCart(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	path := "/cart/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *client) ClearCart(ctx context.Context, userID int64) error {
	path := "/cart/clear/" + strconv.FormatInt(userID, 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *client) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var user *domain.User
	path := "/user/" + strconv.FormatInt(userID, 10)
	err := c.do(ctx, http.MethodGet, path, nil, &user)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *client) RegisterUser(ctx context.Context, user *domain.User) error {
	payload := map[string]any{
		"user_id":   user.TelegramID,
		"username":  user.Username,
		"firstname": user.FirstName,
		"lastname":  user.LastName,
	}
	return c.do(ctx, http.MethodPost, "/user/add", payload, nil)
}

func (c *client) UpdateUserContact(ctx context.Context, userID int64, phoneNumber, location string) error {
	// The backend treats null as "leave unchanged".
	payload := map[string]any{
		"user_id":      userID,
		"phone_number": nullable(phoneNumber),
		"location":     nullable(location),
	}
	return c.do(ctx, http.MethodPatch, "/user/update/contact", payload, nil)
}

func (c *client) CreateOrder(ctx context.Context, order *domain.Order) (string, error) {
	var result struct {
		OrderID json.Number `json:"order_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/order/create", order, &result); err != nil {
		return "", err
	}
	return result.OrderID.String(), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
