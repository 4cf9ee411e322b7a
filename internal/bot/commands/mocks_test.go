package commands

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"PizzaBot/internal/core/domain"
	"PizzaBot/internal/core/ports"
)

// --- Mocks ---

// MockGateway is a testify mock for the data gateway.
type MockGateway struct {
	mock.Mock
}

var _ ports.Gateway = (*MockGateway)(nil)

func (m *MockGateway) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MockGateway) GetItem(ctx context.Context, name string) (*domain.MenuItem, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockGateway) GetItemByID(ctx context.Context, productID string) (*domain.MenuItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockGateway) AddToCart(ctx context.Context, userID int64, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockGateway) GetCart(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockGateway) ClearCart(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockGateway) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockGateway) RegisterUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockGateway) UpdateUserContact(ctx context.Context, userID int64, phoneNumber, location string) error {
	args := m.Called(ctx, userID, phoneNumber, location)
	return args.Error(0)
}

func (m *MockGateway) CreateOrder(ctx context.Context, order *domain.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

// MockBotClient is a mock for the BotClientPort.
type MockBotClient struct {
	mock.Mock
}

var _ ports.BotClientPort = (*MockBotClient)(nil)

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockBotClient) SendPhoto(ctx context.Context, params ports.SendPhotoParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockBotClient) SendLocation(ctx context.Context, params ports.SendLocationParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockBotClient) AnswerCallbackQuery(ctx context.Context, params ports.AnswerCallbackParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// --- Helpers ---

func newTestRegistry(gw *MockGateway, botClient *MockBotClient) *Registry {
	return NewRegistry(&Deps{
		Gateway: gw,
		Bot:     botClient,
		Log:     zerolog.Nop(),
	})
}

// messageWithText matches SendMessageParams whose text contains the
// given fragment.
func messageWithText(fragment string) any {
	return mock.MatchedBy(func(params ports.SendMessageParams) bool {
		return strings.Contains(params.Text, fragment)
	})
}
