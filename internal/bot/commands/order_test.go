package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"PizzaBot/internal/bot/session"
	"PizzaBot/internal/core/domain"
	"PizzaBot/internal/core/ports"
)

func newTestUpdate() *ports.BotUpdate {
	return &ports.BotUpdate{
		ChatID:    1000,
		UserID:    789,
		Username:  "testuser",
		FirstName: "Test",
		LastName:  "User",
	}
}

func idleSession() *session.Session {
	return &session.Session{UserID: 789, Stage: session.StageIdle}
}

func testCart() []domain.CartLine {
	return []domain.CartLine{
		{Name: "Маргарита", Quantity: 2, Subtotal: 240},
		{Name: "Пепероні", Quantity: 1, Subtotal: 150},
	}
}

func execute(t *testing.T, registry *Registry, name string, sess *session.Session, update *ports.BotUpdate) error {
	t.Helper()
	cmd, err := registry.Resolve(name)
	require.NoError(t, err)
	return cmd.Execute(context.Background(), sess, update)
}

func TestStartOrder_NewUser_RegistersAndAsksForPhone(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	gw.On("GetUser", mock.Anything, int64(789)).Return(nil, nil).Once()
	gw.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.TelegramID == 789 && u.Username == "testuser" &&
			u.FirstName == "Test" && u.LastName == "User"
	})).Return(nil).Once()
	botClient.On("SendMessage", mock.Anything, messageWithText(textPhoneRequest)).Return(nil).Once()

	err := execute(t, registry, CmdStartOrder, sess, newTestUpdate())

	require.NoError(t, err)
	assert.Equal(t, session.StageAwaitingPhone, sess.Stage)
	assert.True(t, sess.InProgress())
	gw.AssertExpectations(t)
	botClient.AssertExpectations(t)
	// Exactly one prompt: the phone request, never the confirmation too.
	botClient.AssertNumberOfCalls(t, "SendMessage", 1)
	botClient.AssertNotCalled(t, "SendLocation", mock.Anything, mock.Anything)
}

func TestStartOrder_KnownUser_ShowsConfirmation(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	user := &domain.User{
		TelegramID:  789,
		PhoneNumber: "+380000000000",
		Location:    "50.45|30.52",
	}
	gw.On("GetUser", mock.Anything, int64(789)).Return(user, nil)
	gw.On("GetCart", mock.Anything, int64(789)).Return(testCart(), nil).Once()
	botClient.On("SendMessage", mock.Anything, messageWithText("+380000000000")).Return(nil).Once()
	botClient.On("SendLocation", mock.Anything, mock.MatchedBy(func(params ports.SendLocationParams) bool {
		return params.Latitude == 50.45 && params.Longitude == 30.52
	})).Return(nil).Once()

	err := execute(t, registry, CmdStartOrder, sess, newTestUpdate())

	require.NoError(t, err)
	assert.Equal(t, session.StageAwaitingConfirmation, sess.Stage)
	gw.AssertExpectations(t)
	botClient.AssertExpectations(t)
	gw.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

func TestGotPhoneNumber_OutsideFlow_FallsBackToStart(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	update := newTestUpdate()
	update.Contact = &ports.ContactInfo{PhoneNumber: "+380000000000", UserID: 789}

	botClient.On("SendMessage", mock.Anything, messageWithText(textWelcome)).Return(nil).Once()

	err := execute(t, registry, CmdGotPhoneNumber, sess, update)

	require.NoError(t, err)
	assert.Equal(t, session.StageIdle, sess.Stage)
	gw.AssertNotCalled(t, "UpdateUserContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	botClient.AssertExpectations(t)
}

func TestGotPhoneNumber_InFlow_StoresPhoneAndAsksForLocation(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()
	sess.Stage = session.StageAwaitingPhone

	update := newTestUpdate()
	update.Contact = &ports.ContactInfo{PhoneNumber: "+380000000000", UserID: 789}

	gw.On("UpdateUserContact", mock.Anything, int64(789), "+380000000000", "").Return(nil).Once()
	botClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(params ports.SendMessageParams) bool {
		return params.Text == textPhoneSaved && params.RemoveKeyboard
	})).Return(nil).Once()
	botClient.On("SendMessage", mock.Anything, messageWithText(textLocationRequest)).Return(nil).Once()

	err := execute(t, registry, CmdGotPhoneNumber, sess, update)

	require.NoError(t, err)
	assert.Equal(t, session.StageAwaitingLocation, sess.Stage)
	gw.AssertExpectations(t)
	botClient.AssertExpectations(t)
}

func TestGotLocation_OutsideFlow_FallsBackToStart(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	update := newTestUpdate()
	update.Location = &ports.LocationInfo{Latitude: 50.45, Longitude: 30.52}

	botClient.On("SendMessage", mock.Anything, messageWithText(textWelcome)).Return(nil).Once()

	err := execute(t, registry, CmdGotLocation, sess, update)

	require.NoError(t, err)
	assert.Equal(t, session.StageIdle, sess.Stage)
	gw.AssertNotCalled(t, "UpdateUserContact", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	botClient.AssertExpectations(t)
}

func TestGotLocation_InFlow_StoresEncodedLocationAndShowsConfirmation(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()
	sess.Stage = session.StageAwaitingLocation

	update := newTestUpdate()
	update.Location = &ports.LocationInfo{Latitude: 50.45, Longitude: 30.52}

	user := &domain.User{TelegramID: 789, PhoneNumber: "+380000000000", Location: "50.45|30.52"}
	gw.On("UpdateUserContact", mock.Anything, int64(789), "", "50.45|30.52").Return(nil).Once()
	gw.On("GetCart", mock.Anything, int64(789)).Return(testCart(), nil).Once()
	gw.On("GetUser", mock.Anything, int64(789)).Return(user, nil).Once()
	botClient.On("SendMessage", mock.Anything, messageWithText(textLocationSaved)).Return(nil).Once()
	botClient.On("SendMessage", mock.Anything, messageWithText("Ваше замовлення")).Return(nil).Once()
	botClient.On("SendLocation", mock.Anything, mock.MatchedBy(func(params ports.SendLocationParams) bool {
		return params.Latitude == 50.45 && params.Longitude == 30.52
	})).Return(nil).Once()

	err := execute(t, registry, CmdGotLocation, sess, update)

	require.NoError(t, err)
	assert.Equal(t, session.StageAwaitingConfirmation, sess.Stage)
	gw.AssertExpectations(t)
	botClient.AssertExpectations(t)
}

func TestRequestOrderConfirmation_NoStoredLocation_RendersZeroPin(t *testing.T) {
	// Users who registered but never shared an address have no stored
	// location; the summary still sends a pin, at (0,0).
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()
	sess.Stage = session.StageAwaitingConfirmation

	user := &domain.User{TelegramID: 789, PhoneNumber: "+380000000000"}
	gw.On("GetCart", mock.Anything, int64(789)).Return(testCart(), nil).Once()
	gw.On("GetUser", mock.Anything, int64(789)).Return(user, nil).Once()
	botClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil).Once()
	botClient.On("SendLocation", mock.Anything, mock.MatchedBy(func(params ports.SendLocationParams) bool {
		return params.Latitude == 0 && params.Longitude == 0
	})).Return(nil).Once()

	err := execute(t, registry, CmdRequestOrderConfirmation, sess, newTestUpdate())

	require.NoError(t, err)
	botClient.AssertExpectations(t)
}

func TestConfirmOrder_InFlow_SubmitsOrderAndClearsCart(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()
	sess.Stage = session.StageAwaitingConfirmation

	user := &domain.User{TelegramID: 789, PhoneNumber: "+380000000000", Location: "50.45|30.52"}
	gw.On("GetCart", mock.Anything, int64(789)).Return(testCart(), nil).Once()
	gw.On("GetUser", mock.Anything, int64(789)).Return(user, nil).Once()
	gw.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order *domain.Order) bool {
		return order.UserID == 789 &&
			order.PhoneNumber == "+380000000000" &&
			order.Location == "50.45|30.52" &&
			order.Total == 390 &&
			len(order.Lines) == 2 &&
			order.Lines[0] == domain.OrderLine{Name: "Маргарита", Quantity: 2, Subtotal: 240}
	})).Return("17", nil).Once()
	gw.On("ClearCart", mock.Anything, int64(789)).Return(nil).Once()
	botClient.On("SendMessage", mock.Anything, messageWithText("#17")).Return(nil).Once()

	err := execute(t, registry, CmdConfirmOrder, sess, newTestUpdate())

	require.NoError(t, err)
	assert.Equal(t, session.StageIdle, sess.Stage)
	gw.AssertExpectations(t)
	botClient.AssertExpectations(t)
}

func TestConfirmOrder_OutsideFlow_FallsBackToStart(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	botClient.On("SendMessage", mock.Anything, messageWithText(textWelcome)).Return(nil).Once()

	err := execute(t, registry, CmdConfirmOrder, sess, newTestUpdate())

	require.NoError(t, err)
	assert.Equal(t, session.StageIdle, sess.Stage)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	botClient.AssertExpectations(t)
}

func TestCancelOrder_InFlow_ResetsAndConfirmsCancellation(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()
	sess.Stage = session.StageAwaitingConfirmation

	botClient.On("SendMessage", mock.Anything, messageWithText(textOrderCancelled)).Return(nil).Once()

	err := execute(t, registry, CmdCancelOrder, sess, newTestUpdate())

	require.NoError(t, err)
	assert.Equal(t, session.StageIdle, sess.Stage)
	botClient.AssertExpectations(t)
}

func TestCancelOrder_OutsideFlow_FallsBackToStart(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	botClient.On("SendMessage", mock.Anything, messageWithText(textWelcome)).Return(nil).Once()

	err := execute(t, registry, CmdCancelOrder, sess, newTestUpdate())

	require.NoError(t, err)
	assert.Equal(t, session.StageIdle, sess.Stage)
	botClient.AssertExpectations(t)
}

// TestCheckout_NewUserEndToEnd walks the whole conversation of a first-time
// customer: registration, phone, location, confirmation, submission.
func TestCheckout_NewUserEndToEnd(t *testing.T) {
	gw := new(MockGateway)
	botClient := new(MockBotClient)
	registry := newTestRegistry(gw, botClient)
	sess := idleSession()

	botClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil)
	botClient.On("SendLocation", mock.Anything, mock.Anything).Return(nil)

	// Step 1: /start_order — unknown user gets registered and asked for a phone.
	gw.On("GetUser", mock.Anything, int64(789)).Return(nil, nil).Once()
	gw.On("RegisterUser", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, execute(t, registry, CmdStartOrder, sess, newTestUpdate()))
	assert.Equal(t, session.StageAwaitingPhone, sess.Stage)

	// Step 2: the user shares a contact card.
	update := newTestUpdate()
	update.Contact = &ports.ContactInfo{PhoneNumber: "+380000000000", UserID: 789}
	gw.On("UpdateUserContact", mock.Anything, int64(789), "+380000000000", "").Return(nil).Once()

	require.NoError(t, execute(t, registry, CmdGotPhoneNumber, sess, update))
	assert.Equal(t, session.StageAwaitingLocation, sess.Stage)

	// Step 3: the user shares a location; profile now carries both fields.
	user := &domain.User{TelegramID: 789, PhoneNumber: "+380000000000", Location: "50.45|30.52"}
	update = newTestUpdate()
	update.Location = &ports.LocationInfo{Latitude: 50.45, Longitude: 30.52}
	gw.On("UpdateUserContact", mock.Anything, int64(789), "", "50.45|30.52").Return(nil).Once()
	gw.On("GetCart", mock.Anything, int64(789)).Return(testCart(), nil)
	gw.On("GetUser", mock.Anything, int64(789)).Return(user, nil)

	require.NoError(t, execute(t, registry, CmdGotLocation, sess, update))
	assert.Equal(t, session.StageAwaitingConfirmation, sess.Stage)

	// Step 4: confirm. The order carries the cart verbatim and the cart is cleared.
	gw.On("CreateOrder", mock.Anything, mock.MatchedBy(func(order *domain.Order) bool {
		return order.Total == 390 && order.Location == "50.45|30.52"
	})).Return("42", nil).Once()
	gw.On("ClearCart", mock.Anything, int64(789)).Return(nil).Once()

	require.NoError(t, execute(t, registry, CmdConfirmOrder, sess, newTestUpdate()))
	assert.Equal(t, session.StageIdle, sess.Stage)
	assert.False(t, sess.InProgress())
	gw.AssertExpectations(t)
}
