package ports

import (
	"context"
)

// --- Bot Message Structures ---

// Button represents a single button in a keyboard.
type Button struct {
	Text           string
	Data           string // Callback payload for inline buttons
	RequestContact bool   // Reply-keyboard button that shares the contact card
}

// ReplyMarkup represents any kind of keyboard markup.
type ReplyMarkup struct {
	Buttons  [][]Button
	IsInline bool // Differentiates between Inline and Reply keyboards
}

// SendMessageParams holds all options for sending a text message.
type SendMessageParams struct {
	ChatID         int64
	Text           string
	ParseMode      string // e.g. "HTML"
	ReplyMarkup    *ReplyMarkup
	RemoveKeyboard bool
	OneTime        bool // Reply keyboard hides after one use
}

// SendPhotoParams sends a photo by URL or file id with a caption.
type SendPhotoParams struct {
	ChatID      int64
	Photo       string
	Caption     string
	ParseMode   string
	ReplyMarkup *ReplyMarkup
}

// SendLocationParams sends a map pin.
type SendLocationParams struct {
	ChatID      int64
	Latitude    float64
	Longitude   float64
	ReplyMarkup *ReplyMarkup
}

// AnswerCallbackParams acknowledges a pressed inline button.
type AnswerCallbackParams struct {
	CallbackQueryID string
	Text            string
}

// --- Bot Client Port (Outbound) ---

// BotClientPort defines the interface for sending things back to the chat.
// This is the adapter boundary the commands call; the tgbotapi translation
// lives behind it.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
	SendPhoto(ctx context.Context, params SendPhotoParams) error
	SendLocation(ctx context.Context, params SendLocationParams) error
	AnswerCallbackQuery(ctx context.Context, params AnswerCallbackParams) error
}

// --- Inbound event ---

// ContactInfo is a shared contact card.
type ContactInfo struct {
	PhoneNumber string
	UserID      int64
}

// LocationInfo is a shared map location.
type LocationInfo struct {
	Latitude  float64
	Longitude float64
}

// BotUpdate is the simplified, transport-independent chat event the router
// hands to commands. Exactly one of Command, CallbackData, Contact or
// Location is meaningful per event; the identity fields are always set.
type BotUpdate struct {
	MessageID       int
	ChatID          int64
	UserID          int64
	Username        string
	FirstName       string
	LastName        string
	Text            string
	Command         string
	Args            string // Joined free-form argument text of a typed command
	CallbackQueryID string
	CallbackData    *string
	Contact         *ContactInfo
	Location        *LocationInfo
}
