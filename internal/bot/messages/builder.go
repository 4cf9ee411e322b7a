package messages

import "PizzaBot/internal/core/ports"

// Builder helps construct SendMessageParams.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder creates a new message builder. HTML is the default parse
// mode; every user-facing text in this bot uses HTML markup.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{
			ChatID:    chatID,
			ParseMode: "HTML",
		},
	}
}

// WithText sets the message text.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithParseMode overrides the default parse mode.
func (b *Builder) WithParseMode(mode string) *Builder {
	b.params.ParseMode = mode
	return b
}

// WithRemoveKeyboard adds a flag to remove the reply keyboard.
func (b *Builder) WithRemoveKeyboard() *Builder {
	b.params.RemoveKeyboard = true
	b.params.ReplyMarkup = nil
	return b
}

// WithContactButton adds a one-time "share contact" reply keyboard.
func (b *Builder) WithContactButton(text string) *Builder {
	b.params.RemoveKeyboard = false
	b.params.OneTime = true
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: false,
		Buttons: [][]ports.Button{
			{
				{Text: text, RequestContact: true},
			},
		},
	}
	return b
}

// WithInlineButtons adds a set of inline buttons, one row per inner slice.
func (b *Builder) WithInlineButtons(buttons [][]ports.Button) *Builder {
	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: true,
		Buttons:  buttons,
	}
	return b
}

// Build returns the final SendMessageParams struct.
func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}
