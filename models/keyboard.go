package models

// InlineButton is a single inline keyboard button carrying callback data.
type InlineButton struct {
	Text string `json:"text"`
	Data string `json:"callback_data"`
}

// InlineKeyboard is a list of button rows.
type InlineKeyboard [][]InlineButton

// BotCommand is one entry of the platform command menu.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// OutgoingMessage is a text message to be sent to a chat.
type OutgoingMessage struct {
	ChatID   int64          `json:"chat_id"`
	Text     string         `json:"text"`
	ReplyTo  int            `json:"reply_to,omitempty"`
	Keyboard InlineKeyboard `json:"keyboard,omitempty"`
}

// Callback payloads of the locale picker. The locale buttons carry the
// locale code itself.
const (
	CallbackCancelLocale = "cancel_lang_button_data"
	CallbackSaveLocale   = "save_lang_button_data"
)
