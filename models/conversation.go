package models

// ConversationStep is the position of a conversation in the locale selection
// flow.
type ConversationStep string

const (
	StepIdle           ConversationStep = "idle"
	StepAwaitingLocale ConversationStep = "awaiting_locale"
)

// ConversationState is the transient per-conversation state of the locale
// selection flow. The zero value is an idle conversation.
type ConversationState struct {
	Step ConversationStep `json:"step"`

	// PendingMessageID identifies the rendered locale picker.
	PendingMessageID int `json:"pending_message_id,omitempty"`

	// PendingLocale is the locale tentatively selected in the picker. It is
	// written to the user record only on save.
	PendingLocale string `json:"pending_locale,omitempty"`
}

// Idle reports whether no locale selection is in progress.
func (s ConversationState) Idle() bool {
	return s.Step == "" || s.Step == StepIdle
}

// AwaitingLocale reports whether a locale picker is shown.
func (s ConversationState) AwaitingLocale() bool {
	return s.Step == StepAwaitingLocale
}
