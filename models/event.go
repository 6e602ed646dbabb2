package models

// EventKind tells what kind of platform update an [Event] was built from.
type EventKind string

const (
	EventMessage      EventKind = "message"
	EventCallback     EventKind = "callback"
	EventMemberUpdate EventKind = "member_update"
)

// Member statuses reported by the platform in member updates.
const (
	MemberStatusKicked = "kicked"
	MemberStatusMember = "member"
)

// Actor is the user who caused an event.
type Actor struct {
	ID int64 `json:"id"`

	// Username is empty when the user has no public handle.
	Username string `json:"username,omitempty"`

	// LanguageCode is the language reported by the user's client, if any.
	LanguageCode string `json:"language_code,omitempty"`
}

// Command is a slash command parsed from a message text.
type Command struct {
	Name string `json:"name"`
	Args string `json:"args,omitempty"`
}

// Callback is a press on an inline keyboard button.
type Callback struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	MessageID int    `json:"message_id"`
}

// Event is the transport-independent form of an inbound platform update.
// Actor is nil for updates that have no acting user, e.g. channel posts.
type Event struct {
	UpdateID int       `json:"update_id"`
	Kind     EventKind `json:"kind"`
	Actor    *Actor    `json:"actor,omitempty"`

	ChatID    int64  `json:"chat_id"`
	MessageID int    `json:"message_id,omitempty"`
	Text      string `json:"text,omitempty"`

	Command  *Command  `json:"command,omitempty"`
	Callback *Callback `json:"callback,omitempty"`

	// MemberStatus is the new status of the bot in a member update.
	MemberStatus string `json:"member_status,omitempty"`
}

// IsCallback reports whether the event is an inline button press.
func (e *Event) IsCallback() bool {
	return e.Kind == EventCallback && e.Callback != nil
}

// IsCommand reports whether the event carries a slash command.
func (e *Event) IsCommand() bool {
	return e.Command != nil
}

// ActorID returns the acting user id and false when there is no actor.
func (e *Event) ActorID() (int64, bool) {
	if e.Actor == nil {
		return 0, false
	}
	return e.Actor.ID, true
}
