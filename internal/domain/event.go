package domain

import "time"

// HandlerID names a pending-action handler. The set is closed: events are
// persisted, so ids must survive restarts and resolve through a static
// registry instead of runtime reflection.
type HandlerID string

const (
	HandlerNone HandlerID = ""

	// Wizard steps.
	HandlerResolveTarget          HandlerID = "resolve_target"
	HandlerResolveAmbiguousTarget HandlerID = "resolve_ambiguous_target"

	// Profile actions.
	HandlerSetName        HandlerID = "set_name"
	HandlerResetName      HandlerID = "reset_name"
	HandlerSetSentence    HandlerID = "set_sentence"
	HandlerSetPermission  HandlerID = "set_permission"
	HandlerListPermission HandlerID = "list_permissions"
	HandlerSetLanguage    HandlerID = "set_language"
	HandlerSetGender      HandlerID = "set_gender"
	HandlerSetAdmin       HandlerID = "set_admin"
	HandlerGetInfo        HandlerID = "get_info"

	// Relay and misc actions.
	HandlerRelayMessage HandlerID = "relay_message"
	HandlerBroadcast    HandlerID = "broadcast"
	HandlerGenerateQR   HandlerID = "generate_qr"

	// Moderation actions.
	HandlerAddBannedWord    HandlerID = "add_banned_word"
	HandlerRemoveBannedWord HandlerID = "remove_banned_word"

	// Custom command management.
	HandlerAskCommandContent   HandlerID = "ask_command_content"
	HandlerSaveCustomCommand   HandlerID = "save_custom_command"
	HandlerRemoveCustomCommand HandlerID = "remove_custom_command"
)

// KnownHandlers lists every dispatchable id, in a stable order.
func KnownHandlers() []HandlerID {
	return []HandlerID{
		HandlerResolveTarget,
		HandlerResolveAmbiguousTarget,
		HandlerSetName,
		HandlerResetName,
		HandlerSetSentence,
		HandlerSetPermission,
		HandlerListPermission,
		HandlerSetLanguage,
		HandlerSetGender,
		HandlerSetAdmin,
		HandlerGetInfo,
		HandlerRelayMessage,
		HandlerBroadcast,
		HandlerGenerateQR,
		HandlerAddBannedWord,
		HandlerRemoveBannedWord,
		HandlerAskCommandContent,
		HandlerSaveCustomCommand,
		HandlerRemoveCustomCommand,
	}
}

// Event is the single-slot continuation stored on the user row. It describes
// what to do with the user's next non-command message.
type Event struct {
	// Next is the handler invoked on the next message.
	Next HandlerID `json:"next"`
	// Payload is an opaque argument forwarded to the handler, e.g. a target
	// user id or a banned-word category.
	Payload string `json:"payload,omitempty"`
	// Command threads the wrapped action through the admin targeting wizard.
	Command HandlerID `json:"command,omitempty"`
	// SecondStep marks whether the wrapped action still needs a free-text
	// argument after the target is resolved.
	SecondStep bool `json:"second_step,omitempty"`
	// CreatedAt supports TTL-based expiry of stale events.
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the event is older than ttl. A zero ttl means
// events never expire.
func (e *Event) Expired(ttl time.Duration, now time.Time) bool {
	if e == nil || ttl <= 0 || e.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(e.CreatedAt) > ttl
}
