package domain

import "time"

// Gender selects which pool /randomname draws from.
type Gender string

const (
	GenderMale      Gender = "m"
	GenderFemale    Gender = "f"
	GenderNonBinary Gender = "nb"
)

// Next returns the gender that follows in the /gender toggle cycle.
func (g Gender) Next() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderNonBinary
	default:
		return GenderMale
	}
}

// Valid reports whether g is one of the known gender codes.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	}
	return false
}

// PermissionSet maps command name to whether the user may run it.
// A command absent from the map is allowed.
type PermissionSet map[string]bool

// Allowed reports the effective permission for a command.
func (p PermissionSet) Allowed(command string) bool {
	if p == nil {
		return true
	}
	allowed, ok := p[command]
	if !ok {
		return true
	}
	return allowed
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (p PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// User is the profile stored per Telegram user.
type User struct {
	UserID    int64  `db:"user_id"`
	ChatID    int64  `db:"chat_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Username  string `db:"username"`
	IsBot     bool   `db:"is_bot"`

	// DisplayName is the in-bot chosen name; nil falls back to FirstName.
	DisplayName *string `db:"display_name"`
	// Sentence is appended to greetings when set.
	Sentence *string `db:"sentence"`

	Language      string        `db:"language"`
	Gender        Gender        `db:"gender"`
	Notifications bool          `db:"notifications"`
	// Admin is nil until someone explicitly promotes or demotes the user.
	Admin       *bool         `db:"admin"`
	Permissions PermissionSet `db:"permissions"`
	Event       *Event        `db:"event"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// IsAdmin resolves the effective admin flag: the owner is admin unless
// explicitly demoted, everyone else is admin only when explicitly promoted.
func (u *User) IsAdmin(ownerID int64) bool {
	if u == nil {
		return false
	}
	if u.Admin != nil {
		return *u.Admin
	}
	return u.UserID == ownerID
}

// ViewedName returns the name the bot shows for the user.
func (u *User) ViewedName() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.FirstName
}
