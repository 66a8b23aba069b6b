package service

import (
	"context"
	"errors"
	"fmt"

	"toolsbot/internal/domain"
	"toolsbot/internal/repository"
)

// UserStore is the persistence surface the services need for profiles.
type UserStore interface {
	Get(ctx context.Context, userID int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByViewedName(ctx context.Context, name string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Upsert(ctx context.Context, userID, chatID int64, firstName, lastName, username string, isBot bool, defaultLanguage string) error
	SetDisplayName(ctx context.Context, userID int64, name *string) error
	SetSentence(ctx context.Context, userID int64, sentence *string) error
	SetLanguage(ctx context.Context, userID int64, lang string) error
	SetGender(ctx context.Context, userID int64, gender domain.Gender) error
	SetNotifications(ctx context.Context, userID int64, enabled bool) error
	SetAdmin(ctx context.Context, userID int64, admin bool) error
	SetPermissions(ctx context.Context, userID int64, perms domain.PermissionSet) error
	SetEvent(ctx context.Context, userID int64, ev *domain.Event) error
	TakeEvent(ctx context.Context, userID int64) (*domain.Event, error)
}

var _ UserStore = (*repository.Users)(nil)

// Validation failures reported to the user with a specific reason.
var (
	// ErrNameBanned means the candidate matched the banned-word lists.
	ErrNameBanned = errors.New("name contains a banned word")
	// ErrTargetAdmin means a non-owner admin targeted another admin.
	ErrTargetAdmin = errors.New("cannot target an admin")
	// ErrSelfLockout means an admin tried to restrict themselves.
	ErrSelfLockout = errors.New("cannot restrict own permissions")
)

// TooLongError reports a name or sentence over the configured limit.
type TooLongError struct {
	Max int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("value exceeds %d characters", e.Max)
}

// Limits bounds user-supplied profile strings.
type Limits struct {
	MaxName     int
	MaxSentence int
}

// Profiles manages per-user profile state.
type Profiles struct {
	store       UserStore
	mod         *Moderation
	ownerID     int64
	defaultLang string
	limits      Limits
}

// NewProfiles creates the profile service.
func NewProfiles(store UserStore, mod *Moderation, ownerID int64, defaultLang string, limits Limits) *Profiles {
	if limits.MaxName <= 0 {
		limits.MaxName = 200
	}
	if limits.MaxSentence <= 0 {
		limits.MaxSentence = 200
	}
	return &Profiles{store: store, mod: mod, ownerID: ownerID, defaultLang: defaultLang, limits: limits}
}

// OwnerID returns the configured owner user id.
func (p *Profiles) OwnerID() int64 { return p.ownerID }

// Limits returns the configured length limits.
func (p *Profiles) Limits() Limits { return p.limits }

// Refresh upserts the platform-provided profile fields. Runs on every
// inbound message so stored names and chat ids never go stale.
func (p *Profiles) Refresh(ctx context.Context, userID, chatID int64, firstName, lastName, username string, isBot bool) error {
	return p.store.Upsert(ctx, userID, chatID, firstName, lastName, username, isBot, p.defaultLang)
}

// Get returns the stored profile or repository.ErrNotFound.
func (p *Profiles) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return p.store.Get(ctx, userID)
}

// Language returns the user's language, falling back to the default.
func (p *Profiles) Language(ctx context.Context, userID int64) string {
	u, err := p.store.Get(ctx, userID)
	if err != nil || u.Language == "" {
		return p.defaultLang
	}
	return u.Language
}

// ViewedName returns the name shown for the user. A stored display name that
// has since been banned is cleared on read and the platform name is used.
func (p *Profiles) ViewedName(ctx context.Context, userID int64) (string, error) {
	u, err := p.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if u.DisplayName != nil {
		banned, err := p.mod.IsBanned(ctx, *u.DisplayName)
		if err != nil {
			return "", err
		}
		if banned {
			if err := p.store.SetDisplayName(ctx, userID, nil); err != nil {
				return "", err
			}
			u.DisplayName = nil
		}
	}
	return u.ViewedName(), nil
}

// IsAdmin resolves the effective admin flag for a user. Unknown users are
// not admins; the owner is admin unless explicitly demoted.
func (p *Profiles) IsAdmin(ctx context.Context, userID int64) bool {
	u, err := p.store.Get(ctx, userID)
	if err != nil {
		return userID == p.ownerID
	}
	return u.IsAdmin(p.ownerID)
}

// ValidateName checks a candidate name or sentence against the length limit
// and the banned-word lists.
func (p *Profiles) ValidateName(ctx context.Context, value string, max int) error {
	if len([]rune(value)) > max {
		return &TooLongError{Max: max}
	}
	banned, err := p.mod.IsBanned(ctx, value)
	if err != nil {
		return err
	}
	if banned {
		return ErrNameBanned
	}
	return nil
}

// SetDisplayName validates and stores a display name for the target user.
func (p *Profiles) SetDisplayName(ctx context.Context, targetID int64, name string) error {
	if err := p.ValidateName(ctx, name, p.limits.MaxName); err != nil {
		return err
	}
	return p.store.SetDisplayName(ctx, targetID, &name)
}

// ResetDisplayName clears the in-bot name of the target user.
func (p *Profiles) ResetDisplayName(ctx context.Context, targetID int64) error {
	return p.store.SetDisplayName(ctx, targetID, nil)
}

// SetSentence validates and stores the personal sentence; nil clears it.
func (p *Profiles) SetSentence(ctx context.Context, targetID int64, sentence *string) error {
	if sentence != nil {
		if err := p.ValidateName(ctx, *sentence, p.limits.MaxSentence); err != nil {
			return err
		}
	}
	return p.store.SetSentence(ctx, targetID, sentence)
}

// SetLanguage stores the user's language preference.
func (p *Profiles) SetLanguage(ctx context.Context, targetID int64, lang string) error {
	return p.store.SetLanguage(ctx, targetID, lang)
}

// ToggleGender cycles m -> f -> nb -> m and returns the new value.
func (p *Profiles) ToggleGender(ctx context.Context, targetID int64) (domain.Gender, error) {
	u, err := p.store.Get(ctx, targetID)
	if err != nil {
		return "", err
	}
	gender := u.Gender
	if !gender.Valid() {
		gender = domain.GenderMale
	}
	next := gender.Next()
	if err := p.store.SetGender(ctx, targetID, next); err != nil {
		return "", err
	}
	return next, nil
}

// ToggleNotifications flips the on/off broadcast preference and returns the
// new value.
func (p *Profiles) ToggleNotifications(ctx context.Context, userID int64) (bool, error) {
	u, err := p.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	next := !u.Notifications
	if err := p.store.SetNotifications(ctx, userID, next); err != nil {
		return false, err
	}
	return next, nil
}

// ToggleAdmin flips the explicit admin flag of the target and returns the
// new effective value.
func (p *Profiles) ToggleAdmin(ctx context.Context, targetID int64) (bool, error) {
	u, err := p.store.Get(ctx, targetID)
	if err != nil {
		return false, err
	}
	next := !u.IsAdmin(p.ownerID)
	if err := p.store.SetAdmin(ctx, targetID, next); err != nil {
		return false, err
	}
	return next, nil
}

// Effective reports the permission for a command without writing anything.
func (p *Profiles) Effective(ctx context.Context, userID int64, command string) bool {
	u, err := p.store.Get(ctx, userID)
	if err != nil {
		return true
	}
	return u.Permissions.Allowed(command)
}

// Ensure reports the permission for a command, persisting the default-true
// entry the first time the command is queried for the user.
func (p *Profiles) Ensure(ctx context.Context, userID int64, command string) (bool, error) {
	u, err := p.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if _, ok := u.Permissions[command]; ok {
		return u.Permissions[command], nil
	}
	perms := u.Permissions.Clone()
	perms[command] = true
	if err := p.store.SetPermissions(ctx, userID, perms); err != nil {
		return false, err
	}
	return true, nil
}

// TogglePermission flips the target's permission for a command and returns
// the new value. A non-owner admin may neither toggle another admin nor
// restrict their own access.
func (p *Profiles) TogglePermission(ctx context.Context, callerID, targetID int64, command string) (bool, error) {
	target, err := p.store.Get(ctx, targetID)
	if err != nil {
		return false, err
	}
	if callerID != p.ownerID {
		if target.IsAdmin(p.ownerID) && targetID != callerID {
			return false, ErrTargetAdmin
		}
		current, err := p.Ensure(ctx, targetID, command)
		if err != nil {
			return false, err
		}
		if targetID == callerID && current {
			return false, ErrSelfLockout
		}
	}
	current, err := p.Ensure(ctx, targetID, command)
	if err != nil {
		return false, err
	}
	perms := target.Permissions.Clone()
	perms[command] = !current
	if err := p.store.SetPermissions(ctx, targetID, perms); err != nil {
		return false, err
	}
	return !current, nil
}

// Permissions returns the persisted permission entries for a user.
func (p *Profiles) Permissions(ctx context.Context, userID int64) (domain.PermissionSet, error) {
	u, err := p.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Permissions.Clone(), nil
}

// List returns every known user.
func (p *Profiles) List(ctx context.Context) ([]*domain.User, error) {
	return p.store.List(ctx)
}

// ResolveTarget finds the user an admin referred to by name. Usernames
// win over viewed names. When several users share the viewed name the
// candidate list comes back instead of a single match; no match at all
// is repository.ErrNotFound.
func (p *Profiles) ResolveTarget(ctx context.Context, input string) (*domain.User, []*domain.User, error) {
	u, err := p.store.GetByUsername(ctx, input)
	if err == nil {
		return u, nil, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}

	matches, err := p.store.FindByViewedName(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil, repository.ErrNotFound
	case 1:
		return matches[0], nil, nil
	default:
		return nil, matches, nil
	}
}
