package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
	"toolsbot/internal/repository"
)

type fakeUsers struct {
	users map[int64]*domain.User
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{users: make(map[int64]*domain.User)}
	for _, u := range users {
		f.users[u.UserID] = u
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, userID int64) (*domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// FindByViewedName mirrors the SQL lookup: the display name matches, or
// the first name only while no display name is set.
func (f *fakeUsers) FindByViewedName(_ context.Context, name string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		switch {
		case u.DisplayName != nil && *u.DisplayName == name:
		case u.DisplayName == nil && u.FirstName == name:
		default:
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUsers) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUsers) Upsert(_ context.Context, userID, chatID int64, firstName, lastName, username string, isBot bool, defaultLanguage string) error {
	u, ok := f.users[userID]
	if !ok {
		f.users[userID] = &domain.User{
			UserID: userID, ChatID: chatID,
			FirstName: firstName, LastName: lastName, Username: username,
			IsBot: isBot, Language: defaultLanguage,
		}
		return nil
	}
	u.ChatID, u.FirstName, u.LastName, u.Username = chatID, firstName, lastName, username
	return nil
}

func (f *fakeUsers) must(userID int64) *domain.User {
	u, ok := f.users[userID]
	if !ok {
		panic("unknown user in fake store")
	}
	return u
}

func (f *fakeUsers) SetDisplayName(_ context.Context, userID int64, name *string) error {
	f.must(userID).DisplayName = name
	return nil
}

func (f *fakeUsers) SetSentence(_ context.Context, userID int64, sentence *string) error {
	f.must(userID).Sentence = sentence
	return nil
}

func (f *fakeUsers) SetLanguage(_ context.Context, userID int64, lang string) error {
	f.must(userID).Language = lang
	return nil
}

func (f *fakeUsers) SetGender(_ context.Context, userID int64, gender domain.Gender) error {
	f.must(userID).Gender = gender
	return nil
}

func (f *fakeUsers) SetNotifications(_ context.Context, userID int64, enabled bool) error {
	f.must(userID).Notifications = enabled
	return nil
}

func (f *fakeUsers) SetAdmin(_ context.Context, userID int64, admin bool) error {
	f.must(userID).Admin = &admin
	return nil
}

func (f *fakeUsers) SetPermissions(_ context.Context, userID int64, perms domain.PermissionSet) error {
	f.must(userID).Permissions = perms
	return nil
}

func (f *fakeUsers) SetEvent(_ context.Context, userID int64, ev *domain.Event) error {
	f.must(userID).Event = ev
	return nil
}

func (f *fakeUsers) TakeEvent(_ context.Context, userID int64) (*domain.Event, error) {
	u := f.must(userID)
	ev := u.Event
	u.Event = nil
	return ev, nil
}

type fakeWords struct {
	lists map[domain.WordCategory][]string
}

func newFakeWords() *fakeWords {
	return &fakeWords{lists: make(map[domain.WordCategory][]string)}
}

func (f *fakeWords) Words(_ context.Context, category domain.WordCategory) ([]string, error) {
	return f.lists[category], nil
}

func (f *fakeWords) Save(_ context.Context, category domain.WordCategory, words []string) error {
	f.lists[category] = words
	return nil
}

const ownerID = int64(100)

func newTestProfiles(store *fakeUsers, words *fakeWords) *Profiles {
	if words == nil {
		words = newFakeWords()
	}
	return NewProfiles(store, NewModeration(words), ownerID, "en", Limits{MaxName: 20, MaxSentence: 30})
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestEnsurePersistsDefaultTrue(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: 1})
	p := newTestProfiles(store, nil)
	ctx := context.Background()

	allowed, err := p.Ensure(ctx, 1, "qrcode")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, domain.PermissionSet{"qrcode": true}, store.must(1).Permissions)

	// a persisted false entry wins on the second call
	store.must(1).Permissions["qrcode"] = false
	allowed, err = p.Ensure(ctx, 1, "qrcode")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEffectiveNeverWrites(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: 1})
	p := newTestProfiles(store, nil)

	assert.True(t, p.Effective(context.Background(), 1, "qrcode"))
	assert.Nil(t, store.must(1).Permissions)
}

func TestTogglePermissionOwnerMayTargetAdmin(t *testing.T) {
	store := newFakeUsers(
		&domain.User{UserID: ownerID},
		&domain.User{UserID: 2, Admin: boolPtr(true)},
	)
	p := newTestProfiles(store, nil)

	allowed, err := p.TogglePermission(context.Background(), ownerID, 2, "broadcast")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.False(t, store.must(2).Permissions["broadcast"])
}

func TestTogglePermissionAdminCannotTargetAdmin(t *testing.T) {
	store := newFakeUsers(
		&domain.User{UserID: 2, Admin: boolPtr(true)},
		&domain.User{UserID: 3, Admin: boolPtr(true)},
	)
	p := newTestProfiles(store, nil)

	_, err := p.TogglePermission(context.Background(), 2, 3, "qrcode")
	assert.ErrorIs(t, err, ErrTargetAdmin)
}

func TestTogglePermissionSelfLockout(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: 2, Admin: boolPtr(true)})
	p := newTestProfiles(store, nil)
	ctx := context.Background()

	_, err := p.TogglePermission(ctx, 2, 2, "qrcode")
	assert.ErrorIs(t, err, ErrSelfLockout)

	// re-enabling an already revoked command on yourself is fine
	store.must(2).Permissions = domain.PermissionSet{"qrcode": false}
	allowed, err := p.TogglePermission(ctx, 2, 2, "qrcode")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestTogglePermissionOwnerMayLockSelf(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: ownerID})
	p := newTestProfiles(store, nil)

	allowed, err := p.TogglePermission(context.Background(), ownerID, ownerID, "qrcode")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestToggleGenderCycle(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: 1, Gender: domain.GenderMale})
	p := newTestProfiles(store, nil)
	ctx := context.Background()

	g, err := p.ToggleGender(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.GenderFemale, g)

	g, err = p.ToggleGender(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.GenderNonBinary, g)

	g, err = p.ToggleGender(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.GenderMale, g)
}

func TestIsAdminOwnerDefaultAndDemotion(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: ownerID})
	p := newTestProfiles(store, nil)
	ctx := context.Background()

	assert.True(t, p.IsAdmin(ctx, ownerID))
	assert.False(t, p.IsAdmin(ctx, 2), "unknown users are not admins")

	store.must(ownerID).Admin = boolPtr(false)
	assert.False(t, p.IsAdmin(ctx, ownerID))
}

func TestResolveTargetUsernameWins(t *testing.T) {
	store := newFakeUsers(
		&domain.User{UserID: 1, Username: "alice", FirstName: "Alice"},
		&domain.User{UserID: 2, FirstName: "alice"},
	)
	p := newTestProfiles(store, nil)

	match, candidates, err := p.ResolveTarget(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, candidates)
	require.NotNil(t, match)
	assert.Equal(t, int64(1), match.UserID)
}

func TestResolveTargetAmbiguousViewedName(t *testing.T) {
	store := newFakeUsers(
		&domain.User{UserID: 1, FirstName: "Bob"},
		&domain.User{UserID: 2, FirstName: "Other", DisplayName: strPtr("Bob")},
	)
	p := newTestProfiles(store, nil)

	match, candidates, err := p.ResolveTarget(context.Background(), "Bob")
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Len(t, candidates, 2)
}

func TestResolveTargetDisplayNameShadowsFirstName(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: 1, FirstName: "John", DisplayName: strPtr("Ghost")})
	p := newTestProfiles(store, nil)
	ctx := context.Background()

	match, _, err := p.ResolveTarget(ctx, "Ghost")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, int64(1), match.UserID)

	_, _, err = p.ResolveTarget(ctx, "John")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResolveTargetNotFound(t *testing.T) {
	p := newTestProfiles(newFakeUsers(), nil)

	_, _, err := p.ResolveTarget(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestViewedNameClearsBannedDisplayName(t *testing.T) {
	words := newFakeWords()
	words.lists[domain.CategoryBanned] = []string{"idiot"}
	store := newFakeUsers(&domain.User{UserID: 1, FirstName: "Carl", DisplayName: strPtr("1d10t")})
	p := newTestProfiles(store, words)

	name, err := p.ViewedName(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Carl", name)
	assert.Nil(t, store.must(1).DisplayName)
}

func TestValidateNameLimits(t *testing.T) {
	p := newTestProfiles(newFakeUsers(), nil)
	ctx := context.Background()

	err := p.ValidateName(ctx, "this name is far far too long", 10)
	var tooLong *TooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 10, tooLong.Max)

	assert.NoError(t, p.ValidateName(ctx, "fine", 10))
}
