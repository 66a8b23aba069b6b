package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "toolsbot/core/telegram"
	"toolsbot/core/telegram/middleware"
	"toolsbot/internal/domain"
	"toolsbot/internal/flow"
	"toolsbot/internal/repository"
	"toolsbot/internal/service"
)

const testOwnerID = int64(100)

// memUsers backs the services and the event tracker in-memory. Lookups
// behave like the SQL ones: FindByViewedName matches the display name,
// or the first name only while no display name is set.
type memUsers struct {
	users  map[int64]*domain.User
	events map[int64]*domain.Event
}

func newMemUsers(users ...*domain.User) *memUsers {
	m := &memUsers{
		users:  make(map[int64]*domain.User),
		events: make(map[int64]*domain.Event),
	}
	for _, u := range users {
		m.users[u.UserID] = u
	}
	return m
}

func (m *memUsers) must(userID int64) *domain.User {
	u, ok := m.users[userID]
	if !ok {
		panic("unknown user in fake store")
	}
	return u
}

func (m *memUsers) Get(_ context.Context, userID int64) (*domain.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, repository.ErrNotFound
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindByViewedName(_ context.Context, name string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.users {
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

func (m *memUsers) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) Upsert(_ context.Context, userID, chatID int64, firstName, lastName, username string, isBot bool, defaultLanguage string) error {
	u, ok := m.users[userID]
	if !ok {
		m.users[userID] = &domain.User{
			UserID: userID, ChatID: chatID,
			FirstName: firstName, LastName: lastName, Username: username,
			IsBot: isBot, Language: defaultLanguage,
		}
		return nil
	}
	u.ChatID, u.FirstName, u.LastName, u.Username = chatID, firstName, lastName, username
	return nil
}

func (m *memUsers) SetDisplayName(_ context.Context, userID int64, name *string) error {
	m.must(userID).DisplayName = name
	return nil
}

func (m *memUsers) SetSentence(_ context.Context, userID int64, sentence *string) error {
	m.must(userID).Sentence = sentence
	return nil
}

func (m *memUsers) SetLanguage(_ context.Context, userID int64, lang string) error {
	m.must(userID).Language = lang
	return nil
}

func (m *memUsers) SetGender(_ context.Context, userID int64, gender domain.Gender) error {
	m.must(userID).Gender = gender
	return nil
}

func (m *memUsers) SetNotifications(_ context.Context, userID int64, enabled bool) error {
	m.must(userID).Notifications = enabled
	return nil
}

func (m *memUsers) SetAdmin(_ context.Context, userID int64, admin bool) error {
	m.must(userID).Admin = &admin
	return nil
}

func (m *memUsers) SetPermissions(_ context.Context, userID int64, perms domain.PermissionSet) error {
	m.must(userID).Permissions = perms
	return nil
}

func (m *memUsers) SetEvent(_ context.Context, userID int64, ev *domain.Event) error {
	if ev == nil {
		delete(m.events, userID)
		return nil
	}
	cp := *ev
	m.events[userID] = &cp
	return nil
}

func (m *memUsers) TakeEvent(_ context.Context, userID int64) (*domain.Event, error) {
	ev := m.events[userID]
	delete(m.events, userID)
	return ev, nil
}

type memWords struct {
	lists map[domain.WordCategory][]string
}

func (m *memWords) Words(_ context.Context, category domain.WordCategory) ([]string, error) {
	return m.lists[category], nil
}

func (m *memWords) Save(_ context.Context, category domain.WordCategory, words []string) error {
	m.lists[category] = words
	return nil
}

type memCommands struct {
	cmds map[string]domain.CustomCommand
}

func (m *memCommands) Get(_ context.Context, name string) (*domain.CustomCommand, error) {
	cmd, ok := m.cmds[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cmd, nil
}

func (m *memCommands) Names(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m.cmds))
	for name := range m.cmds {
		names = append(names, name)
	}
	return names, nil
}

func (m *memCommands) Save(_ context.Context, cmd domain.CustomCommand) error {
	m.cmds[cmd.Name] = cmd
	return nil
}

func (m *memCommands) Delete(_ context.Context, name string) (bool, error) {
	_, ok := m.cmds[name]
	delete(m.cmds, name)
	return ok, nil
}

// botContext fakes the update context a handler sees. Replies land in
// sent instead of going over the wire.
type botContext struct {
	tele.Context
	sender  *tele.User
	chat    *tele.Chat
	msg     *tele.Message
	sent    []interface{}
	markups []*tele.ReplyMarkup
	kv      map[string]interface{}
}

func messageFrom(user *tele.User, text string) *botContext {
	chat := &tele.Chat{ID: user.ID}
	return &botContext{
		sender: user,
		chat:   chat,
		msg:    &tele.Message{Sender: user, Chat: chat, Text: text},
		kv:     make(map[string]interface{}),
	}
}

func photoFrom(user *tele.User) *botContext {
	c := messageFrom(user, "")
	c.msg.Photo = &tele.Photo{File: tele.File{FileID: "photo-1"}}
	return c
}

func (c *botContext) Sender() *tele.User     { return c.sender }
func (c *botContext) Chat() *tele.Chat       { return c.chat }
func (c *botContext) Message() *tele.Message { return c.msg }
func (c *botContext) Callback() *tele.Callback {
	return nil
}

func (c *botContext) Text() string {
	if c.msg == nil {
		return ""
	}
	return c.msg.Text
}

func (c *botContext) Update() tele.Update {
	return tele.Update{Message: c.msg}
}

func (c *botContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	for _, opt := range opts {
		if so, ok := opt.(*tele.SendOptions); ok && so.ReplyMarkup != nil {
			c.markups = append(c.markups, so.ReplyMarkup)
		}
	}
	return nil
}

func (c *botContext) Get(key string) interface{}    { return c.kv[key] }
func (c *botContext) Set(key string, v interface{}) { c.kv[key] = v }

func (c *botContext) lastText(t *testing.T) string {
	t.Helper()
	for i := len(c.sent) - 1; i >= 0; i-- {
		if s, ok := c.sent[i].(string); ok {
			return s
		}
	}
	t.Fatal("no text reply sent")
	return ""
}

// lastKeyboard returns the labels of the last reply keyboard sent.
func (c *botContext) lastKeyboard(t *testing.T) []string {
	t.Helper()
	if len(c.markups) == 0 {
		t.Fatal("no keyboard sent")
	}
	var labels []string
	for _, row := range c.markups[len(c.markups)-1].ReplyKeyboard {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	return labels
}

type testBot struct {
	handlers   *Handlers
	dispatcher *flow.Dispatcher
	store      *memUsers
	words      *memWords
}

func newTestBot(t *testing.T, users ...*domain.User) *testBot {
	t.Helper()

	store := newMemUsers(users...)
	words := &memWords{lists: make(map[domain.WordCategory][]string)}
	mod := service.NewModeration(words)
	profiles := service.NewProfiles(store, mod, testOwnerID, "en", service.Limits{MaxName: 20, MaxSentence: 30})
	custom := service.NewCustomCommands(&memCommands{cmds: make(map[string]domain.CustomCommand)})
	tracker := flow.NewTracker(store, time.Minute)

	h := New(profiles, mod, nil, custom, nil, tracker, nil)
	flows := flow.NewRegistry()
	h.Register(tg.NewRegistry(), flows)

	d := flow.NewDispatcher(profiles, tracker, flows, custom, nil)
	d.Denied = func(c tele.Context, _ string) error {
		return h.DenyRestricted(c)
	}
	return &testBot{handlers: h, dispatcher: d, store: store, words: words}
}

func TestSetNameFlowStoresChosenName(t *testing.T) {
	user := &tele.User{ID: 5, FirstName: "Zoe"}
	bot := newTestBot(t, &domain.User{UserID: 5, ChatID: 5, FirstName: "Zoe", Language: "en"})

	open := messageFrom(user, "/setname")
	require.NoError(t, bot.handlers.SetName(open))
	require.Contains(t, bot.store.events, int64(5))

	answer := messageFrom(user, "Zed")
	require.NoError(t, bot.dispatcher.HandleMessage(answer))

	stored := bot.store.must(5)
	require.NotNil(t, stored.DisplayName)
	assert.Equal(t, "Zed", *stored.DisplayName)
	assert.Contains(t, answer.lastText(t), "Zed")
	assert.NotContains(t, bot.store.events, int64(5))
}

func TestSetNameFlowIgnoresMediaAnswer(t *testing.T) {
	user := &tele.User{ID: 5, FirstName: "Zoe"}
	bot := newTestBot(t, &domain.User{UserID: 5, ChatID: 5, FirstName: "Zoe", Language: "en"})

	require.NoError(t, bot.handlers.SetName(messageFrom(user, "/setname")))

	// A photo mid-rename must not become the empty name; the flow stays
	// open and asks again.
	photo := photoFrom(user)
	require.NoError(t, bot.dispatcher.HandleMessage(photo))
	assert.Nil(t, bot.store.must(5).DisplayName)
	require.Contains(t, bot.store.events, int64(5))
	assert.Equal(t, domain.HandlerSetName, bot.store.events[5].Next)

	answer := messageFrom(user, "Zed")
	require.NoError(t, bot.dispatcher.HandleMessage(answer))
	stored := bot.store.must(5)
	require.NotNil(t, stored.DisplayName)
	assert.Equal(t, "Zed", *stored.DisplayName)
}

func TestPermissionWizardTogglesTarget(t *testing.T) {
	owner := &tele.User{ID: testOwnerID, FirstName: "Boss", Username: "boss"}
	bot := newTestBot(t,
		&domain.User{UserID: testOwnerID, ChatID: testOwnerID, FirstName: "Boss", Username: "boss", Language: "en"},
		&domain.User{UserID: 2, ChatID: 2, FirstName: "John", Language: "en"},
	)

	require.NoError(t, bot.handlers.SetPersonPermission(messageFrom(owner, "/setpermission")))
	require.Contains(t, bot.store.events, testOwnerID)
	assert.Equal(t, domain.HandlerResolveTarget, bot.store.events[testOwnerID].Next)

	// Picking the target consumes the resolve step and synchronously
	// parks the final step; the slot must hold the new event, not the
	// consumed one.
	pick := messageFrom(owner, "John")
	require.NoError(t, bot.dispatcher.HandleMessage(pick))
	require.Contains(t, bot.store.events, testOwnerID)
	assert.Equal(t, domain.HandlerSetPermission, bot.store.events[testOwnerID].Next)
	assert.Equal(t, "2", bot.store.events[testOwnerID].Payload)
	assert.Contains(t, pick.lastText(t), "John (2)")

	toggle := messageFrom(owner, "qrcode")
	require.NoError(t, bot.dispatcher.HandleMessage(toggle))

	allowed, ok := bot.store.must(2).Permissions["qrcode"]
	require.True(t, ok)
	assert.False(t, allowed)
	assert.NotContains(t, bot.store.events, testOwnerID)
}

func TestAddBannedRejectsNonAdmin(t *testing.T) {
	user := &tele.User{ID: 7, FirstName: "Mallory"}
	bot := newTestBot(t, &domain.User{UserID: 7, ChatID: 7, FirstName: "Mallory", Language: "en"})

	guarded := middleware.WithAdminCheck(bot.handlers.AccessOptions(), true, bot.handlers.AddBanned)
	c := messageFrom(user, "/addbanned")
	require.NoError(t, guarded(c))

	assert.Contains(t, c.lastText(t), "admin")
	assert.NotContains(t, bot.store.events, int64(7), "refused command must not open a flow")
	assert.Empty(t, bot.words.lists)
}

func TestTargetKeyboardLabelsResolve(t *testing.T) {
	owner := &tele.User{ID: testOwnerID, FirstName: "Boss", Username: "boss"}
	bot := newTestBot(t,
		&domain.User{UserID: testOwnerID, ChatID: testOwnerID, FirstName: "Boss", Username: "boss", Language: "en"},
		&domain.User{UserID: 2, ChatID: 2, FirstName: "John", DisplayName: strPtr("Ghost"), Language: "en"},
	)

	open := messageFrom(owner, "/getinfo")
	require.NoError(t, bot.handlers.GetPersonInfo(open))

	// A renamed user without a username is offered under the name the
	// lookup goes by, so picking the button cannot dead-end.
	labels := open.lastKeyboard(t)
	assert.Contains(t, labels, "boss")
	assert.Contains(t, labels, "Ghost")
	assert.NotContains(t, labels, "John")

	pick := messageFrom(owner, "Ghost")
	require.NoError(t, bot.dispatcher.HandleMessage(pick))
	assert.Contains(t, pick.lastText(t), "Ghost")
	assert.NotContains(t, bot.store.events, testOwnerID)
}

func strPtr(s string) *string { return &s }
