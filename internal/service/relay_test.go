package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
)

type sentMessage struct {
	to   tele.Recipient
	what interface{}
}

type fakeTransport struct {
	sent []sentMessage
}

func (f *fakeTransport) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.sent = append(f.sent, sentMessage{to: to, what: what})
	return &tele.Message{}, nil
}

func (f *fakeTransport) textsTo(recipient string) []string {
	var out []string
	for _, s := range f.sent {
		if s.to.Recipient() != recipient {
			continue
		}
		if text, ok := s.what.(string); ok {
			out = append(out, text)
		}
	}
	return out
}

func TestAnnounceLocalizesStatus(t *testing.T) {
	store := newFakeUsers(
		&domain.User{UserID: 1, ChatID: 1, Language: "en", Notifications: true},
		&domain.User{UserID: 2, ChatID: 2, Language: "it", Notifications: true},
		&domain.User{UserID: 3, ChatID: 3, Language: "en", Notifications: false},
	)
	transport := &fakeTransport{}
	r := NewRelay(transport, store, newTestProfiles(store, nil))

	r.Announce(context.Background(), "offline")

	require.Len(t, transport.sent, 2)
	assert.Equal(t, []string{"The bot is offline!"}, transport.textsTo("1"))
	assert.Equal(t, []string{"Il bot è spento!"}, transport.textsTo("2"))
	assert.Empty(t, transport.textsTo("3"))
}

func TestAnnounceDefaultsLanguage(t *testing.T) {
	store := newFakeUsers(&domain.User{UserID: 1, ChatID: 1, Notifications: true})
	transport := &fakeTransport{}
	r := NewRelay(transport, store, newTestProfiles(store, nil))

	r.Announce(context.Background(), "online")

	require.Len(t, transport.sent, 1)
	assert.Equal(t, "The bot is online!", transport.sent[0].what)
}
