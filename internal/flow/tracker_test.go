package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
)

type memStore struct {
	events map[int64]*domain.Event
}

func newMemStore() *memStore {
	return &memStore{events: make(map[int64]*domain.Event)}
}

func (m *memStore) SetEvent(_ context.Context, userID int64, ev *domain.Event) error {
	m.events[userID] = ev
	return nil
}

func (m *memStore) TakeEvent(_ context.Context, userID int64) (*domain.Event, error) {
	ev := m.events[userID]
	m.events[userID] = nil
	return ev, nil
}

func TestTrackerSingleSlotOverwrite(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, 0)
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerSetName}))
	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerGenerateQR}))

	ev, expired, err := tracker.Consume(ctx, 1)
	require.NoError(t, err)
	assert.False(t, expired)
	require.NotNil(t, ev)
	assert.Equal(t, domain.HandlerGenerateQR, ev.Next)
}

func TestTrackerConsumeClearsSlot(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, 0)
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerSetName}))

	ev, _, err := tracker.Consume(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, ev)

	again, expired, err := tracker.Consume(ctx, 1)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Nil(t, again, "a consumed event must not fire twice")
}

func TestTrackerTTLExpiry(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, time.Minute)
	now := time.Now()
	tracker.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerSetName}))

	tracker.now = func() time.Time { return now.Add(2 * time.Minute) }
	ev, expired, err := tracker.Consume(ctx, 1)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Nil(t, ev)

	// expiry also clears the slot
	ev, expired, err = tracker.Consume(ctx, 1)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Nil(t, ev)
}

func TestTrackerZeroTTLNeverExpires(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, 0)
	now := time.Now()
	tracker.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerSetName}))

	tracker.now = func() time.Time { return now.Add(24 * time.Hour) }
	ev, expired, err := tracker.Consume(ctx, 1)
	require.NoError(t, err)
	assert.False(t, expired)
	require.NotNil(t, ev)
}

func TestTrackerCancel(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, 0)
	ctx := context.Background()

	had, err := tracker.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.False(t, had)

	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerSetName}))
	had, err = tracker.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.True(t, had)

	ev, _, err := tracker.Consume(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestTrackerIsolatesUsers(t *testing.T) {
	store := newMemStore()
	tracker := NewTracker(store, 0)
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 1, domain.Event{Next: domain.HandlerSetName}))

	ev, _, err := tracker.Consume(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, ev)

	ev, _, err = tracker.Consume(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, ev)
}
