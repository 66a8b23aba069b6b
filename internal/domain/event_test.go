package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventExpired(t *testing.T) {
	now := time.Now()

	fresh := &Event{Next: HandlerSetName, CreatedAt: now.Add(-time.Minute)}
	stale := &Event{Next: HandlerSetName, CreatedAt: now.Add(-time.Hour)}

	assert.False(t, fresh.Expired(10*time.Minute, now))
	assert.True(t, stale.Expired(10*time.Minute, now))
}

func TestEventExpiredZeroTTL(t *testing.T) {
	now := time.Now()
	ev := &Event{Next: HandlerSetName, CreatedAt: now.Add(-24 * time.Hour)}
	assert.False(t, ev.Expired(0, now))
}

func TestEventExpiredZeroCreatedAt(t *testing.T) {
	ev := &Event{Next: HandlerSetName}
	assert.False(t, ev.Expired(time.Minute, time.Now()))
}

func TestEventExpiredNil(t *testing.T) {
	var ev *Event
	assert.False(t, ev.Expired(time.Minute, time.Now()))
}

func TestKnownHandlersAreDistinct(t *testing.T) {
	seen := make(map[HandlerID]bool)
	for _, id := range KnownHandlers() {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate handler id %q", id)
		seen[id] = true
	}
}
