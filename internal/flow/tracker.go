package flow

import (
	"context"
	"time"

	"toolsbot/internal/domain"
)

// EventStore persists the single pending-event slot of a user.
type EventStore interface {
	SetEvent(ctx context.Context, userID int64, ev *domain.Event) error
	TakeEvent(ctx context.Context, userID int64) (*domain.Event, error)
}

// Tracker manages per-user pending events. Every user has at most one
// slot; registering a new event silently replaces whatever was there.
type Tracker struct {
	store EventStore
	ttl   time.Duration
	now   func() time.Time
}

// NewTracker builds a tracker over store. A zero ttl disables expiry.
func NewTracker(store EventStore, ttl time.Duration) *Tracker {
	return &Tracker{store: store, ttl: ttl, now: time.Now}
}

// Register stores ev as the user's pending event, stamping its creation
// time and overwriting any previous slot.
func (t *Tracker) Register(ctx context.Context, userID int64, ev domain.Event) error {
	ev.CreatedAt = t.now()
	return t.store.SetEvent(ctx, userID, &ev)
}

// Consume atomically removes and returns the user's pending event. The
// slot is cleared before the event is handed back, so a handler that
// fails does not leave a stale continuation behind. The second result
// reports that an event existed but had outlived the ttl.
func (t *Tracker) Consume(ctx context.Context, userID int64) (*domain.Event, bool, error) {
	ev, err := t.store.TakeEvent(ctx, userID)
	if err != nil || ev == nil {
		return nil, false, err
	}
	if ev.Expired(t.ttl, t.now()) {
		return nil, true, nil
	}
	return ev, false, nil
}

// Cancel discards the pending event and reports whether one existed.
func (t *Tracker) Cancel(ctx context.Context, userID int64) (bool, error) {
	ev, err := t.store.TakeEvent(ctx, userID)
	if err != nil {
		return false, err
	}
	return ev != nil, nil
}
