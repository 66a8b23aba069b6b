// Package history provides the /eventstoday lookup: a random historical
// event that happened on today's date.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable means no event could be fetched for the date.
var ErrUnavailable = errors.New("history: no events available")

// Provider fetches a historical event for the given date, localized when the
// backend supports the language.
type Provider interface {
	EventOn(ctx context.Context, date time.Time, lang string) (string, error)
}
