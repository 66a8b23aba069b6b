package middleware

import (
	"sync"
	"time"

	"toolsbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures the per-user rate limit.
type RateLimitOptions struct {
	// Interval is the minimum gap between two handled updates per user.
	Interval time.Duration
	// Exclude lists update kinds that bypass the limit, e.g. "callback"
	// so wizard keyboards stay responsive.
	Exclude map[string]struct{}
	// OnLimited runs instead of the handler when an update is dropped.
	OnLimited tele.HandlerFunc
}

// RateLimitMiddleware drops updates arriving faster than Interval from
// the same user.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		userLastSeen   = make(map[int64]time.Time)
		userLastSeenMu sync.Mutex
	)
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}

			upd := c.Update()
			kind := "other"
			switch {
			case upd.Callback != nil:
				kind = "callback"
			case upd.Message != nil:
				kind = "message"
			case upd.Query != nil:
				kind = "inline_query"
			}
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}

			now := time.Now()

			userLastSeenMu.Lock()
			last, seen := userLastSeen[user.ID]
			limited := seen && now.Sub(last) < opts.Interval
			if !limited {
				userLastSeen[user.ID] = now
			}
			userLastSeenMu.Unlock()

			if limited {
				args := []any{
					slog.String("event", "tg.rate_limit"),
					slog.Int64("user_id", user.ID),
				}
				if chat := c.Chat(); chat != nil {
					args = append(args, slog.Int64("chat_id", chat.ID))
				}
				logger.TG.Warn("rate limit", args...)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
