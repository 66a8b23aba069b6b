package middleware

import tele "gopkg.in/telebot.v4"

// AdminChecker reports whether a user currently holds admin rights.
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

// AdminCheckerFunc adapts a function to the AdminChecker interface.
type AdminCheckerFunc func(userID int64) bool

// IsAdmin executes the underlying function.
func (f AdminCheckerFunc) IsAdmin(userID int64) bool { return f(userID) }

// AccessOptions defines how admin-only checks should behave.
type AccessOptions struct {
	Checker  AdminChecker
	OnReject tele.HandlerFunc
}

// WithAdminCheck wraps a handler enforcing admin-only execution when required.
func WithAdminCheck(opts AccessOptions, adminOnly bool, handler tele.HandlerFunc) tele.HandlerFunc {
	if !adminOnly || opts.Checker == nil {
		return handler
	}
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || !opts.Checker.IsAdmin(sender.ID) {
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
		return handler(c)
	}
}

// AdminOnlyMiddleware ensures that only admin users can invoke downstream handlers.
func AdminOnlyMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || opts.Checker == nil || !opts.Checker.IsAdmin(sender.ID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
