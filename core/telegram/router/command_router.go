package router

import (
	"log/slog"
	"time"

	"toolsbot/core/logger"
	tg "toolsbot/core/telegram"
	"toolsbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	Access middleware.AccessOptions

	// Guard wraps a command handler with the per-user permission gate.
	// It receives the bare command name, without the leading slash.
	Guard func(command string, next tele.HandlerFunc) tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		inner := def.Handler
		if opts.Guard != nil {
			inner = opts.Guard(name, inner)
		}
		inner = middleware.WithAdminCheck(opts.Access, def.AdminOnly, inner)

		h := func(inner tele.HandlerFunc, name string) tele.HandlerFunc {
			return func(c tele.Context) error {
				return handleWithSummary(c, name, time.Now(), "", "", func() error {
					return inner(c)
				})
			}
		}(inner, name)
		h = middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))

		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
