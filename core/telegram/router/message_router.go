package router

import (
	"time"

	tg "toolsbot/core/telegram"
	"toolsbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// MessageRouteOptions controls fallback behaviour for non-command updates.
type MessageRouteOptions struct {
	// Fallback handles every text or media update no command route
	// claimed: pending-event continuations, custom commands and media
	// replies all live behind it.
	Fallback tele.HandlerFunc
}

// MessageRoutes builds the text route plus one route per media endpoint.
// Text updates try the command registry first so aliased or argumented
// commands still reach their handlers; everything else goes to the
// fallback.
func MessageRoutes(reg *tg.Registry, opts MessageRouteOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if opts.Fallback != nil {
			return handleWithSummary(c, "dispatch.text", start, "", "", func() error {
				return opts.Fallback(c)
			})
		}

		logHandlerSummary(c, "dispatch.text", start, "skip", "ok", nil)
		return nil
	}

	routes := []tg.Route{{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
	}}

	mediaEndpoints := map[string]interface{}{
		"dispatch.photo":    tele.OnPhoto,
		"dispatch.audio":    tele.OnAudio,
		"dispatch.voice":    tele.OnVoice,
		"dispatch.sticker":  tele.OnSticker,
		"dispatch.document": tele.OnDocument,
	}
	for name, endpoint := range mediaEndpoints {
		h := func(name string) tele.HandlerFunc {
			return func(c tele.Context) error {
				start := time.Now()
				if opts.Fallback != nil {
					return handleWithSummary(c, name, start, "", "", func() error {
						return opts.Fallback(c)
					})
				}
				logHandlerSummary(c, name, start, "skip", "ok", nil)
				return nil
			}
		}(name)
		routes = append(routes, tg.Route{
			Endpoint: endpoint,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(h)),
		})
	}

	return routes
}
