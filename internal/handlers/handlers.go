package handlers

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "toolsbot/core/telegram/helpers"
	"toolsbot/core/telegram/middleware"
	"toolsbot/internal/chatlog"
	"toolsbot/internal/flow"
	"toolsbot/internal/history"
	"toolsbot/internal/locale"
	"toolsbot/internal/service"
)

// Handlers owns every user-facing command, flow continuation and
// callback of the bot.
type Handlers struct {
	profiles   *service.Profiles
	mod        *service.Moderation
	relay      *service.Relay
	custom     *service.CustomCommands
	history    history.Provider
	tracker    *flow.Tracker
	flows      *flow.Registry
	transcript *chatlog.Writer
}

func New(profiles *service.Profiles, mod *service.Moderation, relay *service.Relay, custom *service.CustomCommands, hist history.Provider, tracker *flow.Tracker, transcript *chatlog.Writer) *Handlers {
	return &Handlers{
		profiles:   profiles,
		mod:        mod,
		relay:      relay,
		custom:     custom,
		history:    hist,
		tracker:    tracker,
		transcript: transcript,
	}
}

func (h *Handlers) ctx(c tele.Context) context.Context {
	return tghelpers.BuildContext(c)
}

func (h *Handlers) lang(ctx context.Context, c tele.Context) string {
	return h.profiles.Language(ctx, c.Sender().ID)
}

// reply sends text back to the user and mirrors it into the transcript.
func (h *Handlers) reply(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	if h.transcript.Enabled() && c.Sender() != nil {
		_ = h.transcript.Bot(c.Sender().ID, text)
	}
	if len(markup) > 0 && markup[0] != nil {
		return tghelpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: markup[0]})
	}
	return tghelpers.SendText(c, text)
}

// denied runs the refusal procedure: a generic refusal line plus the
// localized reason.
func (h *Handlers) denied(c tele.Context, reason string) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	text := fmt.Sprintf("%s\n%s",
		locale.T(lang, "permission_denied.default"),
		locale.T(lang, "permission_denied."+reason))
	return h.reply(c, text)
}

// PermissionGuard wraps command handlers with the per-user permission
// gate. The first use of a command seeds its permission entry.
func (h *Handlers) PermissionGuard() func(command string, next tele.HandlerFunc) tele.HandlerFunc {
	return func(command string, next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || sender.IsBot {
				return nil
			}
			ctx := h.ctx(c)
			var chatID int64
			if c.Chat() != nil {
				chatID = c.Chat().ID
			}
			if err := h.profiles.Refresh(ctx, sender.ID, chatID, sender.FirstName, sender.LastName, sender.Username, sender.IsBot); err != nil {
				return err
			}
			h.record(c)

			allowed, err := h.profiles.Ensure(ctx, sender.ID, command)
			if err != nil {
				return err
			}
			if !allowed {
				return h.denied(c, "restricted")
			}
			return next(c)
		}
	}
}

// AccessOptions builds the admin gate used by admin-only routes.
func (h *Handlers) AccessOptions() middleware.AccessOptions {
	return middleware.AccessOptions{
		Checker: middleware.AdminCheckerFunc(func(userID int64) bool {
			return h.profiles.IsAdmin(context.Background(), userID)
		}),
		OnReject: func(c tele.Context) error {
			return h.denied(c, "admin_only")
		},
	}
}

func (h *Handlers) record(c tele.Context) {
	if !h.transcript.Enabled() {
		return
	}
	sender := c.Sender()
	info := strings.TrimSpace(sender.Username + " " + sender.FirstName + " " + sender.LastName)
	_ = h.transcript.User(sender.ID, info, c.Text())
}

// Cancel drops the sender's pending flow, if any.
func (h *Handlers) Cancel(c tele.Context) error {
	ctx := h.ctx(c)
	had, err := h.tracker.Cancel(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if !had {
		return nil
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "cancel"), removeKeyboard())
}

// DenyRestricted is the refusal used when a permission check fails
// outside the command router.
func (h *Handlers) DenyRestricted(c tele.Context) error {
	return h.denied(c, "restricted")
}
