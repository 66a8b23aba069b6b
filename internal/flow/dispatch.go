package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/core/logger"
	tghelpers "toolsbot/core/telegram/helpers"
	"toolsbot/internal/chatlog"
	"toolsbot/internal/locale"
	"toolsbot/internal/service"
)

// Dispatcher routes every non-command message: it refreshes the sender's
// profile, consumes the pending event when one is waiting, and otherwise
// falls through to custom commands and media replies.
type Dispatcher struct {
	profiles   *service.Profiles
	tracker    *Tracker
	flows      *Registry
	custom     *service.CustomCommands
	transcript *chatlog.Writer

	// Denied runs the refusal procedure when a custom command is not
	// permitted. Optional; a plain localized reply is sent without it.
	Denied func(c tele.Context, command string) error
}

func NewDispatcher(profiles *service.Profiles, tracker *Tracker, flows *Registry, custom *service.CustomCommands, transcript *chatlog.Writer) *Dispatcher {
	return &Dispatcher{
		profiles:   profiles,
		tracker:    tracker,
		flows:      flows,
		custom:     custom,
		transcript: transcript,
	}
}

// Tracker exposes the pending-event tracker for command handlers that
// open flows.
func (d *Dispatcher) Tracker() *Tracker { return d.tracker }

// HandleMessage is the fallback behind the text and media endpoints.
func (d *Dispatcher) HandleMessage(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || sender.IsBot {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	var chatID int64
	if c.Chat() != nil {
		chatID = c.Chat().ID
	}
	if err := d.profiles.Refresh(ctx, sender.ID, chatID, sender.FirstName, sender.LastName, sender.Username, sender.IsBot); err != nil {
		return err
	}
	d.recordIncoming(c)

	lang := d.profiles.Language(ctx, sender.ID)

	ev, expired, err := d.tracker.Consume(ctx, sender.ID)
	if err != nil {
		return err
	}
	if expired {
		logger.LogEvent(ctx, logger.Component("flow"), slog.LevelInfo, "flow.expired",
			slog.Int64("user_id", sender.ID))
		return tghelpers.SendText(c, locale.T(lang, "expired"))
	}
	if ev != nil {
		h, err := d.flows.Resolve(ev.Next)
		if err != nil {
			logger.LogEvent(ctx, logger.Component("flow"), slog.LevelError, "flow.resolve_failed",
				slog.String("next", string(ev.Next)),
				slog.Int64("user_id", sender.ID))
			return tghelpers.SendText(c, locale.T(lang, "not_found"))
		}
		logger.LogEvent(ctx, logger.Component("flow"), slog.LevelInfo, "flow.continue",
			slog.String("next", string(ev.Next)),
			slog.Int64("user_id", sender.ID))
		return h(c, *ev)
	}

	text := strings.TrimSpace(c.Text())
	if strings.HasPrefix(text, "/") {
		return d.runCustom(ctx, c, lang, text)
	}
	if text == "" && c.Message() != nil {
		return d.mediaReply(ctx, c, lang)
	}
	return nil
}

func (d *Dispatcher) runCustom(ctx context.Context, c tele.Context, lang, text string) error {
	name := d.custom.Normalize(strings.Fields(text)[0])
	cmd, err := d.custom.Lookup(ctx, name)
	if errors.Is(err, service.ErrUnknownCommand) {
		return tghelpers.SendText(c, locale.T(lang, "not_found"))
	}
	if err != nil {
		return err
	}

	allowed, err := d.profiles.Ensure(ctx, c.Sender().ID, name)
	if err != nil {
		return err
	}
	if !allowed {
		if d.Denied != nil {
			return d.Denied(c, name)
		}
		return tghelpers.SendText(c, locale.T(lang, "permission_denied.default"))
	}

	payload, err := service.Payload(cmd.Content)
	if err != nil {
		return tghelpers.SendText(c, locale.T(lang, "not_found"))
	}
	logger.LogEvent(ctx, logger.Component("flow"), slog.LevelInfo, "flow.custom_command",
		slog.String("command", name),
		slog.Int64("user_id", c.Sender().ID))
	return c.Send(payload)
}

func (d *Dispatcher) mediaReply(ctx context.Context, c tele.Context, lang string) error {
	name, err := d.profiles.ViewedName(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	key := "handle_media.image"
	if msg := c.Message(); msg.Audio != nil || msg.Voice != nil {
		key = "handle_media.audio"
	}
	reply := fmt.Sprintf("%s %s, %s", locale.T(lang, "greet"), name, locale.T(lang, key))
	return tghelpers.SendText(c, reply)
}

func (d *Dispatcher) recordIncoming(c tele.Context) {
	if !d.transcript.Enabled() {
		return
	}
	sender := c.Sender()
	info := strings.TrimSpace(sender.Username + " " + sender.FirstName + " " + sender.LastName)
	content := c.Text()
	if content == "" {
		content = describeMessage(c.Message())
	}
	_ = d.transcript.User(sender.ID, info, content)
}

func describeMessage(msg *tele.Message) string {
	if msg == nil {
		return "<empty>"
	}
	switch {
	case msg.Photo != nil:
		return "<photo>"
	case msg.Audio != nil:
		return "<audio>"
	case msg.Voice != nil:
		return "<voice>"
	case msg.Sticker != nil:
		return "<sticker>"
	case msg.Document != nil:
		return fmt.Sprintf("<document %s>", msg.Document.FileName)
	}
	return "<unsupported>"
}
