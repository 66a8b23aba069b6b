package handlers

import (
	"errors"
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
	"toolsbot/internal/repository"
	"toolsbot/internal/service"
)

// SendToOwner asks for the message to forward to the bot owner.
func (h *Handlers) SendToOwner(c tele.Context) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	ownerName, err := h.profiles.ViewedName(ctx, h.profiles.OwnerID())
	if err != nil {
		ownerName = strconv.FormatInt(h.profiles.OwnerID(), 10)
	}
	ev := domain.Event{
		Next:    domain.HandlerRelayMessage,
		Payload: strconv.FormatInt(h.profiles.OwnerID(), 10),
	}
	if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
		return err
	}
	return h.reply(c, fmt.Sprintf("%s %s?", locale.T(lang, "send_to.user"), ownerName))
}

// SendToAdmin asks for the message to forward to every admin.
func (h *Handlers) SendToAdmin(c tele.Context) error {
	ctx := h.ctx(c)
	ev := domain.Event{Next: domain.HandlerBroadcast, Payload: "admin"}
	if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "send_to.admins"))
}

// SendTo opens the admin flow to message a chosen user.
func (h *Handlers) SendTo(c tele.Context) error {
	return h.askTarget(c, domain.HandlerRelayMessage, true)
}

// Broadcast asks for the message to announce to every user.
func (h *Handlers) Broadcast(c tele.Context) error {
	ctx := h.ctx(c)
	if err := h.tracker.Register(ctx, c.Sender().ID, domain.Event{Next: domain.HandlerBroadcast}); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "broadcast.msg_to_send"))
}

func (h *Handlers) flowRelayMessage(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("relay: bad target %q: %w", ev.Payload, err)
	}

	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	sender, err := h.profiles.Get(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	target, err := h.profiles.Get(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
	}
	if err != nil {
		return err
	}

	err = h.relay.Forward(ctx, sender, target, service.ScopeDirect, c.Message())
	switch {
	case errors.Is(err, service.ErrBlocked):
		return h.reply(c, locale.T(lang, "send_to.blocked"), removeKeyboard())
	case errors.Is(err, service.ErrUnsupported):
		return h.reply(c, locale.T(lang, "send_to.unsupported"), removeKeyboard())
	case err != nil:
		return err
	}
	return h.reply(c, locale.T(lang, "sent"), removeKeyboard())
}

func (h *Handlers) flowBroadcast(c tele.Context, ev domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	sender, err := h.profiles.Get(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if !service.Supported(c.Message()) {
		return h.reply(c, locale.T(lang, "send_to.unsupported"))
	}
	if err := h.relay.Broadcast(ctx, sender, c.Message(), ev.Payload == "admin"); err != nil {
		return err
	}
	return h.reply(c, locale.T(lang, "sent"))
}
