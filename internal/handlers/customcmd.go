package handlers

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/core/telegram/keyboard"
	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
	"toolsbot/internal/service"
)

// GetCommandsList shows the admin every stored custom command.
func (h *Handlers) GetCommandsList(c tele.Context) error {
	ctx := h.ctx(c)
	names, err := h.custom.Names(ctx)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(locale.T(h.lang(ctx, c), "custom_commands.list"))
	for _, name := range names {
		b.WriteString("\n" + name)
	}
	return h.reply(c, b.String())
}

func (h *Handlers) commandNameKeyboard(c tele.Context) *tele.ReplyMarkup {
	names, err := h.custom.Names(h.ctx(c))
	if err != nil || len(names) == 0 {
		return removeKeyboard()
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name})
	}
	return keyboard.ReplyButtons(rows...)
}

// AddCommand asks which custom command to create or update.
func (h *Handlers) AddCommand(c tele.Context) error {
	ctx := h.ctx(c)
	if err := h.tracker.Register(ctx, c.Sender().ID, domain.Event{Next: domain.HandlerAskCommandContent}); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "custom_commands.add_command"), h.commandNameKeyboard(c))
}

// RemoveCommand asks which custom command to delete.
func (h *Handlers) RemoveCommand(c tele.Context) error {
	ctx := h.ctx(c)
	if err := h.tracker.Register(ctx, c.Sender().ID, domain.Event{Next: domain.HandlerRemoveCustomCommand}); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "custom_commands.remove_command"), h.commandNameKeyboard(c))
}

func (h *Handlers) flowAskCommandContent(c tele.Context, _ domain.Event) error {
	ctx := h.ctx(c)
	name := h.custom.Normalize(strings.TrimSpace(c.Text()))
	ev := domain.Event{Next: domain.HandlerSaveCustomCommand, Payload: name}
	if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "custom_commands.add_command_content"), removeKeyboard())
}

func (h *Handlers) flowSaveCustomCommand(c tele.Context, ev domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	err := h.custom.SaveFromMessage(ctx, ev.Payload, c.Message())
	if errors.Is(err, service.ErrUnsupported) {
		return h.reply(c, locale.T(lang, "send_to.unsupported"))
	}
	if err != nil {
		return err
	}
	return h.reply(c, fmt.Sprintf("%s %s", ev.Payload, locale.T(lang, "custom_commands.added")))
}

func (h *Handlers) flowRemoveCustomCommand(c tele.Context, _ domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	name := h.custom.Normalize(strings.TrimSpace(c.Text()))

	err := h.custom.Remove(ctx, name)
	if errors.Is(err, service.ErrUnknownCommand) {
		return h.reply(c, locale.T(lang, "custom_commands.not_found"), removeKeyboard())
	}
	if err != nil {
		return err
	}
	return h.reply(c, fmt.Sprintf("%s %s", name, locale.T(lang, "custom_commands.removed")), removeKeyboard())
}
