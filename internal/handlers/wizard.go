package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/core/telegram/keyboard"
	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
	"toolsbot/internal/repository"
	"toolsbot/internal/service"
)

// flowResolveTarget matches the admin's reply against known users.
// Usernames win; viewed names may be ambiguous, in which case the admin
// gets an id keyboard and one more round.
func (h *Handlers) flowResolveTarget(c tele.Context, ev domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	input := strings.TrimSpace(c.Text())

	target, candidates, err := h.profiles.ResolveTarget(ctx, input)
	if errors.Is(err, repository.ErrNotFound) {
		return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
	}
	if err != nil {
		return err
	}

	if target != nil {
		return h.askArgument(c, ev, target.UserID)
	}

	var b strings.Builder
	b.WriteString(locale.T(lang, "choose_argument.multiple_found"))
	rows := make([][]string, 0, len(candidates))
	for _, u := range candidates {
		name, nameErr := h.profiles.ViewedName(ctx, u.UserID)
		if nameErr != nil {
			name = u.ViewedName()
		}
		fmt.Fprintf(&b, "\n%d:\nBotname: %s\n", u.UserID, name)
		rows = append(rows, []string{strconv.FormatInt(u.UserID, 10)})
	}

	next := domain.Event{
		Next:       domain.HandlerResolveAmbiguousTarget,
		Command:    ev.Command,
		SecondStep: ev.SecondStep,
	}
	if err := h.tracker.Register(ctx, c.Sender().ID, next); err != nil {
		return err
	}
	return h.reply(c, b.String(), keyboard.ReplyButtons(rows...))
}

// flowResolveAmbiguousTarget handles the id picked after an ambiguous
// name match.
func (h *Handlers) flowResolveAmbiguousTarget(c tele.Context, ev domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	targetID, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
	}
	if _, err := h.profiles.Get(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
		}
		return err
	}
	return h.askArgument(c, ev, targetID)
}

// askArgument runs once the target is settled. Flows without a second
// step invoke the final handler immediately; the rest prompt for the
// argument and park the final handler in the event slot.
func (h *Handlers) askArgument(c tele.Context, ev domain.Event, targetID int64) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	final := domain.Event{
		Next:    ev.Command,
		Payload: strconv.FormatInt(targetID, 10),
	}

	if !ev.SecondStep {
		if err := h.reply(c, fmt.Sprintf("%s %s (%d).", locale.T(lang, "choose_argument.selected"), name, targetID), removeKeyboard()); err != nil {
			return err
		}
		handler, err := h.flows.Resolve(ev.Command)
		if err != nil {
			return err
		}
		return handler(c, final)
	}

	markup := removeKeyboard()
	if ev.Command == domain.HandlerSetPermission {
		if perms, permErr := h.profiles.Permissions(ctx, targetID); permErr == nil && len(perms) > 0 {
			commands := make([]string, 0, len(perms))
			for command := range perms {
				commands = append(commands, command)
			}
			sort.Strings(commands)
			rows := make([][]string, 0, len(commands))
			for _, command := range commands {
				rows = append(rows, []string{command})
			}
			markup = keyboard.ReplyButtons(rows...)
		}
	}

	if err := h.tracker.Register(ctx, c.Sender().ID, final); err != nil {
		return err
	}
	text := fmt.Sprintf("%s %s (%d).\n%s",
		locale.T(lang, "choose_argument.selected"), name, targetID,
		locale.T(lang, "choose_argument.argument"))
	return h.reply(c, text, markup)
}

// flowSetPermission toggles one command permission of the target.
func (h *Handlers) flowSetPermission(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("set permission: bad target %q: %w", ev.Payload, err)
	}

	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	command := strings.TrimSpace(c.Text())

	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	allowed, err := h.profiles.TogglePermission(ctx, c.Sender().ID, targetID, command)
	switch {
	case errors.Is(err, service.ErrTargetAdmin):
		return h.denied(c, "target_admin")
	case errors.Is(err, service.ErrSelfLockout):
		return h.denied(c, "admin_only")
	case err != nil:
		return err
	}

	key := "permission.locked"
	if allowed {
		key = "permission.unlocked"
	}
	text := fmt.Sprintf("%s %s %s", locale.T(lang, "permission.permission_of"), name, locale.T(lang, key))
	return h.reply(c, text, removeKeyboard())
}

// flowSetSentence stores the target's personal sentence. The literal
// "none" clears it.
func (h *Handlers) flowSetSentence(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("set sentence: bad target %q: %w", ev.Payload, err)
	}

	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	raw := strings.TrimSpace(c.Text())

	validateErr := h.profiles.ValidateName(ctx, raw, h.profiles.Limits().MaxSentence)
	var tooLong *service.TooLongError
	switch {
	case errors.As(validateErr, &tooLong):
		return h.reply(c, fmt.Sprintf("%s Max: %d", locale.T(lang, "set_name.max_chars"), tooLong.Max))
	case errors.Is(validateErr, service.ErrNameBanned):
		return h.reply(c, locale.T(lang, "set_sentence.sentence_banned"))
	case validateErr != nil:
		return validateErr
	}

	var sentence *string
	if !strings.EqualFold(raw, "none") {
		sentence = &raw
	}
	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	if err := h.profiles.SetSentence(ctx, targetID, sentence); err != nil {
		return err
	}

	shown := "none"
	if sentence != nil {
		shown = *sentence
	}
	if targetID == c.Sender().ID {
		return h.reply(c, fmt.Sprintf("%s %s", locale.T(lang, "set_sentence.personal_sentence"), shown), removeKeyboard())
	}
	return h.reply(c, fmt.Sprintf("%s %s %s %s",
		locale.T(lang, "set_sentence.sentence_of"), name, locale.T(lang, "set_name.is_now"), shown),
		removeKeyboard())
}
