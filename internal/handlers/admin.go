package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/core/telegram/keyboard"
	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
)

// askTarget opens the targeting flow: it lists every known user on a
// reply keyboard and waits for the admin to pick one. The final handler
// and whether it needs a further argument travel inside the event.
func (h *Handlers) askTarget(c tele.Context, final domain.HandlerID, secondStep bool) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	users, err := h.profiles.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		// Every offered label must resolve: usernames match exactly,
		// otherwise the viewed name is what the lookup goes by.
		label := u.Username
		if label == "" {
			label = u.ViewedName()
		}
		if label == "" {
			continue
		}
		rows = append(rows, []string{label})
	}

	ev := domain.Event{
		Next:       domain.HandlerResolveTarget,
		Command:    final,
		SecondStep: secondStep,
	}
	if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
		return err
	}
	return h.reply(c, locale.T(lang, "choose_target"), keyboard.ReplyButtons(rows...))
}

// Admin variants of the profile commands. Each opens the targeting flow
// with the matching final handler.

func (h *Handlers) GetPersonInfo(c tele.Context) error {
	return h.askTarget(c, domain.HandlerGetInfo, false)
}

func (h *Handlers) SetPersonName(c tele.Context) error {
	return h.askTarget(c, domain.HandlerSetName, true)
}

func (h *Handlers) ResetPersonName(c tele.Context) error {
	return h.askTarget(c, domain.HandlerResetName, false)
}

func (h *Handlers) SetPersonPermission(c tele.Context) error {
	return h.askTarget(c, domain.HandlerSetPermission, true)
}

func (h *Handlers) GetPersonPermission(c tele.Context) error {
	return h.askTarget(c, domain.HandlerListPermission, false)
}

// SetPersonAdmin promotes or demotes a user. Owner only.
func (h *Handlers) SetPersonAdmin(c tele.Context) error {
	if c.Sender().ID != h.profiles.OwnerID() {
		return h.denied(c, "owner_only")
	}
	return h.askTarget(c, domain.HandlerSetAdmin, false)
}

func (h *Handlers) SetPersonSentence(c tele.Context) error {
	return h.askTarget(c, domain.HandlerSetSentence, true)
}

func (h *Handlers) SetPersonLang(c tele.Context) error {
	return h.askTarget(c, domain.HandlerSetLanguage, false)
}

func (h *Handlers) SetPersonGender(c tele.Context) error {
	return h.askTarget(c, domain.HandlerSetGender, false)
}

// GetIds lists every stored user with their id and chosen name.
func (h *Handlers) GetIds(c tele.Context) error {
	ctx := h.ctx(c)
	users, err := h.profiles.List(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, u := range users {
		fmt.Fprintf(&b, "%d: %s %s\nBotname: %s\n\n",
			u.UserID, u.FirstName, u.LastName, strOr(u.DisplayName))
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		text = locale.T(h.lang(ctx, c), "choose_argument.not_found")
	}
	return h.reply(c, text)
}

// flowSetAdmin is the final step of the promote/demote flow.
func (h *Handlers) flowSetAdmin(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("set admin: bad target %q: %w", ev.Payload, err)
	}

	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	admin, err := h.profiles.ToggleAdmin(ctx, targetID)
	if err != nil {
		return err
	}
	key := "set_admin.remove"
	if admin {
		key = "set_admin.add"
	}
	return h.reply(c, fmt.Sprintf("%s %s", name, locale.T(lang, key)), removeKeyboard())
}
