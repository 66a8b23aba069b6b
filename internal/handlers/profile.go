package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/core/telegram/callbacks"
	"toolsbot/core/telegram/keyboard"
	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
	"toolsbot/internal/repository"
	"toolsbot/internal/service"
)

func removeKeyboard() *tele.ReplyMarkup { return keyboard.RemoveKeyboard() }

// Greet welcomes the user by their viewed name, appending the personal
// sentence when one is set.
func (h *Handlers) Greet(c tele.Context) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	user, err := h.profiles.Get(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	name, err := h.profiles.ViewedName(ctx, user.UserID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s %s!", locale.T(lang, "greet"), name)
	if user.Sentence != nil && *user.Sentence != "" {
		text += "\n" + *user.Sentence
	}
	return h.reply(c, text)
}

func langKeyboard(targetID int64) *tele.ReplyMarkup {
	langs := locale.Languages()
	codes := make([]string, 0, len(langs))
	for code := range langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	btns := make([]keyboard.InlineBtn, 0, len(codes))
	for _, code := range codes {
		btns = append(btns, keyboard.InlineBtn{
			Text:   langs[code],
			Unique: "lang",
			Data:   fmt.Sprintf("%d|%s", targetID, code),
		})
	}
	return keyboard.InlineButtonsNPerRow(btns, 1)
}

// Lang offers the language choice for the sender.
func (h *Handlers) Lang(c tele.Context) error {
	ctx := h.ctx(c)
	return h.reply(c, locale.T(h.lang(ctx, c), "set_lang.choice"), langKeyboard(c.Sender().ID))
}

// LangCallback applies the language picked on the inline keyboard. The
// payload names the profile being changed, so admins can retarget it.
func (h *Handlers) LangCallback(c tele.Context) error {
	ctx := h.ctx(c)
	parts, err := callbacks.PayloadParts(c, "|")
	if err != nil || len(parts) != 2 {
		return nil
	}
	targetID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil
	}
	code := parts[1]
	if !locale.Known(code) {
		return nil
	}

	if err := h.profiles.SetLanguage(ctx, targetID, code); err != nil {
		return err
	}
	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("%s %s %s.", name, locale.T(h.lang(ctx, c), "set_lang.confirmation"), locale.Label(code))
	return c.Edit(text)
}

// SetName opens the rename flow for the sender's own profile.
func (h *Handlers) SetName(c tele.Context) error {
	ctx := h.ctx(c)
	ev := domain.Event{
		Next:    domain.HandlerSetName,
		Payload: strconv.FormatInt(c.Sender().ID, 10),
	}
	if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "set_name.prompt"))
}

func (h *Handlers) flowSetName(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("set name: bad target %q: %w", ev.Payload, err)
	}

	ctx := h.ctx(c)
	name := strings.TrimSpace(c.Text())
	if name == "" {
		// Media or an empty message is not a name. Keep the flow open
		// and ask again.
		if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
			return err
		}
		return h.reply(c, locale.T(h.lang(ctx, c), "set_name.prompt"))
	}
	if name == "-r" {
		target, err := h.profiles.Get(ctx, targetID)
		if err != nil {
			return err
		}
		name = service.RandomName(target.Gender)
	}
	return h.applyName(c, targetID, name)
}

// RandomName gives the sender a random name matching their gender.
func (h *Handlers) RandomName(c tele.Context) error {
	ctx := h.ctx(c)
	user, err := h.profiles.Get(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	return h.applyName(c, user.UserID, service.RandomName(user.Gender))
}

func (h *Handlers) applyName(c tele.Context, targetID int64, name string) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	err := h.profiles.ValidateName(ctx, name, h.profiles.Limits().MaxName)
	var tooLong *service.TooLongError
	switch {
	case errors.As(err, &tooLong):
		return h.reply(c, fmt.Sprintf("%s Max: %d", locale.T(lang, "set_name.max_chars"), tooLong.Max))
	case errors.Is(err, service.ErrNameBanned):
		return h.reply(c, locale.T(lang, "set_name.name_banned"))
	case err != nil:
		return err
	}

	oldName, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	if err := h.profiles.SetDisplayName(ctx, targetID, name); err != nil {
		return err
	}

	if targetID == c.Sender().ID {
		return h.reply(c, fmt.Sprintf("%s %s", locale.T(lang, "set_name.personal_name"), name))
	}
	return h.reply(c, fmt.Sprintf("%s %s %s %s",
		locale.T(lang, "set_name.name_of"), oldName, locale.T(lang, "set_name.is_now"), name))
}

// ResetName clears the sender's chosen name.
func (h *Handlers) ResetName(c tele.Context) error {
	return h.applyReset(c, c.Sender().ID)
}

func (h *Handlers) flowResetName(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("reset name: bad target %q: %w", ev.Payload, err)
	}
	return h.applyReset(c, targetID)
}

func (h *Handlers) applyReset(c tele.Context, targetID int64) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	target, err := h.profiles.Get(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
	}
	if err != nil {
		return err
	}
	if err := h.profiles.ResetDisplayName(ctx, targetID); err != nil {
		return err
	}
	return h.reply(c, fmt.Sprintf("%s %s %s",
		locale.T(lang, "set_name.name_of"), target.FirstName, locale.T(lang, "set_name.resetted")),
		removeKeyboard())
}

// Gender cycles the sender's gender.
func (h *Handlers) Gender(c tele.Context) error {
	return h.applyGender(c, c.Sender().ID)
}

func (h *Handlers) flowSetGender(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("set gender: bad target %q: %w", ev.Payload, err)
	}
	return h.applyGender(c, targetID)
}

func (h *Handlers) applyGender(c tele.Context, targetID int64) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	gender, err := h.profiles.ToggleGender(ctx, targetID)
	if err != nil {
		return err
	}
	return h.reply(c, fmt.Sprintf("%s %s", name, locale.T(lang, "set_gender."+string(gender))), removeKeyboard())
}

// Notifications toggles the on/off announcements for the sender.
func (h *Handlers) Notifications(c tele.Context) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	enabled, err := h.profiles.ToggleNotifications(ctx, c.Sender().ID)
	if errors.Is(err, repository.ErrNotFound) {
		return h.denied(c, "not_found")
	}
	if err != nil {
		return err
	}
	key := "notifications.off"
	if enabled {
		key = "notifications.on"
	}
	return h.reply(c, locale.T(lang, key))
}

// Info shows the sender their stored profile.
func (h *Handlers) Info(c tele.Context) error {
	return h.sendInfo(c, c.Sender().ID)
}

func (h *Handlers) flowGetInfo(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("get info: bad target %q: %w", ev.Payload, err)
	}
	return h.sendInfo(c, targetID)
}

func (h *Handlers) sendInfo(c tele.Context, targetID int64) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	user, err := h.profiles.Get(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
	}
	if err != nil {
		return err
	}

	line := func(key, value string) string {
		return fmt.Sprintf("%s %s\n", locale.T(lang, key), value)
	}
	var b strings.Builder
	b.WriteString(line("info.name", user.FirstName))
	b.WriteString(line("info.last_name", user.LastName))
	b.WriteString(fmt.Sprintf("Username: %s\n", user.Username))
	b.WriteString(line("info.user_id", strconv.FormatInt(user.UserID, 10)))
	b.WriteString(line("info.bot_name", strOr(user.DisplayName)))
	b.WriteString(line("info.sentence", strOr(user.Sentence)))
	b.WriteString(line("info.language", user.Language))
	b.WriteString(line("info.gender", string(user.Gender)))
	b.WriteString(line("info.notification", strconv.FormatBool(user.Notifications)))
	b.WriteString(line("info.admin", strconv.FormatBool(user.IsAdmin(h.profiles.OwnerID()))))
	return h.reply(c, strings.TrimRight(b.String(), "\n"), removeKeyboard())
}

func strOr(p *string) string {
	if p == nil || *p == "" {
		return "none"
	}
	return *p
}

// PermissionList shows the sender their own permission table.
func (h *Handlers) PermissionList(c tele.Context) error {
	return h.sendPermissions(c, c.Sender().ID)
}

func (h *Handlers) flowListPermissions(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("list permissions: bad target %q: %w", ev.Payload, err)
	}
	return h.sendPermissions(c, targetID)
}

func (h *Handlers) sendPermissions(c tele.Context, targetID int64) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	perms, err := h.profiles.Permissions(ctx, targetID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if len(perms) == 0 {
		return h.reply(c, locale.T(lang, "choose_argument.not_found"), removeKeyboard())
	}

	name, err := h.profiles.ViewedName(ctx, targetID)
	if err != nil {
		return err
	}
	commands := make([]string, 0, len(perms))
	for command := range perms {
		commands = append(commands, command)
	}
	sort.Strings(commands)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s:\n", locale.T(lang, "permission.list"), name)
	for _, command := range commands {
		fmt.Fprintf(&b, "%s: %t;\n", command, perms[command])
	}
	return h.reply(c, strings.TrimRight(b.String(), "\n"), removeKeyboard())
}

func (h *Handlers) flowSetLanguage(c tele.Context, ev domain.Event) error {
	targetID, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil {
		return fmt.Errorf("set language: bad target %q: %w", ev.Payload, err)
	}
	ctx := h.ctx(c)
	return h.reply(c, locale.T(h.lang(ctx, c), "set_lang.choice"), langKeyboard(targetID))
}
