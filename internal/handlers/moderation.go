package handlers

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
)

func (h *Handlers) askWord(c tele.Context, next domain.HandlerID, category domain.WordCategory, promptKey string) error {
	ctx := h.ctx(c)
	ev := domain.Event{Next: next, Payload: string(category)}
	if err := h.tracker.Register(ctx, c.Sender().ID, ev); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), promptKey))
}

func (h *Handlers) AddBanned(c tele.Context) error {
	return h.askWord(c, domain.HandlerAddBannedWord, domain.CategoryBanned, "banned_words.add_banned")
}

func (h *Handlers) RemoveBanned(c tele.Context) error {
	return h.askWord(c, domain.HandlerRemoveBannedWord, domain.CategoryBanned, "banned_words.remove_banned")
}

func (h *Handlers) AddUltraBanned(c tele.Context) error {
	return h.askWord(c, domain.HandlerAddBannedWord, domain.CategoryUltraBanned, "banned_words.add_ultrabanned")
}

func (h *Handlers) RemoveUltraBanned(c tele.Context) error {
	return h.askWord(c, domain.HandlerRemoveBannedWord, domain.CategoryUltraBanned, "banned_words.remove_banned")
}

func (h *Handlers) flowAddBannedWord(c tele.Context, ev domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	word := strings.ToLower(strings.TrimSpace(c.Text()))

	added, err := h.mod.AddWord(ctx, domain.WordCategory(ev.Payload), word)
	if err != nil {
		return err
	}
	if !added {
		return h.reply(c, locale.T(lang, "banned_words.already_banned"))
	}
	return h.reply(c, fmt.Sprintf("%s %s", word, locale.T(lang, "banned_words.banned")))
}

func (h *Handlers) flowRemoveBannedWord(c tele.Context, ev domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)
	word := strings.ToLower(strings.TrimSpace(c.Text()))

	removed, err := h.mod.RemoveWord(ctx, domain.WordCategory(ev.Payload), word)
	if err != nil {
		return err
	}
	if !removed {
		return h.reply(c, locale.T(lang, "banned_words.already_unbanned"))
	}
	return h.reply(c, fmt.Sprintf("%s %s", word, locale.T(lang, "banned_words.unbanned")))
}
