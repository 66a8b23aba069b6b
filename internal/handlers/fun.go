package handlers

import (
	"bytes"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
)

const sourceURL = "https://github.com/Giu27/SupergiuToolsBot"

// RandomNumber rolls a number below 999.
func (h *Handlers) RandomNumber(c tele.Context) error {
	return h.reply(c, strconv.Itoa(rand.Intn(999)))
}

// About links back to the project.
func (h *Handlers) About(c tele.Context) error {
	ctx := h.ctx(c)
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.URL("Github", sourceURL)))
	return h.reply(c, locale.T(h.lang(ctx, c), "about"), markup)
}

// Qrcode asks for the text to encode.
func (h *Handlers) Qrcode(c tele.Context) error {
	ctx := h.ctx(c)
	if err := h.tracker.Register(ctx, c.Sender().ID, domain.Event{Next: domain.HandlerGenerateQR}); err != nil {
		return err
	}
	return h.reply(c, locale.T(h.lang(ctx, c), "qrcode.msg_to_send"))
}

func (h *Handlers) flowGenerateQR(c tele.Context, _ domain.Event) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	png, err := qrcode.Encode(c.Text(), qrcode.Medium, 256)
	if err == nil {
		err = c.Send(&tele.Photo{File: tele.FromReader(bytes.NewReader(png))})
	}
	if err != nil {
		ownerName, nameErr := h.profiles.ViewedName(ctx, h.profiles.OwnerID())
		if nameErr != nil {
			ownerName = strconv.FormatInt(h.profiles.OwnerID(), 10)
		}
		return h.reply(c, fmt.Sprintf("%s %s:\n%v", locale.T(lang, "qrcode.error"), ownerName, err))
	}
	return h.reply(c, locale.T(lang, "sent"))
}

// EventsToday replies with a historical event that happened on today's
// date.
func (h *Handlers) EventsToday(c tele.Context) error {
	ctx := h.ctx(c)
	lang := h.lang(ctx, c)

	text, err := h.history.EventOn(ctx, time.Now(), lang)
	if err != nil {
		return h.reply(c, locale.T(lang, "history.page404"))
	}
	return h.reply(c, text)
}
