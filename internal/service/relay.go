package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"toolsbot/core/logger"
	"toolsbot/internal/domain"
	"toolsbot/internal/locale"
)

// Relay delivery failures surfaced to the sender.
var (
	// ErrBlocked means the recipient blocked the bot.
	ErrBlocked = errors.New("recipient blocked the bot")
	// ErrUnsupported means the message carries a content type that cannot
	// be relayed.
	ErrUnsupported = errors.New("unsupported content type")
)

// Transport sends messages on behalf of the bot.
type Transport interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Scope selects the header prepended to a relayed message.
type Scope int

const (
	// ScopeDirect relays to a single chosen recipient.
	ScopeDirect Scope = iota
	// ScopeBroadcast announces to every user.
	ScopeBroadcast
	// ScopeAdmin announces to admins only.
	ScopeAdmin
)

// Relay forwards user messages to other chats: direct sends, admin mail, and
// broadcasts.
type Relay struct {
	transport Transport
	store     UserStore
	profiles  *Profiles
}

// NewRelay creates the relay service.
func NewRelay(transport Transport, store UserStore, profiles *Profiles) *Relay {
	return &Relay{transport: transport, store: store, profiles: profiles}
}

func isBlocked(err error) bool {
	var apiErr *tele.Error
	return errors.As(err, &apiErr) && apiErr.Code == 403
}

func (r *Relay) header(scope Scope, recipientLang string, sender *domain.User, senderName string) string {
	switch scope {
	case ScopeBroadcast:
		return fmt.Sprintf("%s %s:", locale.T(recipientLang, "broadcast.from"), senderName)
	case ScopeAdmin:
		return fmt.Sprintf("%s %s:", locale.T(recipientLang, "broadcast.admin_from"), senderName)
	default:
		return fmt.Sprintf("%s %s(%d):", locale.T(recipientLang, "send_to.from"), senderName, sender.UserID)
	}
}

// Forward relays msg to the chat of target, prepending a localized header in
// the recipient's language.
func (r *Relay) Forward(ctx context.Context, sender *domain.User, target *domain.User, scope Scope, msg *tele.Message) error {
	senderName, err := r.profiles.ViewedName(ctx, sender.UserID)
	if err != nil {
		senderName = sender.ViewedName()
	}
	lang := target.Language
	if lang == "" {
		lang = locale.Default
	}

	payload, err := relayPayload(msg)
	if err != nil {
		return err
	}

	to := tele.ChatID(target.ChatID)
	if _, err := r.transport.Send(to, r.header(scope, lang, sender, senderName)); err != nil {
		if isBlocked(err) {
			return ErrBlocked
		}
		return err
	}
	if _, err := r.transport.Send(to, payload); err != nil {
		if isBlocked(err) {
			return ErrBlocked
		}
		return err
	}
	return nil
}

func relayPayload(msg *tele.Message) (interface{}, error) {
	switch {
	case msg.Text != "":
		return msg.Text, nil
	case msg.Photo != nil:
		return &tele.Photo{File: tele.File{FileID: msg.Photo.FileID}, Caption: msg.Caption}, nil
	case msg.Audio != nil:
		return &tele.Audio{File: tele.File{FileID: msg.Audio.FileID}, Caption: msg.Caption}, nil
	case msg.Voice != nil:
		return &tele.Voice{File: tele.File{FileID: msg.Voice.FileID}, Caption: msg.Caption}, nil
	case msg.Sticker != nil:
		return &tele.Sticker{File: tele.File{FileID: msg.Sticker.FileID}}, nil
	case msg.Document != nil:
		return &tele.Document{File: tele.File{FileID: msg.Document.FileID}, Caption: msg.Caption}, nil
	default:
		return nil, ErrUnsupported
	}
}

// Supported reports whether msg carries a relayable content type.
func Supported(msg *tele.Message) bool {
	_, err := relayPayload(msg)
	return err == nil
}

// Broadcast relays msg to every stored user, or to admins only. Per-user
// failures are logged and skipped; a partial broadcast is accepted.
func (r *Relay) Broadcast(ctx context.Context, sender *domain.User, msg *tele.Message, adminOnly bool) error {
	users, err := r.store.List(ctx)
	if err != nil {
		return err
	}
	scope := ScopeBroadcast
	if adminOnly {
		scope = ScopeAdmin
	}
	for _, target := range users {
		if target.ChatID == 0 {
			continue
		}
		if adminOnly && !target.IsAdmin(r.profiles.OwnerID()) {
			continue
		}
		if err := r.Forward(ctx, sender, target, scope, msg); err != nil {
			logger.Warn(ctx, "service.relay", "broadcast.skip",
				slog.Int64("target_id", target.UserID),
				slog.String("err", err.Error()),
			)
		}
	}
	return nil
}

// Announce notifies every opted-in user that the bot went online or
// offline. status is a locale key suffix ("online" or "offline") so the
// whole sentence comes out in the recipient's language.
func (r *Relay) Announce(ctx context.Context, status string) {
	users, err := r.store.List(ctx)
	if err != nil {
		logger.Warn(ctx, "service.relay", "announce.list_failed",
			slog.String("err", err.Error()),
		)
		return
	}
	for _, u := range users {
		if u.ChatID == 0 || !u.Notifications {
			continue
		}
		lang := u.Language
		if lang == "" {
			lang = locale.Default
		}
		text := fmt.Sprintf("%s %s!", locale.T(lang, "notifications.bot"), locale.T(lang, "notifications."+status))
		if _, err := r.transport.Send(tele.ChatID(u.ChatID), text); err != nil {
			logger.Debug(ctx, "service.relay", "announce.skip",
				slog.Int64("target_id", u.UserID),
				slog.String("err", err.Error()),
			)
		}
	}
}
