package service

import (
	"context"
	"errors"
	"strings"

	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
	"toolsbot/internal/repository"
)

// CommandStore persists admin-defined commands.
type CommandStore interface {
	Get(ctx context.Context, name string) (*domain.CustomCommand, error)
	Names(ctx context.Context) ([]string, error)
	Save(ctx context.Context, cmd domain.CustomCommand) error
	Delete(ctx context.Context, name string) (bool, error)
}

var _ CommandStore = (*repository.CustomCommands)(nil)

// ErrUnknownCommand is returned when a custom command does not exist.
var ErrUnknownCommand = errors.New("unknown custom command")

// CustomCommands manages admin-defined replayable commands.
type CustomCommands struct {
	store CommandStore
}

// NewCustomCommands creates the custom commands service.
func NewCustomCommands(store CommandStore) *CustomCommands {
	return &CustomCommands{store: store}
}

// Normalize strips the leading slash and lowercases a command name.
func (s *CustomCommands) Normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}

// Lookup resolves a command by name, ErrUnknownCommand when absent.
func (s *CustomCommands) Lookup(ctx context.Context, name string) (*domain.CustomCommand, error) {
	cmd, err := s.store.Get(ctx, s.Normalize(name))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnknownCommand
	}
	return cmd, err
}

// Names lists all stored command names.
func (s *CustomCommands) Names(ctx context.Context) ([]string, error) {
	return s.store.Names(ctx)
}

// SaveFromMessage captures the content of msg under the given command name.
func (s *CustomCommands) SaveFromMessage(ctx context.Context, name string, msg *tele.Message) error {
	content, err := ContentFromMessage(msg)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, domain.CustomCommand{Name: s.Normalize(name), Content: content})
}

// Remove deletes a command, ErrUnknownCommand when it did not exist.
func (s *CustomCommands) Remove(ctx context.Context, name string) error {
	ok, err := s.store.Delete(ctx, s.Normalize(name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownCommand
	}
	return nil
}

// ContentFromMessage extracts the replayable payload of a message.
func ContentFromMessage(msg *tele.Message) (domain.CommandContent, error) {
	switch {
	case msg.Photo != nil:
		return domain.CommandContent{Kind: domain.ContentPhoto, FileID: msg.Photo.FileID, Caption: msg.Caption}, nil
	case msg.Audio != nil:
		return domain.CommandContent{Kind: domain.ContentAudio, FileID: msg.Audio.FileID, Caption: msg.Caption}, nil
	case msg.Voice != nil:
		return domain.CommandContent{Kind: domain.ContentVoice, FileID: msg.Voice.FileID, Caption: msg.Caption}, nil
	case msg.Sticker != nil:
		return domain.CommandContent{Kind: domain.ContentSticker, FileID: msg.Sticker.FileID}, nil
	case msg.Document != nil:
		return domain.CommandContent{Kind: domain.ContentDocument, FileID: msg.Document.FileID, Caption: msg.Caption}, nil
	case msg.Text != "":
		return domain.CommandContent{Kind: domain.ContentText, Text: msg.Text}, nil
	default:
		return domain.CommandContent{}, ErrUnsupported
	}
}

// Payload converts stored content back into a sendable Telegram payload.
func Payload(content domain.CommandContent) (interface{}, error) {
	switch content.Kind {
	case domain.ContentText:
		return content.Text, nil
	case domain.ContentPhoto:
		return &tele.Photo{File: tele.File{FileID: content.FileID}, Caption: content.Caption}, nil
	case domain.ContentAudio:
		return &tele.Audio{File: tele.File{FileID: content.FileID}, Caption: content.Caption}, nil
	case domain.ContentVoice:
		return &tele.Voice{File: tele.File{FileID: content.FileID}, Caption: content.Caption}, nil
	case domain.ContentSticker:
		return &tele.Sticker{File: tele.File{FileID: content.FileID}}, nil
	case domain.ContentDocument:
		return &tele.Document{File: tele.File{FileID: content.FileID}, Caption: content.Caption}, nil
	default:
		return nil, ErrUnsupported
	}
}
