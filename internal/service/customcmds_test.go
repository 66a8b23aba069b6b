package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
	"toolsbot/internal/repository"
)

type fakeCommands struct {
	cmds map[string]domain.CustomCommand
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{cmds: make(map[string]domain.CustomCommand)}
}

func (f *fakeCommands) Get(_ context.Context, name string) (*domain.CustomCommand, error) {
	cmd, ok := f.cmds[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cmd, nil
}

func (f *fakeCommands) Names(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(f.cmds))
	for name := range f.cmds {
		out = append(out, name)
	}
	return out, nil
}

func (f *fakeCommands) Save(_ context.Context, cmd domain.CustomCommand) error {
	f.cmds[cmd.Name] = cmd
	return nil
}

func (f *fakeCommands) Delete(_ context.Context, name string) (bool, error) {
	_, ok := f.cmds[name]
	delete(f.cmds, name)
	return ok, nil
}

func TestNormalize(t *testing.T) {
	s := NewCustomCommands(newFakeCommands())
	assert.Equal(t, "meow", s.Normalize("/Meow"))
	assert.Equal(t, "meow", s.Normalize("  meow  "))
	assert.Equal(t, "meow", s.Normalize("/meow"))
}

func TestLookupUnknown(t *testing.T) {
	s := NewCustomCommands(newFakeCommands())
	_, err := s.Lookup(context.Background(), "/nope")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestSaveFromMessageAndLookup(t *testing.T) {
	store := newFakeCommands()
	s := NewCustomCommands(store)
	ctx := context.Background()

	require.NoError(t, s.SaveFromMessage(ctx, "/Meow", &tele.Message{Text: "meow meow"}))

	cmd, err := s.Lookup(ctx, "meow")
	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, cmd.Content.Kind)
	assert.Equal(t, "meow meow", cmd.Content.Text)
}

func TestSaveFromMessageUnsupported(t *testing.T) {
	s := NewCustomCommands(newFakeCommands())
	err := s.SaveFromMessage(context.Background(), "x", &tele.Message{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRemoveUnknown(t *testing.T) {
	store := newFakeCommands()
	s := NewCustomCommands(store)
	ctx := context.Background()

	assert.ErrorIs(t, s.Remove(ctx, "nope"), ErrUnknownCommand)

	require.NoError(t, s.SaveFromMessage(ctx, "meow", &tele.Message{Text: "hi"}))
	require.NoError(t, s.Remove(ctx, "/MEOW"))
}

func TestContentFromMessageKinds(t *testing.T) {
	content, err := ContentFromMessage(&tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "p1"}}, Caption: "cap"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContentPhoto, content.Kind)
	assert.Equal(t, "p1", content.FileID)
	assert.Equal(t, "cap", content.Caption)

	content, err = ContentFromMessage(&tele.Message{Sticker: &tele.Sticker{File: tele.File{FileID: "s1"}}})
	require.NoError(t, err)
	assert.Equal(t, domain.ContentSticker, content.Kind)
}

func TestPayloadRoundTrip(t *testing.T) {
	payload, err := Payload(domain.CommandContent{Kind: domain.ContentText, Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", payload)

	payload, err = Payload(domain.CommandContent{Kind: domain.ContentVoice, FileID: "v1"})
	require.NoError(t, err)
	voice, ok := payload.(*tele.Voice)
	require.True(t, ok)
	assert.Equal(t, "v1", voice.FileID)

	_, err = Payload(domain.CommandContent{})
	assert.Error(t, err)
}
