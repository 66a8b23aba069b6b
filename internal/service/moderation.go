package service

import (
	"context"
	"strings"

	"toolsbot/internal/domain"
	"toolsbot/internal/moderation"
	"toolsbot/internal/repository"
)

// WordLists reads banned-word lists.
type WordLists interface {
	Words(ctx context.Context, category domain.WordCategory) ([]string, error)
	Save(ctx context.Context, category domain.WordCategory, words []string) error
}

// Moderation manages banned-word lists and screens candidate names.
type Moderation struct {
	words WordLists
}

// NewModeration creates the moderation service.
func NewModeration(words WordLists) *Moderation {
	return &Moderation{words: words}
}

// IsBanned reports whether a name matches the stored lists after
// normalization.
func (m *Moderation) IsBanned(ctx context.Context, name string) (bool, error) {
	banned, err := m.words.Words(ctx, domain.CategoryBanned)
	if err != nil {
		return false, err
	}
	ultra, err := m.words.Words(ctx, domain.CategoryUltraBanned)
	if err != nil {
		return false, err
	}
	return moderation.IsBanned(name, banned, ultra), nil
}

// AddWord stores a lowercase word in the category list. Returns false when
// the word was already present.
func (m *Moderation) AddWord(ctx context.Context, category domain.WordCategory, word string) (bool, error) {
	word = strings.ToLower(word)
	list, err := m.words.Words(ctx, category)
	if err != nil {
		return false, err
	}
	for _, w := range list {
		if w == word {
			return false, nil
		}
	}
	return true, m.words.Save(ctx, category, append(list, word))
}

// RemoveWord drops a word from the category list. Returns false when the
// word was not present.
func (m *Moderation) RemoveWord(ctx context.Context, category domain.WordCategory, word string) (bool, error) {
	word = strings.ToLower(word)
	list, err := m.words.Words(ctx, category)
	if err != nil {
		return false, err
	}
	out := list[:0]
	found := false
	for _, w := range list {
		if w == word {
			found = true
			continue
		}
		out = append(out, w)
	}
	if !found {
		return false, nil
	}
	return true, m.words.Save(ctx, category, out)
}

var _ WordLists = (*repository.BannedWords)(nil)
