package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
)

func TestAddWordLowercasesAndDeduplicates(t *testing.T) {
	words := newFakeWords()
	m := NewModeration(words)
	ctx := context.Background()

	added, err := m.AddWord(ctx, domain.CategoryBanned, "Idiot")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"idiot"}, words.lists[domain.CategoryBanned])

	added, err = m.AddWord(ctx, domain.CategoryBanned, "IDIOT")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"idiot"}, words.lists[domain.CategoryBanned])
}

func TestRemoveWordAbsent(t *testing.T) {
	words := newFakeWords()
	words.lists[domain.CategoryBanned] = []string{"idiot"}
	m := NewModeration(words)
	ctx := context.Background()

	removed, err := m.RemoveWord(ctx, domain.CategoryBanned, "saint")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = m.RemoveWord(ctx, domain.CategoryBanned, "Idiot")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, words.lists[domain.CategoryBanned])
}

func TestIsBannedUsesBothCategories(t *testing.T) {
	words := newFakeWords()
	words.lists[domain.CategoryBanned] = []string{"idiot"}
	words.lists[domain.CategoryUltraBanned] = []string{"bad"}
	m := NewModeration(words)
	ctx := context.Background()

	banned, err := m.IsBanned(ctx, "idiot")
	require.NoError(t, err)
	assert.True(t, banned)

	banned, err = m.IsBanned(ctx, "xxbadxx")
	require.NoError(t, err)
	assert.True(t, banned)

	banned, err = m.IsBanned(ctx, "harmless")
	require.NoError(t, err)
	assert.False(t, banned)
}
