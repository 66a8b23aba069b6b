package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizationsSubstitutesAndStrips(t *testing.T) {
	norms := Normalizations("4 B C 1")

	assert.Len(t, norms, 2)
	assert.Contains(t, norms, "rbci")
	assert.Contains(t, norms, "abci")
}

func TestNormalizationsLookalikes(t *testing.T) {
	norms := Normalizations("тE5т")
	assert.Contains(t, norms, "test")
}

func TestIsBannedWholeNameOnly(t *testing.T) {
	banned := []string{"idiot"}

	assert.True(t, IsBanned("idiot", banned, nil))
	assert.True(t, IsBanned("1d10t", banned, nil))
	assert.True(t, IsBanned("I D I O T", banned, nil))
	assert.False(t, IsBanned("idiots", banned, nil), "whole-name list must not match substrings")
	assert.False(t, IsBanned("friend", banned, nil))
}

func TestIsBannedReversedName(t *testing.T) {
	banned := []string{"idiot"}
	assert.True(t, IsBanned("toidi", banned, nil))
}

func TestIsBannedUltraSubstring(t *testing.T) {
	ultra := []string{"bad"}

	assert.True(t, IsBanned("bad", nil, ultra))
	assert.True(t, IsBanned("xxbadxx", nil, ultra))
	assert.True(t, IsBanned("xxdabxx", nil, ultra), "reversed ultra words match too")
	assert.False(t, IsBanned("bland", nil, ultra))
}

func TestIsBannedEmptyLists(t *testing.T) {
	assert.False(t, IsBanned("anything", nil, nil))
}
