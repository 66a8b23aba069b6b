package flow

import (
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsbot/internal/domain"
)

func noop(tele.Context, domain.Event) error { return nil }

func TestRegistryRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(domain.HandlerSetName, noop))

	h, err := r.Resolve(domain.HandlerSetName)
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestRegistryRejectsUnknownID(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(domain.HandlerID("made_up"), noop))
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(domain.HandlerSetName, noop))
	assert.Error(t, r.Register(domain.HandlerSetName, noop))
}

func TestRegistryResolveUnregistered(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve(domain.HandlerBroadcast)
	assert.Error(t, err)
}
