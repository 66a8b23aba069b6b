package flow

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"toolsbot/internal/domain"
)

// Handler continues a multi-step flow with the message that arrived
// after the event was registered.
type Handler func(c tele.Context, ev domain.Event) error

// Registry maps handler identifiers to continuation handlers. The
// identifier set is closed, so registering an unknown or duplicate id
// is a wiring mistake and fails loudly.
type Registry struct {
	handlers map[domain.HandlerID]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[domain.HandlerID]Handler)}
}

func (r *Registry) Register(id domain.HandlerID, h Handler) error {
	if !knownID(id) {
		return fmt.Errorf("flow: unknown handler id %q", id)
	}
	if h == nil {
		return fmt.Errorf("flow: nil handler for %q", id)
	}
	if _, dup := r.handlers[id]; dup {
		return fmt.Errorf("flow: handler %q registered twice", id)
	}
	r.handlers[id] = h
	return nil
}

// MustRegister is Register for static wiring done at startup.
func (r *Registry) MustRegister(id domain.HandlerID, h Handler) {
	if err := r.Register(id, h); err != nil {
		panic(err)
	}
}

// Resolve returns the handler for id, or an error for ids nothing was
// registered under.
func (r *Registry) Resolve(id domain.HandlerID) (Handler, error) {
	h, ok := r.handlers[id]
	if !ok {
		return nil, fmt.Errorf("flow: no handler registered for %q", id)
	}
	return h, nil
}

func knownID(id domain.HandlerID) bool {
	for _, known := range domain.KnownHandlers() {
		if id == known {
			return true
		}
	}
	return false
}
