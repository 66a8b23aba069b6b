// Package commands defines the route descriptor the registry stores per
// slash command.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command couples a handler with how the command is exposed. AdminOnly
// routes get the admin gate in front of the handler; Hidden keeps the
// command out of the published command list.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
