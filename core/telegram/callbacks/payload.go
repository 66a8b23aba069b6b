// Package callbacks decodes inline-button callback data.
package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits Telebot's \f<unique>|<payload> encoding into
// its unique key and payload. The payload may be empty.
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimPrefix(cb.Data, "\\f")
	parts := strings.SplitN(raw, "|", 2)
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return strings.TrimSpace(parts[0]), payload
}

// CallbackPayload returns the payload carried by the current callback.
// It always parses cb.Data because cb.Unique is empty under the generic
// OnCallback endpoint.
func CallbackPayload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb)
	return payload
}

// PayloadParts splits the callback payload on sep. An empty payload is
// reported as a syntax error so callers need only one check.
func PayloadParts(c tele.Context, sep string) ([]string, error) {
	p := CallbackPayload(c)
	if p == "" {
		return nil, strconv.ErrSyntax
	}
	return strings.Split(p, sep), nil
}
