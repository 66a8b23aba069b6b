// Package repository persists user profiles, banned-word lists, and custom
// commands in Postgres through sqlx. JSON columns (permissions, pending
// event, command content) are marshalled here so the rest of the code only
// sees domain types.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")
