// Package chatlog appends per-user conversation transcripts: one file per
// user, one line per inbound message or bot reply. Disabled when the
// directory is empty.
package chatlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Writer appends transcript lines under a directory.
type Writer struct {
	dir string
	mu  sync.Mutex
}

// New creates a Writer; a nil Writer (empty dir) disables logging.
func New(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chatlog: create dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Enabled reports whether transcripts are written.
func (w *Writer) Enabled() bool { return w != nil }

func (w *Writer) append(userID int64, line string) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	path := filepath.Join(w.dir, fmt.Sprintf("%d.log", userID))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, line)
	return err
}

// User records an inbound message. info is the username or full name.
func (w *Writer) User(userID int64, info, content string) error {
	return w.append(userID, fmt.Sprintf("%d, %s: %s", userID, info, content))
}

// Bot records an outbound reply to the user's transcript.
func (w *Writer) Bot(userID int64, answer string) error {
	return w.append(userID, "Bot: "+answer)
}
