package domain

// ContentKind enumerates the payload types a custom command can carry.
type ContentKind string

const (
	ContentText     ContentKind = "text"
	ContentPhoto    ContentKind = "photo"
	ContentAudio    ContentKind = "audio"
	ContentVoice    ContentKind = "voice"
	ContentSticker  ContentKind = "sticker"
	ContentDocument ContentKind = "document"
)

// Valid reports whether the kind can be stored and replayed.
func (k ContentKind) Valid() bool {
	switch k {
	case ContentText, ContentPhoto, ContentAudio, ContentVoice, ContentSticker, ContentDocument:
		return true
	}
	return false
}

// CommandContent is the stored payload replayed when a custom command runs.
type CommandContent struct {
	Kind    ContentKind `json:"kind"`
	Text    string      `json:"text,omitempty"`
	FileID  string      `json:"file_id,omitempty"`
	Caption string      `json:"caption,omitempty"`
}

// CustomCommand is an admin-defined command keyed by its lowercase name
// (without the leading slash).
type CustomCommand struct {
	Name    string
	Content CommandContent
}

// WordCategory selects a banned-word list.
type WordCategory string

const (
	// CategoryBanned matches whole normalized names.
	CategoryBanned WordCategory = "banned"
	// CategoryUltraBanned matches anywhere within a normalized name.
	CategoryUltraBanned WordCategory = "ultrabanned"
)

// Valid reports whether the category is a known word list.
func (c WordCategory) Valid() bool {
	return c == CategoryBanned || c == CategoryUltraBanned
}
