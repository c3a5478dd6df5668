package operation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Mode selects how a document reaches the server.
type Mode uint8

const (
	// ModeLiteral always sends the document text.
	ModeLiteral Mode = iota
	// ModePersistedOnly sends only the identifier; the server must already
	// know the document.
	ModePersistedOnly
	// ModeAutomaticallyPersisted sends the identifier first and falls back to
	// the text when the server does not know it.
	ModeAutomaticallyPersisted
)

func (m Mode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModePersistedOnly:
		return "persisted"
	case ModeAutomaticallyPersisted:
		return "apq"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "literal":
		return ModeLiteral, nil
	case "persisted":
		return ModePersistedOnly, nil
	case "apq":
		return ModeAutomaticallyPersisted, nil
	}
	return 0, fmt.Errorf("unknown document mode %q", s)
}

// Document is how an operation's text is represented on the wire.
type Document struct {
	Mode                Mode
	OperationIdentifier string
	Definition          string
}

// Literal sends text with every request.
func Literal(text string) Document {
	return Document{Mode: ModeLiteral, Definition: text}
}

// Persisted refers to a document registered with the server ahead of time.
func Persisted(id string) Document {
	return Document{Mode: ModePersistedOnly, OperationIdentifier: id}
}

// AutomaticallyPersisted sends id and registers text on a miss. An empty id
// is derived from text.
func AutomaticallyPersisted(id, text string) Document {
	if id == "" {
		id = Identifier(text)
	}
	return Document{Mode: ModeAutomaticallyPersisted, OperationIdentifier: id, Definition: text}
}

// Identifier returns the hex sha256 of text, the id automatic persisted
// queries are keyed by.
func Identifier(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// HasText reports whether the document text is available to send.
func (d Document) HasText() bool { return d.Definition != "" }
