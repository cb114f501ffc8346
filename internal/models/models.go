package models

import (
	"encoding/json"
	"time"
)

// SectionKeys is the fixed set of report sections, in render order.
// A document always carries exactly these keys.
var SectionKeys = []string{
	"abstract",
	"introduction",
	"methodology",
	"results",
	"conclusion",
	"references",
}

var SectionTitles = map[string]string{
	"abstract":     "Abstract",
	"introduction": "Introduction",
	"methodology":  "Methodology",
	"results":      "Results",
	"conclusion":   "Conclusion",
	"references":   "References",
}

func IsSection(key string) bool {
	_, ok := SectionTitles[key]
	return ok
}

// CursorPosition is an advisory editing position within a section.
type CursorPosition struct {
	Section string `json:"section"`
	Offset  int    `json:"offset"`
}

// Document is the persisted report state for one room.
type Document struct {
	Sections   map[string]string         `json:"sections"`
	Cursors    map[string]CursorPosition `json:"cursors"`
	CreatedAt  int64                     `json:"created_at"`
	LastActive int64                     `json:"last_active"`
}

// NewDocument returns an empty document with all six sections present.
func NewDocument() *Document {
	now := time.Now().Unix()
	doc := &Document{
		Sections:   make(map[string]string, len(SectionKeys)),
		Cursors:    make(map[string]CursorPosition),
		CreatedAt:  now,
		LastActive: now,
	}
	for _, key := range SectionKeys {
		doc.Sections[key] = ""
	}
	return doc
}

// Normalize restores the fixed section set after a load: missing keys are
// added empty, unknown keys are dropped, nil maps are allocated.
func (d *Document) Normalize() {
	if d.Sections == nil {
		d.Sections = make(map[string]string, len(SectionKeys))
	}
	for key := range d.Sections {
		if !IsSection(key) {
			delete(d.Sections, key)
		}
	}
	for _, key := range SectionKeys {
		if _, ok := d.Sections[key]; !ok {
			d.Sections[key] = ""
		}
	}
	if d.Cursors == nil {
		d.Cursors = make(map[string]CursorPosition)
	}
}

/*** Synchronization protocol ***/

const (
	MsgInit       = "init"
	MsgError      = "error"
	MsgUserJoined = "user_joined"
	MsgUserLeft   = "user_left"
	MsgEdit       = "edit"
	MsgCursor     = "cursor"
)

// Message is the flat JSON frame exchanged over a room connection. The
// handshake is a Message with no type, only a username. Delta and Position
// are opaque to the server and relayed verbatim; Content is a pointer so an
// edit without content (delta-only) is distinguishable from an empty string.
type Message struct {
	Type     string          `json:"type,omitempty"`
	Username string          `json:"username,omitempty"`
	Users    []string        `json:"users,omitempty"`
	Text     string          `json:"message,omitempty"`
	Document *Document       `json:"document,omitempty"`
	Section  string          `json:"section,omitempty"`
	Delta    json.RawMessage `json:"delta,omitempty"`
	Content  *string         `json:"content,omitempty"`
	Position json.RawMessage `json:"position,omitempty"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

type SummaryResponse struct {
	Summary []string `json:"summary"`
}
