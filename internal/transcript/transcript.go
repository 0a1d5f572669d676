// Package transcript holds the per-session chat log built from speech
// transcription segments, chat messages, and data-channel payloads.
package transcript

import (
	"time"

	"github.com/google/uuid"
)

// Origin says which side of the conversation produced an entry.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Entry is one line of the session transcript. Immutable once created.
type Entry struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"` // unix millis at acceptance
	Origin      Origin `json:"origin"`
	Text        string `json:"text"`
	DisplayName string `json:"display_name,omitempty"`
}

// New builds an Entry stamped with a fresh id and the current time.
func New(origin Origin, text, displayName string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UnixMilli(),
		Origin:      origin,
		Text:        text,
		DisplayName: displayName,
	}
}

// Log is an append-only, insertion-ordered transcript. It remembers the
// single most recently accepted segment (id, text) pair and drops an
// incoming segment that matches both fields. The window is exactly one
// slot: a segment repeating an older entry is accepted again.
//
// Log is not safe for concurrent use; the session actor owns it.
type Log struct {
	entries []Entry

	lastSegID   string
	lastSegText string
	hasLast     bool
}

func NewLog() *Log {
	return &Log{}
}

// Append adds an entry that did not come from a transcription segment
// (chat, data payload, host line). No duplicate window applies.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// AppendSegment adds an entry produced from the final transcription
// segment identified by segID. It reports false when the (segID, text)
// pair matches the previously accepted segment, in which case the log is
// unchanged.
func (l *Log) AppendSegment(segID string, e Entry) bool {
	if l.hasLast && l.lastSegID == segID && l.lastSegText == e.Text {
		return false
	}
	l.lastSegID = segID
	l.lastSegText = e.Text
	l.hasLast = true
	l.entries = append(l.entries, e)
	return true
}

// Clear empties the log and resets the duplicate window. Used on session
// end and on restart.
func (l *Log) Clear() {
	l.entries = nil
	l.lastSegID = ""
	l.lastSegText = ""
	l.hasLast = false
}

func (l *Log) Len() int { return len(l.entries) }

// Last returns the most recent entry, if any.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Entries returns a copy of the log in insertion order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
