// Package store persists player profiles and finished-session transcripts.
// A postgres implementation backs production; an in-memory one backs tests
// and DSN-less local runs.
package store

import (
	"context"
	"errors"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

// PlayerNameKey is the profile key the welcome flow writes the chosen
// display name under.
const PlayerNameKey = "improv_player_name"

var ErrNotFound = errors.New("store: not found")

// ProfileStore is a small key-value store for client profile fields.
type ProfileStore interface {
	Put(ctx context.Context, key, value string) error

	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) (string, error)
}

// SessionRecord is one finished session's transcript.
type SessionRecord struct {
	Code    string
	Entries []transcript.Entry
}

// HistoryStore archives finished sessions.
type HistoryStore interface {
	SaveSession(ctx context.Context, rec SessionRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)
}

// Store bundles both concerns; each backend implements the pair.
type Store interface {
	ProfileStore
	HistoryStore
}
