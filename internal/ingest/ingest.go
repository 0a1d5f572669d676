// Package ingest normalizes the three inbound signal kinds a session
// receives over the wire — transcription segments, chat messages, and raw
// data-channel payloads — into transcript entries.
package ingest

import (
	"encoding/json"
	"strings"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

// AgentPrefix marks participant identities that belong to the automated
// host rather than a human player.
const AgentPrefix = "agent-"

// Segment is one unit of streamed speech-to-text output.
type Segment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Final       bool   `json:"final"`
	Participant string `json:"participant"`
}

// OriginFor classifies a participant identity.
func OriginFor(participant string) transcript.Origin {
	if strings.HasPrefix(participant, AgentPrefix) {
		return transcript.OriginRemote
	}
	return transcript.OriginLocal
}

// NormalizeSegment turns a segment into a transcript entry. It reports
// false for segments that must be ignored: interim (non-final) segments,
// segments carrying neither id nor text, and segments whose text is blank.
func NormalizeSegment(seg Segment, displayName string) (transcript.Entry, bool) {
	if seg.ID == "" && seg.Text == "" {
		return transcript.Entry{}, false
	}
	if !seg.Final {
		return transcript.Entry{}, false
	}
	text := strings.TrimSpace(seg.Text)
	if text == "" {
		return transcript.Entry{}, false
	}
	return transcript.New(OriginFor(seg.Participant), text, displayName), true
}

// NormalizeChat turns a chat-message text into a transcript entry,
// reporting false for blank input.
func NormalizeChat(text, participant, displayName string) (transcript.Entry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return transcript.Entry{}, false
	}
	return transcript.New(OriginFor(participant), text, displayName), true
}

type dataPayload struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Text    string `json:"text"`
	Message string `json:"message"`
	Name    string `json:"name"`
}

// ParseData decodes a raw data-channel payload. Payloads are accepted only
// when the parsed JSON carries a recognizable message field ("text" or
// "message"). Anything malformed is dropped without error: the worst case
// is a missing transcript line, never a failed session.
func ParseData(raw []byte) (transcript.Entry, bool) {
	var p dataPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return transcript.Entry{}, false
	}
	text := strings.TrimSpace(p.Text)
	if text == "" {
		text = strings.TrimSpace(p.Message)
	}
	if text == "" {
		return transcript.Entry{}, false
	}
	origin := transcript.OriginLocal
	if p.Role == "agent" || strings.HasPrefix(p.Name, AgentPrefix) {
		origin = transcript.OriginRemote
	}
	return transcript.New(origin, text, p.Name), true
}
