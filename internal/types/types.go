package types

import (
	"encoding/json"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/ingest"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/phase"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

type ClientMessage struct {
	Type     string           `json:"type"` // "transcription" | "chat" | "data" | "restart" | "end"
	Segments []ingest.Segment `json:"segments,omitempty"`
	Text     string           `json:"text,omitempty"`
	Data     json.RawMessage  `json:"data,omitempty"`
}

type ServerMessage struct {
	Type       string             `json:"type"` // "snapshot" | "restart" | "agent" | "error"
	Version    int                `json:"version,omitempty"`
	Entries    []transcript.Entry `json:"entries,omitempty"`
	Status     *phase.Status      `json:"status,omitempty"`
	LastOrigin transcript.Origin  `json:"last_origin,omitempty"`
	Data       json.RawMessage    `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
}
