package ingest

import (
	"testing"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
)

func TestNormalizeSegment(t *testing.T) {
	cases := []struct {
		name       string
		seg        Segment
		wantOK     bool
		wantOrigin transcript.Origin
		wantText   string
	}{
		{
			name:       "final player segment accepted",
			seg:        Segment{ID: "s1", Text: "hello", Final: true, Participant: "player-1"},
			wantOK:     true,
			wantOrigin: transcript.OriginLocal,
			wantText:   "hello",
		},
		{
			name:       "agent identity classified remote",
			seg:        Segment{ID: "s2", Text: "Round 1!", Final: true, Participant: "agent-host"},
			wantOK:     true,
			wantOrigin: transcript.OriginRemote,
			wantText:   "Round 1!",
		},
		{
			name:   "interim segment ignored",
			seg:    Segment{ID: "s3", Text: "hel", Final: false, Participant: "player-1"},
			wantOK: false,
		},
		{
			name:   "segment with neither id nor text ignored",
			seg:    Segment{Final: true, Participant: "player-1"},
			wantOK: false,
		},
		{
			name:   "blank text ignored",
			seg:    Segment{ID: "s4", Text: "   ", Final: true, Participant: "player-1"},
			wantOK: false,
		},
		{
			name:       "text trimmed",
			seg:        Segment{ID: "s5", Text: "  hi  ", Final: true, Participant: "player-1"},
			wantOK:     true,
			wantOrigin: transcript.OriginLocal,
			wantText:   "hi",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := NormalizeSegment(tc.seg, "Player")
			if ok != tc.wantOK {
				t.Fatalf("ok: want %v, got %v", tc.wantOK, ok)
			}
			if !ok {
				return
			}
			if e.Origin != tc.wantOrigin {
				t.Fatalf("origin: want %q, got %q", tc.wantOrigin, e.Origin)
			}
			if e.Text != tc.wantText {
				t.Fatalf("text: want %q, got %q", tc.wantText, e.Text)
			}
			if e.ID == "" || e.Timestamp == 0 {
				t.Fatalf("entry missing id or timestamp: %+v", e)
			}
		})
	}
}

func TestNormalizeChat(t *testing.T) {
	if _, ok := NormalizeChat("  ", "player-1", "Player"); ok {
		t.Fatal("blank chat should be ignored")
	}
	e, ok := NormalizeChat("nice one", "player-1", "Player")
	if !ok || e.Origin != transcript.OriginLocal || e.Text != "nice one" {
		t.Fatalf("unexpected chat entry: %+v ok=%v", e, ok)
	}
}

func TestParseData(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantOK     bool
		wantText   string
		wantOrigin transcript.Origin
	}{
		{
			name:       "agent transcript payload",
			raw:        `{"type":"transcript","role":"agent","text":"Round 1: go!"}`,
			wantOK:     true,
			wantText:   "Round 1: go!",
			wantOrigin: transcript.OriginRemote,
		},
		{
			name:       "message field accepted",
			raw:        `{"message":"hi everyone"}`,
			wantOK:     true,
			wantText:   "hi everyone",
			wantOrigin: transcript.OriginLocal,
		},
		{
			name:   "no recognizable message field",
			raw:    `{"type":"metrics","value":42}`,
			wantOK: false,
		},
		{
			name:   "malformed json silently dropped",
			raw:    `{"text": "unterminated`,
			wantOK: false,
		},
		{
			name:   "non-json binary silently dropped",
			raw:    "\x00\x01\x02",
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := ParseData([]byte(tc.raw))
			if ok != tc.wantOK {
				t.Fatalf("ok: want %v, got %v", tc.wantOK, ok)
			}
			if !ok {
				return
			}
			if e.Text != tc.wantText || e.Origin != tc.wantOrigin {
				t.Fatalf("unexpected entry: %+v", e)
			}
		})
	}
}
