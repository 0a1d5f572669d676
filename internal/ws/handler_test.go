package ws

import (
	"testing"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/session"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/transcript"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/types"
)

func TestToSessionMsg(t *testing.T) {
	cases := []struct {
		in     types.ClientMessage
		wantOK bool
	}{
		{types.ClientMessage{Type: "transcription"}, true},
		{types.ClientMessage{Type: "chat", Text: "hi"}, true},
		{types.ClientMessage{Type: "data", Data: []byte(`{}`)}, true},
		{types.ClientMessage{Type: "restart"}, true},
		{types.ClientMessage{Type: "end"}, true},
		{types.ClientMessage{Type: "metrics"}, false},
		{types.ClientMessage{}, false},
	}
	for _, tc := range cases {
		if _, ok := toSessionMsg(tc.in, "c1", "Ana"); ok != tc.wantOK {
			t.Fatalf("type %q: want ok=%v, got %v", tc.in.Type, tc.wantOK, ok)
		}
	}
}

func TestToSessionMsg_ChatCarriesIdentity(t *testing.T) {
	msg, ok := toSessionMsg(types.ClientMessage{Type: "chat", Text: "hi"}, "c1", "Ana")
	if !ok {
		t.Fatal("chat should map")
	}
	chat, isChat := msg.(session.Chat)
	if !isChat || chat.Participant != "c1" || chat.DisplayName != "Ana" || chat.Text != "hi" {
		t.Fatalf("unexpected chat mapping: %+v", msg)
	}
}

func TestToServerMessage_Snapshot(t *testing.T) {
	ev := session.SnapshotEvent{
		Version:    3,
		Entries:    []transcript.Entry{{ID: "e1", Text: "hi", Origin: transcript.OriginLocal}},
		LastOrigin: transcript.OriginLocal,
	}
	msg, ok := toServerMessage(ev)
	if !ok || msg.Type != "snapshot" || msg.Version != 3 || len(msg.Entries) != 1 {
		t.Fatalf("unexpected snapshot mapping: %+v ok=%v", msg, ok)
	}
	if msg.Status == nil {
		t.Fatal("snapshot must carry a status")
	}
}

func TestToServerMessage_Restart(t *testing.T) {
	msg, ok := toServerMessage(session.RestartEvent{})
	if !ok || msg.Type != "restart" {
		t.Fatalf("unexpected restart mapping: %+v ok=%v", msg, ok)
	}
}

func TestRandID(t *testing.T) {
	a, b := randID(6), randID(6)
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("want 6-char ids, got %q %q", a, b)
	}
}
