package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/hub"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/session"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/types"
)

// Handler upgrades a client onto a room's event channel. The connection
// carries client → server signals (transcription, chat, data, restart,
// end) and server → client frames (snapshot, restart, agent, error).
func Handler(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		displayName := r.URL.Query().Get("name")

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Event, 8)
		clientID := randID(6)

		send := func(msg session.Msg) bool {
			select {
			case s.Inbox() <- msg:
				return true
			case <-s.Done():
				return false
			}
		}

		if !send(session.Join{ClientID: clientID, DisplayName: displayName, Outbox: out}) {
			return
		}
		defer send(session.Leave{ClientID: clientID})

		// Writer goroutine: runs until the session closes the outbox.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				msg, ok := toServerMessage(ev)
				if !ok {
					continue
				}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"bad json"}`))
				continue
			}

			msg, ok := toSessionMsg(cm, clientID, displayName)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"unknown type"}`))
				continue
			}

			if !send(msg) {
				return
			}
		}
	}
}

func toServerMessage(ev session.Event) (types.ServerMessage, bool) {
	switch e := ev.(type) {
	case session.SnapshotEvent:
		status := e.Status
		return types.ServerMessage{
			Type:       "snapshot",
			Version:    e.Version,
			Entries:    e.Entries,
			Status:     &status,
			LastOrigin: e.LastOrigin,
		}, true
	case session.RestartEvent:
		return types.ServerMessage{Type: "restart"}, true
	case session.AgentEvent:
		return types.ServerMessage{Type: "agent", Data: e.Raw}, true
	default:
		return types.ServerMessage{}, false
	}
}

func toSessionMsg(m types.ClientMessage, clientID, displayName string) (session.Msg, bool) {
	switch m.Type {
	case "transcription":
		return session.Transcription{Segments: m.Segments, DisplayName: displayName}, true
	case "chat":
		return session.Chat{Participant: clientID, DisplayName: displayName, Text: m.Text}, true
	case "data":
		return session.Data{Raw: m.Data}, true
	case "restart":
		return session.Restart{}, true
	case "end":
		return session.End{}, true
	default:
		return nil, false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
