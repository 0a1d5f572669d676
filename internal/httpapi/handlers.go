package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/config"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/hub"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/session"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/store"
)

// DefaultDisplayName is used when the welcome form is submitted blank.
const DefaultDisplayName = "Player"

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// CreateRoom allocates a fresh room code and spins up its session.
func CreateRoom(h *hub.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *session.Session, 1)
			h.Inbox() <- hub.GetSession{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			logger.Debug("room code collision, regenerating", zap.String("code", c))
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

type joinRequest struct {
	DisplayName string `json:"display_name"`
}

type joinResponse struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// JoinRoom is the welcome flow: it normalizes the display name, persists
// it under the improv_player_name profile key, and signals session start.
// The start signal is latched inside the session, so hammering join never
// double-opens the show.
func JoinRoom(h *hub.Hub, profiles store.ProfileStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(req.DisplayName)
		if name == "" {
			name = DefaultDisplayName
		}

		if err := profiles.Put(r.Context(), store.PlayerNameKey, name); err != nil {
			// The profile is a convenience; joining proceeds without it.
			logger.Warn("failed to persist player name", zap.Error(err))
		}

		s.Inbox() <- session.Start{DisplayName: name}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(joinResponse{Code: code, DisplayName: name})
	}
}

type configResponse struct {
	StartButtonText           string `json:"startButtonText"`
	IsPreConnectBufferEnabled bool   `json:"isPreConnectBufferEnabled"`
	SupportsChatInput         bool   `json:"supportsChatInput"`
	SupportsVideoInput        bool   `json:"supportsVideoInput"`
	TotalRounds               int    `json:"totalRounds"`
}

// AppConfig serves the UI affordance gates.
func AppConfig(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(configResponse{
			StartButtonText:           cfg.StartButtonText,
			IsPreConnectBufferEnabled: cfg.PreConnectBuffer,
			SupportsChatInput:         cfg.SupportsChatInput,
			SupportsVideoInput:        cfg.SupportsVideoInput,
			TotalRounds:               cfg.TotalRounds,
		})
	}
}

// History lists recently archived sessions.
func History(history store.HistoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := history.Recent(r.Context(), 20)
		if err != nil {
			http.Error(w, "failed to list sessions", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recs)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
