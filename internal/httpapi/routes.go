package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/config"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/hub"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/store"
	"github.com/Piyush-Piyush/ten-days-of-voice-agents-2025/internal/ws"
)

func SetupRoutes(h *hub.Hub, st store.Store, cfg config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/api/rooms", CreateRoom(h, logger))
	r.Post("/api/rooms/{code}/join", JoinRoom(h, st, logger))
	r.Get("/api/config", AppConfig(cfg))
	r.Get("/api/sessions", History(st))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h))
	return r
}
