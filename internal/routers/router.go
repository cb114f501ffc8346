package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"duoreport/internal/api"
	"duoreport/internal/metrics"
)

// New wires the HTTP surface: room creation, the collaboration WebSocket,
// export, summarization, health and metrics. Paths match the legacy client.
func New(h *api.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Post("/create_room", h.CreateRoom)
	r.Get("/ws/report/{id}", h.CollabWS)
	r.Get("/export/{id}", h.Export)
	r.Post("/summarize/{id}/{section}", h.Summarize)

	return r
}
