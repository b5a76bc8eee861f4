package handlers

import (
	"log/slog"
	"net/http"

	appplayers "github.com/preston-bernstein/sunday-game-service/internal/app/players"
	appteams "github.com/preston-bernstein/sunday-game-service/internal/app/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/metrics"
	"github.com/preston-bernstein/sunday-game-service/internal/store"
	"github.com/preston-bernstein/sunday-game-service/internal/uploads"
)

const pingMessage = "pong"

// StorageStatus reports which backend is serving requests.
type StorageStatus interface {
	Backend() string
	State() store.State
}

// Handler wires HTTP routes to the player service.
type Handler struct {
	svc      *appplayers.Service
	teams    *appteams.Service
	uploads  *uploads.Store
	storage  StorageStatus
	recorder *metrics.Recorder
	logger   *slog.Logger
	mux      *http.ServeMux
}

// Option customizes a Handler.
type Option func(*Handler)

// WithTeams enables GET /api/teams.
func WithTeams(svc *appteams.Service) Option {
	return func(h *Handler) { h.teams = svc }
}

// WithUploads enables POST /api/upload/photo.
func WithUploads(u *uploads.Store) Option {
	return func(h *Handler) { h.uploads = u }
}

// WithStorageStatus adds backend details to /ready.
func WithStorageStatus(s StorageStatus) Option {
	return func(h *Handler) { h.storage = s }
}

// WithRecorder records upload outcomes.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(h *Handler) { h.recorder = rec }
}

// NewHandler constructs a Handler with its routes registered.
func NewHandler(svc *appplayers.Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:    svc,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.mux = h.routes()
	return h
}

func (h *Handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /api/ping", h.Ping)

	mux.HandleFunc("GET /api/players", h.ListPlayers)
	mux.HandleFunc("POST /api/players", h.AddPlayer)
	mux.HandleFunc("GET /api/players/{id}", h.GetPlayer)
	mux.HandleFunc("PUT /api/players/{id}", h.UpdatePlayer)
	mux.HandleFunc("DELETE /api/players/{id}", h.DeletePlayer)
	mux.HandleFunc("GET /api/players/team/{team}", h.PlayersByTeam)
	mux.HandleFunc("GET /api/players/position/{position}", h.PlayersByPosition)

	if h.teams != nil {
		mux.HandleFunc("GET /api/teams", h.Teams)
	}
	if h.uploads != nil {
		mux.HandleFunc("POST /api/upload/photo", h.UploadPhoto)
	}
	return mux
}

// ServeHTTP dispatches to the registered routes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness and which storage backend is active.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ready"}
	if h.storage != nil {
		resp["storage"] = h.storage.Backend()
		resp["state"] = h.storage.State().String()
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Ping is a trivial liveness endpoint for the frontend.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": pingMessage}, h.logger)
}

// Teams lists every team with its squad size.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	summaries, err := h.teams.Teams(r.Context())
	if err != nil {
		h.internalError(w, r, logger, "Failed to fetch teams", err)
		return
	}
	writeJSON(w, http.StatusOK, summaries, logger)
}
