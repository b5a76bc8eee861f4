package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appplayers "github.com/preston-bernstein/sunday-game-service/internal/app/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
)

const (
	maxBodyBytes = 1 << 20

	msgPlayerNotFound  = "Player not found"
	msgInvalidTeam     = "Invalid team name"
	msgInvalidPosition = "Invalid position"
	msgNamesRequired   = "First name and last name are required"
	msgEnumsRequired   = "Position and team are required"
	msgInvalidBody     = "Invalid request body"
)

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListPlayers returns the whole roster.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	items, err := h.svc.Players(r.Context())
	if err != nil {
		h.internalError(w, r, logger, "Failed to fetch players", err)
		return
	}
	writeJSON(w, http.StatusOK, items, logger)
}

// GetPlayer returns a single player.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id := r.PathValue("id")
	p, ok, err := h.svc.PlayerByID(r.Context(), id)
	if err != nil {
		h.internalError(w, r, logger, "Failed to fetch player", err, slog.String(logging.FieldPlayerID, id))
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPlayerNotFound, logger)
		return
	}
	writeJSON(w, http.StatusOK, p, logger)
}

// AddPlayer creates a player from the JSON body.
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var draft players.Draft
	if !decodeBody(w, r, &draft, logger) {
		return
	}
	p, err := h.svc.AddPlayer(r.Context(), draft)
	if err != nil {
		h.writeMutationError(w, r, logger, "Failed to add player", err)
		return
	}
	logging.Info(logger, "player added", slog.String(logging.FieldPlayerID, p.ID))
	writeJSON(w, http.StatusCreated, p, logger)
}

// UpdatePlayer merges the JSON body onto an existing player.
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id := r.PathValue("id")
	var patch players.Patch
	if !decodeBody(w, r, &patch, logger) {
		return
	}
	p, ok, err := h.svc.UpdatePlayer(r.Context(), id, patch)
	if err != nil {
		h.writeMutationError(w, r, logger, "Failed to update player", err, slog.String(logging.FieldPlayerID, id))
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPlayerNotFound, logger)
		return
	}
	writeJSON(w, http.StatusOK, p, logger)
}

// DeletePlayer removes a player.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id := r.PathValue("id")
	ok, err := h.svc.DeletePlayer(r.Context(), id)
	if err != nil {
		h.internalError(w, r, logger, "Failed to delete player", err, slog.String(logging.FieldPlayerID, id))
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, msgPlayerNotFound, logger)
		return
	}
	logging.Info(logger, "player deleted", slog.String(logging.FieldPlayerID, id))
	writeJSON(w, http.StatusOK, deleteResponse{Success: true, Message: "Player deleted successfully"}, logger)
}

// PlayersByTeam filters the roster by team name.
func (h *Handler) PlayersByTeam(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	items, err := h.svc.PlayersByTeam(r.Context(), r.PathValue("team"))
	if errors.Is(err, appplayers.ErrInvalidTeam) {
		writeError(w, r, http.StatusBadRequest, msgInvalidTeam, logger)
		return
	}
	if err != nil {
		h.internalError(w, r, logger, "Failed to fetch team players", err)
		return
	}
	writeJSON(w, http.StatusOK, items, logger)
}

// PlayersByPosition filters the roster by position.
func (h *Handler) PlayersByPosition(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	items, err := h.svc.PlayersByPosition(r.Context(), r.PathValue("position"))
	if errors.Is(err, appplayers.ErrInvalidPosition) {
		writeError(w, r, http.StatusBadRequest, msgInvalidPosition, logger)
		return
	}
	if err != nil {
		h.internalError(w, r, logger, "Failed to fetch position players", err)
		return
	}
	writeJSON(w, http.StatusOK, items, logger)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any, logger *slog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		logging.Warn(logger, "invalid request body", logging.FieldError, err)
		writeError(w, r, http.StatusBadRequest, msgInvalidBody, logger)
		return false
	}
	return true
}

// writeMutationError maps validation failures to 400 and everything else to 500.
func (h *Handler) writeMutationError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, fallback string, err error, attrs ...any) {
	var required *appplayers.RequiredFieldsError
	if errors.As(err, &required) {
		msg := msgEnumsRequired
		if required.NamesMissing() {
			msg = msgNamesRequired
		}
		writeError(w, r, http.StatusBadRequest, msg, logger)
		return
	}

	var invalid *players.ValidationError
	if errors.As(err, &invalid) {
		msg := invalid.Error()
		switch invalid.Field {
		case "team":
			msg = msgInvalidTeam
		case "position":
			msg = msgInvalidPosition
		}
		writeError(w, r, http.StatusBadRequest, msg, logger)
		return
	}
	h.internalError(w, r, logger, fallback, err, attrs...)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error, attrs ...any) {
	logging.Error(logger, msg, err, attrs...)
	writeError(w, r, http.StatusInternalServerError, msg, logger)
}
