// Package scoringhandlers exposes the scoring service over HTTP. Reads
// return the computed scoreboard; every successful mutation additionally
// publishes a scoreboard-updated event so other devices refetch.
package scoringhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	scoringservice "github.com/spicy-golf/scorekeeper/app/modules/scoring/application"
	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/eventbus"
	scoringdb "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/repositories"
	"github.com/spicy-golf/scorekeeper/app/shared/observability/attr"
)

// ScoringHandlers holds the dependencies for the HTTP surface.
type ScoringHandlers struct {
	service scoringservice.Service
	bus     eventbus.EventBus
	logger  *slog.Logger
}

// NewScoringHandlers creates the handler set.
func NewScoringHandlers(service scoringservice.Service, bus eventbus.EventBus, logger *slog.Logger) *ScoringHandlers {
	return &ScoringHandlers{service: service, bus: bus, logger: logger}
}

// GetScoreboard computes and returns the scoreboard for a game.
func (h *ScoringHandlers) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	result, err := h.service.GetScoreboard(r.Context(), gameID)
	h.respond(w, r, result, err, false)
}

// CreateGame persists a new game from the request body.
func (h *ScoringHandlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var g scoringtypes.Game
	if !h.decode(w, r, &g) {
		return
	}
	result, err := h.service.CreateGame(r.Context(), &g)
	h.respond(w, r, result, err, false)
}

type setScoreRequest struct {
	Gross int `json:"gross"`
}

// SetScore records a gross score for a player on a hole.
func (h *ScoringHandlers) SetScore(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	playerID := chi.URLParam(r, "playerID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	var req setScoreRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.SetScore(r.Context(), gameID, playerID, hole, req.Gross)
	h.respond(w, r, result, err, true)
}

// ClearScore removes a player's score on a hole.
func (h *ScoringHandlers) ClearScore(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	playerID := chi.URLParam(r, "playerID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	result, err := h.service.ClearScore(r.Context(), gameID, playerID, hole)
	h.respond(w, r, result, err, true)
}

type junkRequest struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	On       bool   `json:"on"`
}

// TogglePlayerJunk marks or unmarks a user junk.
func (h *ScoringHandlers) TogglePlayerJunk(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	var req junkRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.TogglePlayerJunk(r.Context(), gameID, hole, req.TeamID, req.PlayerID, req.Name, req.On)
	h.respond(w, r, result, err, true)
}

type multiplierRequest struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	On     bool   `json:"on"`
}

// ToggleTeamMultiplier activates or removes a team multiplier.
func (h *ScoringHandlers) ToggleTeamMultiplier(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	var req multiplierRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.ToggleTeamMultiplier(r.Context(), gameID, hole, req.TeamID, req.Name, req.On)
	h.respond(w, r, result, err, true)
}

type customMultiplierRequest struct {
	TeamID string  `json:"teamId"`
	Value  float64 `json:"value"`
}

// SetCustomMultiplier records the hole-toolbar numeric multiplier.
func (h *ScoringHandlers) SetCustomMultiplier(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	var req customMultiplierRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.SetCustomMultiplier(r.Context(), gameID, hole, req.TeamID, req.Value)
	h.respond(w, r, result, err, true)
}

type teeFlipRequest struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
	Declined bool   `json:"declined"`
}

// RecordTeeFlip records a tee flip result on a hole.
func (h *ScoringHandlers) RecordTeeFlip(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	var req teeFlipRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.RecordTeeFlip(r.Context(), gameID, hole, req.TeamID, req.PlayerID, req.Declined)
	h.respond(w, r, result, err, true)
}

// SetHoleOption stores a per-hole option override from the request body.
func (h *ScoringHandlers) SetHoleOption(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	var option scoringtypes.Option
	if !h.decode(w, r, &option) {
		return
	}
	result, err := h.service.SetHoleOption(r.Context(), gameID, hole, option)
	h.respond(w, r, result, err, true)
}

// ClearHoleOption removes a per-hole option override.
func (h *ScoringHandlers) ClearHoleOption(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	hole, ok := h.holeParam(w, r)
	if !ok {
		return
	}
	result, err := h.service.ClearHoleOption(r.Context(), gameID, hole, chi.URLParam(r, "optionName"))
	h.respond(w, r, result, err, true)
}

type gameOptionRequest struct {
	Value string `json:"value"`
}

// SetGameOption sets a game-level option value.
func (h *ScoringHandlers) SetGameOption(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	var req gameOptionRequest
	if !h.decode(w, r, &req) {
		return
	}
	result, err := h.service.SetGameOption(r.Context(), gameID, chi.URLParam(r, "optionName"), req.Value)
	h.respond(w, r, result, err, true)
}

// ResetSpec restores the working option set from the catalog original.
func (h *ScoringHandlers) ResetSpec(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	result, err := h.service.ResetSpec(r.Context(), gameID)
	h.respond(w, r, result, err, true)
}

func (h *ScoringHandlers) holeParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil || hole < 1 || hole > 18 {
		http.Error(w, "invalid hole number", http.StatusBadRequest)
		return 0, false
	}
	return hole, true
}

func (h *ScoringHandlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// respond maps an operation result onto the HTTP response and, for
// successful mutations, publishes the scoreboard-updated event.
func (h *ScoringHandlers) respond(w http.ResponseWriter, r *http.Request, result scoringservice.GameOperationResult, err error, mutation bool) {
	ctx := r.Context()
	if err != nil {
		if errors.Is(err, scoringdb.ErrGameNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if result.Failure != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if encErr := json.NewEncoder(w).Encode(result.Failure); encErr != nil {
			h.logger.ErrorContext(ctx, "Failed to encode failure payload", attr.Error(encErr))
		}
		return
	}

	if mutation {
		if payload, ok := result.Success.(*scoringservice.ScoreboardPayload); ok {
			event := eventbus.ScoreboardUpdatedEvent{
				GameID:        payload.GameID,
				Fingerprint:   payload.Fingerprint,
				Invalidations: len(payload.Invalidations),
			}
			if pubErr := h.bus.PublishScoreboardUpdated(ctx, event); pubErr != nil {
				// The write already committed; the clients poll as a fallback.
				h.logger.ErrorContext(ctx, "Failed to publish scoreboard update",
					attr.GameID(payload.GameID),
					attr.Error(pubErr),
				)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if encErr := json.NewEncoder(w).Encode(result.Success); encErr != nil {
		h.logger.ErrorContext(ctx, "Failed to encode response", attr.Error(encErr))
	}
}
