// AngelaMos | 2026
// handler.go

package matches

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/matches", func(r chi.Router) {
		r.Get("/today", h.Today)
		r.Get("/current", h.Current)
		r.Get("/rounds", h.Rounds)
		r.Get("/round/{round}", h.ByRound)
		r.Get("/{id}", h.ByID)
		r.Get("/{id}/lineups", h.Lineups)
		r.Get("/{id}/statistics", h.Statistics)
	})
}

// Match reads degrade: a broken upstream or store renders as an empty list
// or a null match, never a 500.

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	matchList, err := h.service.GetTodaysMatches(r.Context())
	if err != nil {
		slog.Error("today's matches failed", "error", err)
		core.OK(w, []Match{})
		return
	}

	core.OK(w, matchList)
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	match, err := h.service.GetCurrentMatch(r.Context())
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			slog.Error("current match failed", "error", err)
		}
		core.OK(w, nil)
		return
	}

	core.OK(w, match)
}

func (h *Handler) Rounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.service.GetRounds(r.Context())
	if err != nil {
		slog.Error("rounds failed", "error", err)
		core.OK(w, []string{})
		return
	}

	core.OK(w, rounds)
}

func (h *Handler) ByRound(w http.ResponseWriter, r *http.Request) {
	round := chi.URLParam(r, "round")

	matchList, err := h.service.GetMatchesByRound(r.Context(), round)
	if err != nil {
		slog.Error("matches by round failed", "round", round, "error", err)
		core.OK(w, []Match{})
		return
	}

	core.OK(w, matchList)
}

func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid match id")
		return
	}

	match, err := h.service.GetMatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "match")
			return
		}
		slog.Error("get match failed", "fixture_id", id, "error", err)
		core.OK(w, nil)
		return
	}

	core.OK(w, match)
}

func (h *Handler) Lineups(w http.ResponseWriter, r *http.Request) {
	h.raw(w, r, h.service.GetLineups)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	h.raw(w, r, h.service.GetStatistics)
}

func (h *Handler) raw(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, fixtureID int64) (json.RawMessage, error),
) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid match id")
		return
	}

	raw, err := fetch(r.Context(), id)
	if err != nil {
		slog.Error("fixture detail failed", "fixture_id", id, "error", err)
		core.OK(w, []json.RawMessage{})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw) //nolint:errcheck
}
