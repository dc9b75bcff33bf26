// AngelaMos | 2026
// handler.go

package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/middleware"
	"github.com/carterperez-dev/pitchside/internal/user"
)

type ChangeTierRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free pro premium"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/subscription", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/upgrade", h.Upgrade)
		r.Post("/downgrade", h.Downgrade)
		r.Delete("/", h.Cancel)
	})
}

func (h *Handler) Upgrade(w http.ResponseWriter, r *http.Request) {
	h.changeTier(w, r, h.service.Upgrade)
}

func (h *Handler) Downgrade(w http.ResponseWriter, r *http.Request) {
	h.changeTier(w, r, h.service.Downgrade)
}

func (h *Handler) changeTier(
	w http.ResponseWriter,
	r *http.Request,
	change func(ctx context.Context, userID, tier string) (*user.User, error),
) {
	userID := middleware.GetUserID(r.Context())

	var req ChangeTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := change(r.Context(), userID, req.Tier)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidTransition):
			core.UnprocessableEntity(w, err.Error())
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, user.ToUserResponse(updated))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	updated, err := h.service.Cancel(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(updated))
}
