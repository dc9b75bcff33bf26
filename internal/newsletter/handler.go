// AngelaMos | 2026
// handler.go

package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type SubscriberResponse struct {
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribed_at"`
}

type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/newsletter", h.Subscribe)
	r.Delete("/newsletter/{email}", h.Unsubscribe)
}

// Subscribe is idempotent: subscribing an address that is already on the
// list succeeds and reactivates it if it had unsubscribed.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub := &Subscriber{
		ID:    uuid.New().String(),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.repo.Subscribe(r.Context(), sub); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, SubscriberResponse{
		Email:        sub.Email,
		SubscribedAt: sub.SubscribedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(chi.URLParam(r, "email"))

	if err := h.repo.Unsubscribe(r.Context(), email); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "subscriber")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
