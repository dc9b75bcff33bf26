// AngelaMos | 2026
// handler.go

package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/pitchside/internal/access"
	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/middleware"
	"github.com/carterperez-dev/pitchside/internal/moderation"
)

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

// RegisterRoutes mounts the public read surface. OptionalAuth runs first so
// the viewer tier is available; anonymous requests read as free-tier.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/articles", h.ListArticles)
		r.Get("/articles/{slug}", h.GetArticle)
		r.Get("/players", h.ListPlayers)
		r.Get("/players/{slug}", h.GetPlayer)
		r.Get("/news", h.listItems(KindNoticia))
		r.Get("/news/{slug}", h.getItem(KindNoticia))
		r.Get("/rumors", h.listItems(KindRumor))
		r.Get("/rumors/{slug}", h.getItem(KindRumor))
		r.Get("/transfers", h.listItems(KindTransfer))
		r.Get("/transfers/{slug}", h.getItem(KindTransfer))
	})
}

// RegisterAdminRoutes mounts content authoring and the moderation queue.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/content", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/articles", h.CreateArticle)
		r.Get("/articles/queue", h.ListUnpublishedArticles)
		r.Put("/articles/{id}", h.UpdateArticle)
		r.Post("/articles/{id}/publish", h.PublishArticle)
		r.Post("/articles/{id}/unpublish", h.UnpublishArticle)
		r.Delete("/articles/{id}", h.DeleteArticle)

		r.Post("/items", h.SubmitItem)
		r.Get("/items/queue", h.ListPendingItems)
		r.Put("/items/{id}", h.UpdateItem)
		r.Put("/items/{id}/status", h.UpdateItemStatus)
		r.Delete("/items/{id}", h.DeleteItem)
	})
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Category: r.URL.Query().Get("category"),
	}

	articles, total, err := h.service.ListPublishedArticles(r.Context(), params)
	if err != nil {
		// Read path degrades: an unreachable store renders as an empty
		// listing, not a 500.
		slog.Error("list articles failed", "error", err)
		core.Paginated(w, []ArticleResponse{}, params.Page, params.PageSize, 0)
		return
	}

	viewer := viewerTier(r)
	core.Paginated(
		w,
		ToArticleResponseList(articles, viewer),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleSlug := chi.URLParam(r, "slug")

	article, err := h.service.GetPublishedArticle(
		r.Context(),
		articleSlug,
		viewerID(r),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "article")
			return
		}
		slog.Error("get article failed", "slug", articleSlug, "error", err)
		core.NotFound(w, "article")
		return
	}

	core.OK(w, ToArticleResponse(article, viewerTier(r)))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	params := PlayerListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Team:     r.URL.Query().Get("team"),
		Position: r.URL.Query().Get("position"),
	}

	players, total, err := h.service.ListPlayers(r.Context(), params)
	if err != nil {
		slog.Error("list players failed", "error", err)
		core.Paginated(w, []PlayerResponse{}, params.Page, params.PageSize, 0)
		return
	}

	core.Paginated(
		w,
		ToPlayerResponseList(players, viewerTier(r)),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerSlug := chi.URLParam(r, "slug")

	player, err := h.service.GetPlayer(r.Context(), playerSlug, viewerID(r))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "player")
			return
		}
		slog.Error("get player failed", "slug", playerSlug, "error", err)
		core.NotFound(w, "player")
		return
	}

	core.OK(w, ToPlayerResponse(player, viewerTier(r)))
}

func (h *Handler) listItems(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := ListParams{
			Page:     parseIntQuery(r, "page", 1),
			PageSize: parseIntQuery(r, "page_size", 20),
		}

		items, total, err := h.service.ListPublishedItems(r.Context(), kind, params)
		if err != nil {
			slog.Error("list items failed", "kind", kind, "error", err)
			core.Paginated(w, []ItemResponse{}, params.Page, params.PageSize, 0)
			return
		}

		core.Paginated(
			w,
			ToItemResponseList(items, false),
			params.Page,
			params.PageSize,
			total,
		)
	}
}

func (h *Handler) getItem(kind Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemSlug := chi.URLParam(r, "slug")

		item, err := h.service.GetPublishedItem(
			r.Context(),
			kind,
			itemSlug,
			viewerID(r),
		)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.NotFound(w, string(kind))
				return
			}
			slog.Error("get item failed", "kind", kind, "slug", itemSlug, "error", err)
			core.NotFound(w, string(kind))
			return
		}

		core.OK(w, ToItemResponse(item, false))
	}
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.CreateArticle(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "an article with this title already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToArticleResponse(article, access.TierPremium))
}

func (h *Handler) ListUnpublishedArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListUnpublishedArticles(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToArticleResponseList(articles, access.TierPremium))
}

func (h *Handler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	h.transitionArticle(w, r, h.service.PublishArticle)
}

func (h *Handler) UnpublishArticle(w http.ResponseWriter, r *http.Request) {
	h.transitionArticle(w, r, h.service.UnpublishArticle)
}

func (h *Handler) transitionArticle(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, id string, actor moderation.Actor) (*Article, error),
) {
	id := chi.URLParam(r, "id")
	actor := actorFromRequest(r)

	article, err := transition(r.Context(), id, actor)
	if err != nil {
		writeModerationError(w, err, "article")
		return
	}

	core.OK(w, ToArticleResponse(article, access.TierPremium))
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.UpdateArticle(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "article")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToArticleResponse(article, access.TierPremium))
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "article")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SubmitItem(w http.ResponseWriter, r *http.Request) {
	var req SubmitItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.SubmitItem(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "an item with this title already exists")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToItemResponse(item, true))
}

func (h *Handler) ListPendingItems(w http.ResponseWriter, r *http.Request) {
	kind := Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		core.BadRequest(w, "unknown kind")
		return
	}

	items, err := h.service.ListPendingItems(r.Context(), kind)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemResponseList(items, true))
}

func (h *Handler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.UpdateItemStatus(
		r.Context(),
		id,
		req.Status,
		actorFromRequest(r),
	)
	if err != nil {
		writeModerationError(w, err, "item")
		return
	}

	core.OK(w, ToItemResponse(item, true))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToItemResponse(item, true))
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "item")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func writeModerationError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "insufficient permissions")
	case errors.Is(err, core.ErrInvalidTransition):
		core.UnprocessableEntity(w, err.Error())
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func actorFromRequest(r *http.Request) moderation.Actor {
	return moderation.Actor{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func viewerTier(r *http.Request) access.Tier {
	return access.ParseTier(middleware.GetUserTier(r.Context()))
}

func viewerID(r *http.Request) *string {
	id := middleware.GetUserID(r.Context())
	if id == "" {
		return nil
	}
	return &id
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
