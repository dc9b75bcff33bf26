// AngelaMos | 2026
// service.go

package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/moderation"
)

type Service struct {
	articles ArticleRepository
	ingested IngestedRepository
	players  PlayerRepository
	views    ViewRepository
	now      func() time.Time
}

func NewService(
	articles ArticleRepository,
	ingested IngestedRepository,
	players PlayerRepository,
	views ViewRepository,
) *Service {
	return &Service{
		articles: articles,
		ingested: ingested,
		players:  players,
		views:    views,
		now:      time.Now,
	}
}

func (s *Service) CreateArticle(
	ctx context.Context,
	req CreateArticleRequest,
) (*Article, error) {
	article := &Article{
		ID:         uuid.New().String(),
		Slug:       slug.Make(req.Title),
		Title:      req.Title,
		Teaser:     req.Teaser,
		Body:       req.Body,
		Category:   req.Category,
		AccessTier: req.AccessTier,
		Author:     req.Author,
		ImageURL:   req.ImageURL,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *Service) ListPublishedArticles(
	ctx context.Context,
	params ListParams,
) ([]Article, int, error) {
	return s.articles.ListPublished(ctx, params)
}

// GetPublishedArticle is the public read path: drafts look identical to
// missing articles from the outside.
func (s *Service) GetPublishedArticle(
	ctx context.Context,
	articleSlug string,
	viewerID *string,
) (*Article, error) {
	article, err := s.articles.GetBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	if !article.IsPublished {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}

	s.recordView(ctx, "article", article.ID, viewerID)

	return article, nil
}

func (s *Service) GetArticle(ctx context.Context, id string) (*Article, error) {
	return s.articles.GetByID(ctx, id)
}

func (s *Service) ListUnpublishedArticles(ctx context.Context) ([]Article, error) {
	return s.articles.ListUnpublished(ctx)
}

// PublishArticle walks the article through review in one step. Admin-authored
// articles skip a persisted pending stage, but the transitions still run
// through the state machine so authorization and edge checks live in one
// place. Publishing an already-published article is a no-op.
func (s *Service) PublishArticle(
	ctx context.Context,
	id string,
	actor moderation.Actor,
) (*Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.IsPublished {
		return article, nil
	}

	now := s.now()

	if _, err := moderation.Apply(article, moderation.StatusPending, actor, now); err != nil {
		return nil, err
	}

	if _, err := moderation.Apply(article, moderation.StatusPublished, actor, now); err != nil {
		return nil, err
	}

	if err := s.articles.Save(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *Service) UnpublishArticle(
	ctx context.Context,
	id string,
	actor moderation.Actor,
) (*Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := moderation.Apply(article, moderation.StatusDraft, actor, s.now())
	if err != nil {
		return nil, err
	}

	if !res.Changed {
		return article, nil
	}

	if err := s.articles.Save(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *Service) UpdateArticle(
	ctx context.Context,
	id string,
	req UpdateContentRequest,
) (*Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Teaser != nil {
		article.Teaser = *req.Teaser
	}
	if req.Body != nil {
		article.Body = *req.Body
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.AccessTier != nil {
		article.AccessTier = *req.AccessTier
	}
	if req.Author != nil {
		article.Author = *req.Author
	}
	if req.ImageURL != nil {
		article.ImageURL = *req.ImageURL
	}

	if err := s.articles.Save(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	return s.articles.Delete(ctx, id)
}

// SubmitItem ingests a scraped or contributed record. It enters the
// moderation queue directly as pending; the draft status is reserved for
// items a reviewer has sent back.
func (s *Service) SubmitItem(
	ctx context.Context,
	req SubmitItemRequest,
) (*IngestedItem, error) {
	kind := Kind(req.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("submit item: invalid kind %q: %w", req.Kind, core.ErrInvalidInput)
	}

	item := &IngestedItem{
		ID:       uuid.New().String(),
		Kind:     kind,
		Slug:     slug.Make(req.Title),
		Title:    req.Title,
		Body:     req.Body,
		Source:   req.Source,
		Author:   req.Author,
		ImageURL: req.ImageURL,
		Status:   string(moderation.StatusPending),
		Extra:    req.Extra,
	}

	if err := s.ingested.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) ListPublishedItems(
	ctx context.Context,
	kind Kind,
	params ListParams,
) ([]IngestedItem, int, error) {
	return s.ingested.ListPublished(ctx, kind, params)
}

func (s *Service) GetPublishedItem(
	ctx context.Context,
	kind Kind,
	itemSlug string,
	viewerID *string,
) (*IngestedItem, error) {
	item, err := s.ingested.GetBySlug(ctx, kind, itemSlug)
	if err != nil {
		return nil, err
	}

	if item.CurrentStatus() != moderation.StatusPublished {
		return nil, fmt.Errorf("get item: %w", core.ErrNotFound)
	}

	s.recordView(ctx, string(kind), item.ID, viewerID)

	return item, nil
}

func (s *Service) ListPendingItems(
	ctx context.Context,
	kind Kind,
) ([]IngestedItem, error) {
	return s.ingested.ListPending(ctx, kind)
}

func (s *Service) ModerationStats(
	ctx context.Context,
	kind Kind,
) (map[string]int, error) {
	return s.ingested.CountByStatus(ctx, kind)
}

// UpdateItemStatus drives a moderation transition. Re-applying the current
// status succeeds without a write so double-submitted approvals are
// harmless.
func (s *Service) UpdateItemStatus(
	ctx context.Context,
	id string,
	newStatus string,
	actor moderation.Actor,
) (*IngestedItem, error) {
	target, err := moderation.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	item, err := s.ingested.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := moderation.Apply(item, target, actor, s.now())
	if err != nil {
		return nil, err
	}

	if !res.Changed {
		return item, nil
	}

	if err := s.ingested.Save(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) UpdateItem(
	ctx context.Context,
	id string,
	req UpdateContentRequest,
) (*IngestedItem, error) {
	item, err := s.ingested.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Body != nil {
		item.Body = *req.Body
	}
	if req.Source != nil {
		item.Source = *req.Source
	}
	if req.Author != nil {
		item.Author = *req.Author
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if err := s.ingested.Save(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.ingested.Delete(ctx, id)
}

func (s *Service) ListPlayers(
	ctx context.Context,
	params PlayerListParams,
) ([]Player, int, error) {
	return s.players.List(ctx, params)
}

func (s *Service) GetPlayer(
	ctx context.Context,
	playerSlug string,
	viewerID *string,
) (*Player, error) {
	player, err := s.players.GetBySlug(ctx, playerSlug)
	if err != nil {
		return nil, err
	}

	s.recordView(ctx, "player", player.ID, viewerID)

	return player, nil
}

func (s *Service) recordView(
	ctx context.Context,
	contentType, contentID string,
	viewerID *string,
) {
	if err := s.views.RecordView(ctx, contentType, contentID, viewerID); err != nil {
		slog.Warn("record view failed",
			"content_type", contentType,
			"content_id", contentID,
			"error", err,
		)
	}
}
