// AngelaMos | 2026
// dto.go

package content

import (
	"encoding/json"
	"time"

	"github.com/carterperez-dev/pitchside/internal/access"
)

type ListParams struct {
	Page     int
	PageSize int
	Category string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type CreateArticleRequest struct {
	Title      string `json:"title"       validate:"required,min=1,max=200"`
	Teaser     string `json:"teaser"      validate:"max=500"`
	Body       string `json:"body"        validate:"required"`
	Category   string `json:"category"    validate:"required,min=1,max=50"`
	AccessTier string `json:"access_tier" validate:"required,oneof=free pro premium"`
	Author     string `json:"author"      validate:"required,min=1,max=100"`
	ImageURL   string `json:"image_url"   validate:"omitempty,url,max=500"`
}

type UpdateContentRequest struct {
	Title      *string `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Teaser     *string `json:"teaser,omitempty"      validate:"omitempty,max=500"`
	Body       *string `json:"body,omitempty"`
	Category   *string `json:"category,omitempty"    validate:"omitempty,min=1,max=50"`
	AccessTier *string `json:"access_tier,omitempty" validate:"omitempty,oneof=free pro premium"`
	Author     *string `json:"author,omitempty"      validate:"omitempty,min=1,max=100"`
	Source     *string `json:"source,omitempty"      validate:"omitempty,max=200"`
	ImageURL   *string `json:"image_url,omitempty"   validate:"omitempty,url,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft pending published"`
}

type SubmitItemRequest struct {
	Kind     string          `json:"kind"      validate:"required,oneof=noticia rumor transfer"`
	Title    string          `json:"title"     validate:"required,min=1,max=200"`
	Body     string          `json:"body"      validate:"required"`
	Source   string          `json:"source"    validate:"omitempty,max=200"`
	Author   string          `json:"author"    validate:"omitempty,max=100"`
	ImageURL string          `json:"image_url" validate:"omitempty,url,max=500"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

// ArticleResponse is the lock-aware projection: when the viewer's tier is
// below the article's, Body is nil and Locked explains why. Title and
// teaser stay visible as paywall bait.
type ArticleResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Teaser      string     `json:"teaser"`
	Body        *string    `json:"body"`
	Category    string     `json:"category"`
	AccessTier  string     `json:"access_tier"`
	Author      string     `json:"author"`
	ImageURL    string     `json:"image_url,omitempty"`
	Locked      bool       `json:"locked"`
	LockReason  string     `json:"lock_reason,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
}

func ToArticleResponse(a *Article, viewer access.Tier) ArticleResponse {
	resp := ArticleResponse{
		ID:          a.ID,
		Slug:        a.Slug,
		Title:       a.Title,
		Teaser:      a.Teaser,
		Category:    a.Category,
		AccessTier:  a.AccessTier,
		Author:      a.Author,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
	}

	decision := access.Decide(a.Tier(), viewer)
	if decision.Locked {
		resp.Locked = true
		resp.LockReason = decision.Reason
		return resp
	}

	body := a.Body
	resp.Body = &body
	return resp
}

func ToArticleResponseList(articles []Article, viewer access.Tier) []ArticleResponse {
	responses := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		responses = append(responses, ToArticleResponse(&a, viewer))
	}
	return responses
}

type ItemResponse struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	Source      string          `json:"source,omitempty"`
	Author      string          `json:"author,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Status      string          `json:"status,omitempty"`
	Extra       json.RawMessage `json:"extra,omitempty"`
	PublishedAt *time.Time      `json:"published_at"`
}

// ToItemResponse projects an ingested item. The moderation status is an
// admin-only detail; public projections omit it.
func ToItemResponse(i *IngestedItem, includeStatus bool) ItemResponse {
	resp := ItemResponse{
		ID:          i.ID,
		Kind:        i.Kind,
		Slug:        i.Slug,
		Title:       i.Title,
		Body:        i.Body,
		Source:      i.Source,
		Author:      i.Author,
		ImageURL:    i.ImageURL,
		Extra:       i.Extra,
		PublishedAt: i.PublishedAt,
	}

	if includeStatus {
		resp.Status = i.Status
	}

	return resp
}

func ToItemResponseList(items []IngestedItem, includeStatus bool) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		responses = append(responses, ToItemResponse(&i, includeStatus))
	}
	return responses
}

type PlayerResponse struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Position    string          `json:"position"`
	Team        string          `json:"team"`
	Nationality string          `json:"nationality"`
	Bio         string          `json:"bio"`
	Stats       json.RawMessage `json:"stats,omitempty"`
	AccessTier  string          `json:"access_tier"`
	Locked      bool            `json:"locked"`
	LockReason  string          `json:"lock_reason,omitempty"`
}

func ToPlayerResponse(p *Player, viewer access.Tier) PlayerResponse {
	resp := PlayerResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Position:    p.Position,
		Team:        p.Team,
		Nationality: p.Nationality,
		Bio:         p.Bio,
		AccessTier:  p.AccessTier,
	}

	decision := access.Decide(p.Tier(), viewer)
	if decision.Locked {
		resp.Locked = true
		resp.LockReason = decision.Reason
		return resp
	}

	resp.Stats = p.Stats
	return resp
}

func ToPlayerResponseList(players []Player, viewer access.Tier) []PlayerResponse {
	responses := make([]PlayerResponse, 0, len(players))
	for _, p := range players {
		responses = append(responses, ToPlayerResponse(&p, viewer))
	}
	return responses
}
