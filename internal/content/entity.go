// AngelaMos | 2026
// entity.go

package content

import (
	"encoding/json"
	"time"

	"github.com/carterperez-dev/pitchside/internal/access"
	"github.com/carterperez-dev/pitchside/internal/moderation"
)

// Kind identifies an ingested content family. Articles and players are
// first-class entities with their own tables and are not Kinds.
type Kind string

const (
	KindNoticia  Kind = "noticia"
	KindRumor    Kind = "rumor"
	KindTransfer Kind = "transfer"
)

func (k Kind) Valid() bool {
	switch k {
	case KindNoticia, KindRumor, KindTransfer:
		return true
	}
	return false
}

// Article is authored directly by admins: structured columns, a tier gate
// on the body, and no pending stage.
type Article struct {
	ID          string     `db:"id"`
	Slug        string     `db:"slug"`
	Title       string     `db:"title"`
	Teaser      string     `db:"teaser"`
	Body        string     `db:"body"`
	Category    string     `db:"category"`
	AccessTier  string     `db:"access_tier"`
	Author      string     `db:"author"`
	ImageURL    string     `db:"image_url"`
	IsPublished bool       `db:"is_published"`
	PublishedAt *time.Time `db:"published_at"`
	ModeratedBy *string    `db:"moderated_by"`
	ModeratedAt *time.Time `db:"moderated_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (a *Article) Tier() access.Tier {
	return access.ParseTier(a.AccessTier)
}

// CurrentStatus maps the boolean publish flag onto the shared lifecycle.
// Articles never persist a pending status; it exists only transiently while
// the state machine walks draft -> pending -> published during publish.
func (a *Article) CurrentStatus() moderation.Status {
	if a.IsPublished {
		return moderation.StatusPublished
	}
	return moderation.StatusDraft
}

func (a *Article) SetStatus(s moderation.Status) {
	a.IsPublished = s == moderation.StatusPublished
}

func (a *Article) SetModeration(actorID string, at time.Time) {
	a.ModeratedBy = &actorID
	a.ModeratedAt = &at
}

func (a *Article) SetPublishedAt(at *time.Time) {
	a.PublishedAt = at
}

// IngestedItem is the loose family: noticias, rumores and transfers pulled
// in by scrapers and feeds. The status column is a plain string constrained
// by the moderation package, and feed-specific fields ride in Extra.
type IngestedItem struct {
	ID          string          `db:"id"`
	Kind        Kind            `db:"kind"`
	Slug        string          `db:"slug"`
	Title       string          `db:"title"`
	Body        string          `db:"body"`
	Source      string          `db:"source"`
	Author      string          `db:"author"`
	ImageURL    string          `db:"image_url"`
	Status      string          `db:"status"`
	Extra       json.RawMessage `db:"extra"`
	PublishedAt *time.Time      `db:"published_at"`
	ModeratedBy *string         `db:"moderated_by"`
	ModeratedAt *time.Time      `db:"moderated_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (i *IngestedItem) CurrentStatus() moderation.Status {
	return moderation.Status(i.Status)
}

func (i *IngestedItem) SetStatus(s moderation.Status) {
	i.Status = string(s)
}

func (i *IngestedItem) SetModeration(actorID string, at time.Time) {
	i.ModeratedBy = &actorID
	i.ModeratedAt = &at
}

func (i *IngestedItem) SetPublishedAt(at *time.Time) {
	i.PublishedAt = at
}

// Player profiles are public; the stats payload is gated like article
// bodies.
type Player struct {
	ID          string          `db:"id"`
	Slug        string          `db:"slug"`
	Name        string          `db:"name"`
	Position    string          `db:"position"`
	Team        string          `db:"team"`
	Nationality string          `db:"nationality"`
	Bio         string          `db:"bio"`
	Stats       json.RawMessage `db:"stats"`
	AccessTier  string          `db:"access_tier"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (p *Player) Tier() access.Tier {
	return access.ParseTier(p.AccessTier)
}

var (
	_ moderation.Moderatable = (*Article)(nil)
	_ moderation.Moderatable = (*IngestedItem)(nil)
)
