// AngelaMos | 2026
// service_test.go

package content

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/moderation"
)

type fakeArticleRepo struct {
	ArticleRepository
	byID      map[string]*Article
	saveCalls int
	listErr   error
}

func newFakeArticleRepo(articles ...*Article) *fakeArticleRepo {
	byID := make(map[string]*Article)
	for _, a := range articles {
		byID[a.ID] = a
	}
	return &fakeArticleRepo{byID: byID}
}

func (f *fakeArticleRepo) Create(_ context.Context, article *Article) error {
	f.byID[article.ID] = article
	return nil
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id string) (*Article, error) {
	article, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}
	return article, nil
}

func (f *fakeArticleRepo) GetBySlug(_ context.Context, slug string) (*Article, error) {
	for _, a := range f.byID {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
}

func (f *fakeArticleRepo) ListPublished(_ context.Context, _ ListParams) ([]Article, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	var published []Article
	for _, a := range f.byID {
		if a.IsPublished {
			published = append(published, *a)
		}
	}
	return published, len(published), nil
}

func (f *fakeArticleRepo) Save(_ context.Context, article *Article) error {
	f.saveCalls++
	f.byID[article.ID] = article
	return nil
}

type fakeIngestedRepo struct {
	IngestedRepository
	byID      map[string]*IngestedItem
	saveCalls int
}

func newFakeIngestedRepo(items ...*IngestedItem) *fakeIngestedRepo {
	byID := make(map[string]*IngestedItem)
	for _, i := range items {
		byID[i.ID] = i
	}
	return &fakeIngestedRepo{byID: byID}
}

func (f *fakeIngestedRepo) Create(_ context.Context, item *IngestedItem) error {
	f.byID[item.ID] = item
	return nil
}

func (f *fakeIngestedRepo) GetByID(_ context.Context, id string) (*IngestedItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get item: %w", core.ErrNotFound)
	}
	return item, nil
}

func (f *fakeIngestedRepo) Save(_ context.Context, item *IngestedItem) error {
	f.saveCalls++
	f.byID[item.ID] = item
	return nil
}

type fakeViewRepo struct {
	recorded []string
	fail     bool
}

func (f *fakeViewRepo) RecordView(_ context.Context, contentType, contentID string, _ *string) error {
	if f.fail {
		return fmt.Errorf("record view: %w", core.ErrStorageUnavailable)
	}
	f.recorded = append(f.recorded, contentType+":"+contentID)
	return nil
}

func newTestService(
	articles *fakeArticleRepo,
	ingested *fakeIngestedRepo,
	views *fakeViewRepo,
) *Service {
	svc := NewService(articles, ingested, nil, views)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

var (
	admin  = moderation.Actor{ID: "admin-1", Role: "admin"}
	reader = moderation.Actor{ID: "user-1", Role: "user"}
)

func TestCreateArticle_SlugFromTitle(t *testing.T) {
	articles := newFakeArticleRepo()
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})

	article, err := svc.CreateArticle(context.Background(), CreateArticleRequest{
		Title:      "El Clásico Preview: Madrid vs Barcelona",
		Teaser:     "A look ahead",
		Body:       "Full analysis",
		Category:   "preview",
		AccessTier: "pro",
		Author:     "Angela",
	})

	require.NoError(t, err)
	assert.Equal(t, "el-clasico-preview-madrid-vs-barcelona", article.Slug)
	assert.False(t, article.IsPublished)
	assert.NotEmpty(t, article.ID)
}

func TestGetPublishedArticle_DraftLooksMissing(t *testing.T) {
	articles := newFakeArticleRepo(&Article{
		ID:   "a1",
		Slug: "hidden-draft",
	})
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})

	_, err := svc.GetPublishedArticle(context.Background(), "hidden-draft", nil)

	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetPublishedArticle_RecordsView(t *testing.T) {
	articles := newFakeArticleRepo(&Article{
		ID:          "a1",
		Slug:        "match-report",
		IsPublished: true,
	})
	views := &fakeViewRepo{}
	svc := newTestService(articles, newFakeIngestedRepo(), views)

	article, err := svc.GetPublishedArticle(context.Background(), "match-report", nil)

	require.NoError(t, err)
	assert.Equal(t, "a1", article.ID)
	assert.Equal(t, []string{"article:a1"}, views.recorded)
}

func TestGetPublishedArticle_ViewFailureDoesNotBlockRead(t *testing.T) {
	articles := newFakeArticleRepo(&Article{
		ID:          "a1",
		Slug:        "match-report",
		IsPublished: true,
	})
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{fail: true})

	_, err := svc.GetPublishedArticle(context.Background(), "match-report", nil)

	assert.NoError(t, err)
}

func TestPublishArticle(t *testing.T) {
	articles := newFakeArticleRepo(&Article{ID: "a1", Slug: "draft-piece"})
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})

	article, err := svc.PublishArticle(context.Background(), "a1", admin)

	require.NoError(t, err)
	assert.True(t, article.IsPublished)
	require.NotNil(t, article.PublishedAt)
	require.NotNil(t, article.ModeratedBy)
	assert.Equal(t, "admin-1", *article.ModeratedBy)
	assert.Equal(t, 1, articles.saveCalls)
}

func TestPublishArticle_AlreadyPublishedIsNoop(t *testing.T) {
	publishedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := newFakeArticleRepo(&Article{
		ID:          "a1",
		IsPublished: true,
		PublishedAt: &publishedAt,
	})
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})

	article, err := svc.PublishArticle(context.Background(), "a1", admin)

	require.NoError(t, err)
	assert.Equal(t, publishedAt, *article.PublishedAt)
	assert.Zero(t, articles.saveCalls)
}

func TestPublishArticle_NonAdminForbidden(t *testing.T) {
	articles := newFakeArticleRepo(&Article{ID: "a1"})
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})

	_, err := svc.PublishArticle(context.Background(), "a1", reader)

	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.False(t, articles.byID["a1"].IsPublished)
	assert.Zero(t, articles.saveCalls)
}

func TestUnpublishArticle_KeepsAuditTrail(t *testing.T) {
	publishedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	firstReviewer := "admin-0"
	articles := newFakeArticleRepo(&Article{
		ID:          "a1",
		IsPublished: true,
		PublishedAt: &publishedAt,
		ModeratedBy: &firstReviewer,
	})
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})

	article, err := svc.UnpublishArticle(context.Background(), "a1", admin)

	require.NoError(t, err)
	assert.False(t, article.IsPublished)
	assert.Nil(t, article.PublishedAt)
	require.NotNil(t, article.ModeratedBy)
	assert.Equal(t, "admin-1", *article.ModeratedBy)
}

func TestSubmitItem_EntersQueueAsPending(t *testing.T) {
	ingested := newFakeIngestedRepo()
	svc := newTestService(newFakeArticleRepo(), ingested, &fakeViewRepo{})

	item, err := svc.SubmitItem(context.Background(), SubmitItemRequest{
		Kind:   "rumor",
		Title:  "Striker linked with January move",
		Body:   "Sources say",
		Source: "feed:mercado",
	})

	require.NoError(t, err)
	assert.Equal(t, KindRumor, item.Kind)
	assert.Equal(t, string(moderation.StatusPending), item.Status)
	assert.Nil(t, item.ModeratedBy)
	assert.Nil(t, item.PublishedAt)
}

func TestSubmitItem_UnknownKind(t *testing.T) {
	svc := newTestService(newFakeArticleRepo(), newFakeIngestedRepo(), &fakeViewRepo{})

	_, err := svc.SubmitItem(context.Background(), SubmitItemRequest{
		Kind:  "podcast",
		Title: "nope",
	})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateItemStatus_Approve(t *testing.T) {
	ingested := newFakeIngestedRepo(&IngestedItem{
		ID:     "i1",
		Kind:   KindNoticia,
		Status: string(moderation.StatusPending),
	})
	svc := newTestService(newFakeArticleRepo(), ingested, &fakeViewRepo{})

	item, err := svc.UpdateItemStatus(context.Background(), "i1", "published", admin)

	require.NoError(t, err)
	assert.Equal(t, string(moderation.StatusPublished), item.Status)
	require.NotNil(t, item.PublishedAt)
	assert.Equal(t, 1, ingested.saveCalls)
}

func TestUpdateItemStatus_RejectKeepsAuditTrail(t *testing.T) {
	ingested := newFakeIngestedRepo(&IngestedItem{
		ID:     "i1",
		Kind:   KindNoticia,
		Status: string(moderation.StatusPending),
	})
	svc := newTestService(newFakeArticleRepo(), ingested, &fakeViewRepo{})

	item, err := svc.UpdateItemStatus(context.Background(), "i1", "draft", admin)

	require.NoError(t, err)
	assert.Equal(t, string(moderation.StatusDraft), item.Status)
	require.NotNil(t, item.ModeratedBy)
	assert.Equal(t, "admin-1", *item.ModeratedBy)
	assert.Nil(t, item.PublishedAt)
}

func TestUpdateItemStatus_SameStatusSkipsSave(t *testing.T) {
	ingested := newFakeIngestedRepo(&IngestedItem{
		ID:     "i1",
		Kind:   KindNoticia,
		Status: string(moderation.StatusPending),
	})
	svc := newTestService(newFakeArticleRepo(), ingested, &fakeViewRepo{})

	_, err := svc.UpdateItemStatus(context.Background(), "i1", "pending", admin)

	require.NoError(t, err)
	assert.Zero(t, ingested.saveCalls)
}

func TestUpdateItemStatus_SkippingReviewRejected(t *testing.T) {
	ingested := newFakeIngestedRepo(&IngestedItem{
		ID:     "i1",
		Kind:   KindNoticia,
		Status: string(moderation.StatusDraft),
	})
	svc := newTestService(newFakeArticleRepo(), ingested, &fakeViewRepo{})

	_, err := svc.UpdateItemStatus(context.Background(), "i1", "published", admin)

	assert.ErrorIs(t, err, core.ErrInvalidTransition)
	assert.Equal(t, string(moderation.StatusDraft), ingested.byID["i1"].Status)
}

func TestUpdateItemStatus_UnknownStatus(t *testing.T) {
	ingested := newFakeIngestedRepo(&IngestedItem{
		ID:     "i1",
		Status: string(moderation.StatusPending),
	})
	svc := newTestService(newFakeArticleRepo(), ingested, &fakeViewRepo{})

	_, err := svc.UpdateItemStatus(context.Background(), "i1", "archived", admin)

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
