// AngelaMos | 2026
// handler_test.go

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/middleware"
)

// viewerAs stands in for OptionalAuth: it injects a fixed tier, or nothing
// for anonymous requests.
func viewerAs(tier string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tier != "" {
				ctx := context.WithValue(r.Context(), middleware.UserTierKey, tier)
				ctx = context.WithValue(ctx, middleware.UserIDKey, "u-1")
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(articles *fakeArticleRepo, tier string) *chi.Mux {
	svc := newTestService(articles, newFakeIngestedRepo(), &fakeViewRepo{})
	handler := NewHandler(svc)

	router := chi.NewRouter()
	handler.RegisterRoutes(router, viewerAs(tier))
	return router
}

func premiumArticle() *Article {
	return &Article{
		ID:          "a1",
		Slug:        "tactical-deep-dive",
		Title:       "Tactical Deep Dive",
		Teaser:      "How the midfield press broke down",
		Body:        "The full analysis",
		AccessTier:  "premium",
		IsPublished: true,
	}
}

func TestGetArticle_AnonymousSeesLockedBody(t *testing.T) {
	router := newTestRouter(newFakeArticleRepo(premiumArticle()), "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/tactical-deep-dive", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ArticleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Tactical Deep Dive", resp.Title)
	assert.NotEmpty(t, resp.Teaser)
	assert.Nil(t, resp.Body)
	assert.True(t, resp.Locked)
	assert.Contains(t, resp.LockReason, "premium")
}

func TestGetArticle_PremiumViewerSeesBody(t *testing.T) {
	router := newTestRouter(newFakeArticleRepo(premiumArticle()), "premium")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/tactical-deep-dive", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ArticleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotNil(t, resp.Body)
	assert.Equal(t, "The full analysis", *resp.Body)
	assert.False(t, resp.Locked)
}

func TestGetArticle_UnknownSlugIs404(t *testing.T) {
	router := newTestRouter(newFakeArticleRepo(), "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListArticles_StorageErrorDegradesToEmpty(t *testing.T) {
	articles := newFakeArticleRepo(premiumArticle())
	articles.listErr = fmt.Errorf("list articles: %w", core.ErrStorageUnavailable)
	router := newTestRouter(articles, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp core.PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	data, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Empty(t, data)
	assert.Zero(t, resp.Pagination.Total)
}
