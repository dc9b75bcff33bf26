// AngelaMos | 2026
// service_test.go

package matches

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/config"
	"github.com/carterperez-dev/pitchside/internal/core"
)

type fakeCacheRepo struct {
	entries map[int64]*CacheEntry
	upserts int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[int64]*CacheEntry)}
}

func (f *fakeCacheRepo) Upsert(_ context.Context, entry *CacheEntry) error {
	f.upserts++
	f.entries[entry.APIFootballID] = entry
	return nil
}

func (f *fakeCacheRepo) GetFresh(_ context.Context, id int64, now time.Time) (*CacheEntry, error) {
	entry, ok := f.entries[id]
	if !ok || !entry.ExpiresAt.After(now) {
		return nil, fmt.Errorf("get fresh match: %w", core.ErrNotFound)
	}
	return entry, nil
}

func (f *fakeCacheRepo) GetAny(_ context.Context, id int64) (*CacheEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, fmt.Errorf("get cached match: %w", core.ErrNotFound)
	}
	return entry, nil
}

func (f *fakeCacheRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, entry := range f.entries {
		if !entry.ExpiresAt.After(now) {
			delete(f.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func fixtureJSON(id int64, status, date string) string {
	return fmt.Sprintf(`{
		"fixture": {
			"id": %d,
			"date": %q,
			"status": {"short": %q, "elapsed": null},
			"venue": {"name": "Santiago Bernabéu"}
		},
		"league": {"round": "Regular Season - 12"},
		"teams": {
			"home": {"id": 541, "name": "Real Madrid", "logo": "", "winner": null},
			"away": {"id": 529, "name": "Barcelona", "logo": "", "winner": null}
		},
		"goals": {"home": null, "away": null}
	}`, id, date, status)
}

func envelope(fixtures ...string) string {
	joined := ""
	for i, f := range fixtures {
		if i > 0 {
			joined += ","
		}
		joined += f
	}
	return fmt.Sprintf(`{"get": "fixtures", "results": %d, "response": [%s]}`, len(fixtures), joined)
}

func upstreamServer(t *testing.T, calls *atomic.Int64, body string, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	return srv
}

func testConfig(baseURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		Timeout:       2 * time.Second,
		LeagueID:      140,
		Season:        2026,
		FixtureTTL:    15 * time.Minute,
		ListTTL:       5 * time.Minute,
		LookaheadDays: 14,
		ServeStale:    true,
	}
}

func TestGetMatch_SecondReadServedFromCache(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, envelope(fixtureJSON(100, "NS", "2026-09-05T20:00:00Z")), http.StatusOK)

	cfg := testConfig(srv.URL)
	cache := newFakeCacheRepo()
	svc := NewService(NewClient(cfg), cache, nil, cfg)

	first, err := svc.GetMatch(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.ID)
	assert.Equal(t, "Real Madrid", first.Home.Name)
	assert.False(t, first.Stale)

	second, err := svc.GetMatch(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), second.ID)

	assert.Equal(t, int64(1), calls.Load(), "fresh cache hit must not call upstream")
	assert.Equal(t, 1, cache.upserts)
}

func TestGetMatch_ExpiredEntryRefetches(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, envelope(fixtureJSON(100, "FT", "2026-09-05T20:00:00Z")), http.StatusOK)

	cfg := testConfig(srv.URL)
	cache := newFakeCacheRepo()
	svc := NewService(NewClient(cfg), cache, nil, cfg)

	clock := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	_, err := svc.GetMatch(context.Background(), 100)
	require.NoError(t, err)

	clock = clock.Add(16 * time.Minute)

	_, err = svc.GetMatch(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 2, cache.upserts)
}

func TestGetMatch_StaleFallbackWhenUpstreamDown(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, `{"error": "down"}`, http.StatusInternalServerError)

	cfg := testConfig(srv.URL)
	cache := newFakeCacheRepo()
	cache.entries[100] = &CacheEntry{
		APIFootballID: 100,
		Payload:       json.RawMessage(fixtureJSON(100, "FT", "2026-09-01T20:00:00Z")),
		ExpiresAt:     time.Now().Add(-time.Hour),
	}
	svc := NewService(NewClient(cfg), cache, nil, cfg)

	match, err := svc.GetMatch(context.Background(), 100)

	require.NoError(t, err)
	assert.True(t, match.Stale)
	assert.Equal(t, int64(100), match.ID)
}

func TestGetMatch_StaleFallbackDisabled(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, `{"error": "down"}`, http.StatusInternalServerError)

	cfg := testConfig(srv.URL)
	cfg.ServeStale = false
	cache := newFakeCacheRepo()
	cache.entries[100] = &CacheEntry{
		APIFootballID: 100,
		Payload:       json.RawMessage(fixtureJSON(100, "FT", "2026-09-01T20:00:00Z")),
		ExpiresAt:     time.Now().Add(-time.Hour),
	}
	svc := NewService(NewClient(cfg), cache, nil, cfg)

	_, err := svc.GetMatch(context.Background(), 100)

	assert.ErrorIs(t, err, core.ErrUpstreamUnavailable)
}

func TestGetMatch_NoCacheNoUpstream(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, `{"error": "down"}`, http.StatusInternalServerError)

	cfg := testConfig(srv.URL)
	svc := NewService(NewClient(cfg), newFakeCacheRepo(), nil, cfg)

	_, err := svc.GetMatch(context.Background(), 100)

	assert.ErrorIs(t, err, core.ErrUpstreamUnavailable)
}

func TestGetMatch_RateLimited(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, `{}`, http.StatusTooManyRequests)

	cfg := testConfig(srv.URL)
	cfg.ServeStale = false
	svc := NewService(NewClient(cfg), newFakeCacheRepo(), nil, cfg)

	_, err := svc.GetMatch(context.Background(), 100)

	assert.ErrorIs(t, err, core.ErrUpstreamRateLimited)
}

func TestGetMatch_SchemaMismatch(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, `{"response": "not-an-array"}`, http.StatusOK)

	cfg := testConfig(srv.URL)
	cfg.ServeStale = false
	svc := NewService(NewClient(cfg), newFakeCacheRepo(), nil, cfg)

	_, err := svc.GetMatch(context.Background(), 100)

	assert.ErrorIs(t, err, core.ErrUpstreamSchema)
}

func TestGetTodaysMatches_ListCachedInRedis(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, envelope(
		fixtureJSON(1, "NS", "2026-09-01T18:00:00Z"),
		fixtureJSON(2, "NS", "2026-09-01T20:00:00Z"),
	), http.StatusOK)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := testConfig(srv.URL)
	svc := NewService(NewClient(cfg), newFakeCacheRepo(), redisClient, cfg)

	first, err := svc.GetTodaysMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.GetTodaysMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)

	assert.Equal(t, int64(1), calls.Load(), "second list read must come from redis")
}

func TestGetTodaysMatches_RedisDownDegradesToFetch(t *testing.T) {
	var calls atomic.Int64
	srv := upstreamServer(t, &calls, envelope(fixtureJSON(1, "NS", "2026-09-01T18:00:00Z")), http.StatusOK)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	cfg := testConfig(srv.URL)
	svc := NewService(NewClient(cfg), newFakeCacheRepo(), redisClient, cfg)

	matchList, err := svc.GetTodaysMatches(context.Background())

	require.NoError(t, err)
	assert.Len(t, matchList, 1)
}

type fakeUpstream struct {
	UpstreamClient
	fixtures []json.RawMessage
}

func (f *fakeUpstream) FixturesByDate(_ context.Context, _, _ time.Time) ([]json.RawMessage, error) {
	return f.fixtures, nil
}

func currentMatchService(now time.Time, fixtures ...string) *Service {
	raws := make([]json.RawMessage, len(fixtures))
	for i, f := range fixtures {
		raws[i] = json.RawMessage(f)
	}

	cfg := testConfig("http://unused")
	svc := NewService(&fakeUpstream{fixtures: raws}, newFakeCacheRepo(), nil, cfg)
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetCurrentMatch_LiveBeatsEverything(t *testing.T) {
	now := time.Date(2026, 9, 1, 20, 30, 0, 0, time.UTC)
	svc := currentMatchService(now,
		fixtureJSON(1, "FT", "2026-08-30T20:00:00Z"),
		fixtureJSON(2, "2H", "2026-09-01T20:00:00Z"),
		fixtureJSON(3, "NS", "2026-09-03T20:00:00Z"),
	)

	match, err := svc.GetCurrentMatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), match.ID)
}

func TestGetCurrentMatch_NextKickoffWhenNothingLive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := currentMatchService(now,
		fixtureJSON(1, "FT", "2026-08-30T20:00:00Z"),
		fixtureJSON(3, "NS", "2026-09-07T20:00:00Z"),
		fixtureJSON(2, "NS", "2026-09-03T20:00:00Z"),
	)

	match, err := svc.GetCurrentMatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), match.ID, "earliest upcoming kickoff wins")
}

func TestGetCurrentMatch_FallsBackToMostRecentFinished(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := currentMatchService(now,
		fixtureJSON(1, "FT", "2026-08-23T20:00:00Z"),
		fixtureJSON(2, "FT", "2026-08-30T20:00:00Z"),
	)

	match, err := svc.GetCurrentMatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), match.ID)
}

func TestGetCurrentMatch_EmptyWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := currentMatchService(now)

	_, err := svc.GetCurrentMatch(context.Background())

	assert.ErrorIs(t, err, core.ErrNotFound)
}
