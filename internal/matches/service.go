// AngelaMos | 2026
// service.go

package matches

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/pitchside/internal/config"
	"github.com/carterperez-dev/pitchside/internal/core"
)

type Service struct {
	client UpstreamClient
	cache  CacheRepository
	redis  *redis.Client
	cfg    config.UpstreamConfig
	now    func() time.Time
}

func NewService(
	client UpstreamClient,
	cache CacheRepository,
	redisClient *redis.Client,
	cfg config.UpstreamConfig,
) *Service {
	return &Service{
		client: client,
		cache:  cache,
		redis:  redisClient,
		cfg:    cfg,
		now:    time.Now,
	}
}

// GetMatch is the cache-aside read: a fresh row short-circuits the upstream
// entirely; a miss fetches, validates and re-caches. When the upstream is
// down and serve_stale is on, an expired row is served flagged stale rather
// than failing the read.
func (s *Service) GetMatch(ctx context.Context, id int64) (*Match, error) {
	now := s.now()

	if entry, err := s.cache.GetFresh(ctx, id, now); err == nil {
		return projectFixture(entry.Payload)
	}

	raw, err := s.client.FixtureByID(ctx, id)
	if err != nil {
		if s.cfg.ServeStale {
			if entry, staleErr := s.cache.GetAny(ctx, id); staleErr == nil {
				slog.Warn("serving stale match", "fixture_id", id, "error", err)
				match, projErr := projectFixture(entry.Payload)
				if projErr != nil {
					return nil, projErr
				}
				match.Stale = true
				return match, nil
			}
		}
		return nil, err
	}

	entry := &CacheEntry{
		ID:            uuid.New().String(),
		APIFootballID: id,
		Payload:       raw,
		FetchedAt:     now,
		ExpiresAt:     now.Add(s.cfg.FixtureTTL),
	}
	if err := s.cache.Upsert(ctx, entry); err != nil {
		// A failed cache write must not fail the read.
		slog.Warn("match cache write failed", "fixture_id", id, "error", err)
	}

	return projectFixture(raw)
}

func (s *Service) GetTodaysMatches(ctx context.Context) ([]Match, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	key := fmt.Sprintf("matches:today:%s", today.Format("2006-01-02"))

	return s.listCached(ctx, key, func() ([]Match, error) {
		raws, err := s.client.FixturesByDate(ctx, today, today)
		if err != nil {
			return nil, err
		}
		return projectFixtures(raws)
	})
}

func (s *Service) GetMatchesByRound(ctx context.Context, round string) ([]Match, error) {
	key := fmt.Sprintf("matches:round:%s", round)

	return s.listCached(ctx, key, func() ([]Match, error) {
		raws, err := s.client.FixturesByRound(ctx, round)
		if err != nil {
			return nil, err
		}
		return projectFixtures(raws)
	})
}

func (s *Service) GetRounds(ctx context.Context) ([]string, error) {
	const key = "matches:rounds"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var rounds []string
			if err := json.Unmarshal(cached, &rounds); err == nil {
				return rounds, nil
			}
		}
	}

	rounds, err := s.client.Rounds(ctx)
	if err != nil {
		return nil, err
	}

	s.storeList(ctx, key, rounds)

	return rounds, nil
}

// GetCurrentMatch picks the single most relevant fixture: anything live
// wins; otherwise the next kickoff inside the lookahead window; otherwise
// the most recently finished match.
func (s *Service) GetCurrentMatch(ctx context.Context) (*Match, error) {
	now := s.now()
	lookahead := time.Duration(s.cfg.LookaheadDays) * 24 * time.Hour

	window, err := s.matchesInWindow(ctx, now.Add(-lookahead), now.Add(lookahead))
	if err != nil {
		return nil, err
	}

	if len(window) == 0 {
		return nil, fmt.Errorf("current match: %w", core.ErrNotFound)
	}

	sort.Slice(window, func(i, j int) bool {
		return window[i].Date.Before(window[j].Date)
	})

	for i := range window {
		if window[i].Live() {
			return &window[i], nil
		}
	}

	for i := range window {
		if window[i].Upcoming() && window[i].Date.After(now) {
			return &window[i], nil
		}
	}

	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Finished() {
			return &window[i], nil
		}
	}

	return nil, fmt.Errorf("current match: %w", core.ErrNotFound)
}

func (s *Service) GetLineups(ctx context.Context, fixtureID int64) (json.RawMessage, error) {
	return s.rawCached(ctx, fmt.Sprintf("matches:lineups:%d", fixtureID), func() (json.RawMessage, error) {
		return s.client.Lineups(ctx, fixtureID)
	})
}

func (s *Service) GetStatistics(ctx context.Context, fixtureID int64) (json.RawMessage, error) {
	return s.rawCached(ctx, fmt.Sprintf("matches:statistics:%d", fixtureID), func() (json.RawMessage, error) {
		return s.client.Statistics(ctx, fixtureID)
	})
}

// listCached wraps a fan-out fetch with the redis list cache. Redis being
// down degrades to a direct fetch, never to a failed read.
func (s *Service) listCached(
	ctx context.Context,
	key string,
	fetch func() ([]Match, error),
) ([]Match, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var matchList []Match
			if err := json.Unmarshal(cached, &matchList); err == nil {
				return matchList, nil
			}
		}
	}

	matchList, err := fetch()
	if err != nil {
		return nil, err
	}

	s.storeList(ctx, key, matchList)

	return matchList, nil
}

func (s *Service) rawCached(
	ctx context.Context,
	key string,
	fetch func() (json.RawMessage, error),
) (json.RawMessage, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		}
	}

	raw, err := fetch()
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, []byte(raw), s.cfg.ListTTL).Err(); err != nil {
			slog.Warn("redis cache write failed", "key", key, "error", err)
		}
	}

	return raw, nil
}

func (s *Service) storeList(ctx context.Context, key string, value any) {
	if s.redis == nil {
		return
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, key, encoded, s.cfg.ListTTL).Err(); err != nil {
		slog.Warn("redis cache write failed", "key", key, "error", err)
	}
}

func (s *Service) matchesInWindow(
	ctx context.Context,
	from, to time.Time,
) ([]Match, error) {
	key := fmt.Sprintf(
		"matches:window:%s:%s",
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)

	return s.listCached(ctx, key, func() ([]Match, error) {
		raws, err := s.client.FixturesByDate(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return projectFixtures(raws)
	})
}
