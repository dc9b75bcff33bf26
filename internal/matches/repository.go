// AngelaMos | 2026
// repository.go

package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type CacheRepository interface {
	Upsert(ctx context.Context, entry *CacheEntry) error
	GetFresh(ctx context.Context, apiFootballID int64, now time.Time) (*CacheEntry, error)
	GetAny(ctx context.Context, apiFootballID int64) (*CacheEntry, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type cacheRepository struct {
	db core.DBTX
}

func NewCacheRepository(db core.DBTX) CacheRepository {
	return &cacheRepository{db: db}
}

func (r *cacheRepository) Upsert(ctx context.Context, entry *CacheEntry) error {
	query := `
		INSERT INTO match_cache (id, api_football_id, payload, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (api_football_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at,
			expires_at = EXCLUDED.expires_at`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.APIFootballID,
		entry.Payload,
		entry.FetchedAt,
		entry.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert match cache: %w", err)
	}

	return nil
}

// GetFresh returns the cached fixture only while it is inside its freshness
// window; an expired row reads as a miss.
func (r *cacheRepository) GetFresh(
	ctx context.Context,
	apiFootballID int64,
	now time.Time,
) (*CacheEntry, error) {
	query := `
		SELECT id, api_football_id, payload, fetched_at, expires_at
		FROM match_cache
		WHERE api_football_id = $1 AND expires_at > $2`

	var entry CacheEntry
	if err := r.db.GetContext(ctx, &entry, query, apiFootballID, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get fresh match: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get fresh match: %w", err)
	}

	return &entry, nil
}

// GetAny ignores expiry; the stale-fallback path uses it when the upstream
// is unreachable.
func (r *cacheRepository) GetAny(
	ctx context.Context,
	apiFootballID int64,
) (*CacheEntry, error) {
	query := `
		SELECT id, api_football_id, payload, fetched_at, expires_at
		FROM match_cache
		WHERE api_football_id = $1`

	var entry CacheEntry
	if err := r.db.GetContext(ctx, &entry, query, apiFootballID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get cached match: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get cached match: %w", err)
	}

	return &entry, nil
}

func (r *cacheRepository) DeleteExpired(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM match_cache WHERE expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired matches: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired matches: %w", err)
	}

	return deleted, nil
}
