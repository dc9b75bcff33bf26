// AngelaMos | 2026
// repository_test.go

package matches

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func TestCacheRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCacheRepository(db)

	entry := &CacheEntry{
		ID:            "e1",
		APIFootballID: 100,
		Payload:       json.RawMessage(`{"fixture":{"id":100}}`),
		FetchedAt:     time.Now(),
		ExpiresAt:     time.Now().Add(15 * time.Minute),
	}

	mock.ExpectExec(`INSERT INTO match_cache`).
		WithArgs(entry.ID, entry.APIFootballID, entry.Payload, entry.FetchedAt, entry.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_GetFresh_ExpiredRowIsMiss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCacheRepository(db)

	now := time.Now()

	mock.ExpectQuery(`SELECT id, api_football_id, payload, fetched_at, expires_at`).
		WithArgs(int64(100), now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetFresh(context.Background(), 100, now)

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepository_GetFresh_Hit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCacheRepository(db)

	now := time.Now()
	payload := []byte(`{"fixture":{"id":100}}`)

	rows := sqlmock.NewRows([]string{"id", "api_football_id", "payload", "fetched_at", "expires_at"}).
		AddRow("e1", int64(100), payload, now.Add(-time.Minute), now.Add(14*time.Minute))

	mock.ExpectQuery(`SELECT id, api_football_id, payload, fetched_at, expires_at`).
		WithArgs(int64(100), now).
		WillReturnRows(rows)

	entry, err := repo.GetFresh(context.Background(), 100, now)

	require.NoError(t, err)
	assert.Equal(t, int64(100), entry.APIFootballID)
	assert.JSONEq(t, string(payload), string(entry.Payload))
}

func TestCacheRepository_DeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCacheRepository(db)

	now := time.Now()

	mock.ExpectExec(`DELETE FROM match_cache WHERE expires_at`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}
