// AngelaMos | 2026
// repository_test.go

package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestSubscribeReactivatesOnConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	subscribedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO newsletter_subscribers`).
		WithArgs("sub-1", "fan@example.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "subscribed_at"}).
				AddRow("sub-1", subscribedAt),
		)

	sub := &Subscriber{ID: "sub-1", Email: "fan@example.com"}
	require.NoError(t, repo.Subscribe(context.Background(), sub))
	assert.Equal(t, subscribedAt, sub.SubscribedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE newsletter_subscribers`).
		WithArgs("ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Unsubscribe(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, core.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	subscribedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, email, subscribed_at, unsubscribed_at`).
		WithArgs("fan@example.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "email", "subscribed_at", "unsubscribed_at"}).
				AddRow("sub-1", "fan@example.com", subscribedAt, nil),
		)

	sub, err := repo.GetByEmail(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.True(t, sub.Active())

	mock.ExpectQuery(`SELECT id, email, subscribed_at, unsubscribed_at`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestUnsubscribeActiveSubscriber(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE newsletter_subscribers`).
		WithArgs("fan@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Unsubscribe(context.Background(), "fan@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
