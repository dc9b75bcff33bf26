// AngelaMos | 2026
// repository.go

package newsletter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type Repository interface {
	Subscribe(ctx context.Context, sub *Subscriber) error
	Unsubscribe(ctx context.Context, email string) error
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	CountActive(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Subscribe upserts on email so re-subscribing after an unsubscribe
// reactivates the same row.
func (r *repository) Subscribe(ctx context.Context, sub *Subscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET
			unsubscribed_at = NULL,
			subscribed_at = NOW()
		RETURNING id, subscribed_at`

	err := r.db.GetContext(ctx, sub, query, sub.ID, sub.Email)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	return nil
}

func (r *repository) Unsubscribe(ctx context.Context, email string) error {
	query := `
		UPDATE newsletter_subscribers
		SET unsubscribed_at = NOW()
		WHERE email = $1 AND unsubscribed_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("unsubscribe: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Subscriber, error) {
	query := `
		SELECT id, email, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
		WHERE email = $1`

	var sub Subscriber
	err := r.db.GetContext(ctx, &sub, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscriber: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}

	return &sub, nil
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(
		ctx,
		&count,
		`SELECT COUNT(*) FROM newsletter_subscribers WHERE unsubscribed_at IS NULL`,
	)
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}

	return count, nil
}
