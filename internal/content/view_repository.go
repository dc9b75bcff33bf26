// AngelaMos | 2026
// view_repository.go

package content

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pitchside/internal/core"
)

// ViewRepository records content impressions. Writes are best-effort from
// the caller's perspective; a lost view is not worth failing a read for.
type ViewRepository interface {
	RecordView(ctx context.Context, contentType, contentID string, viewerID *string) error
}

type viewRepository struct {
	db core.DBTX
}

func NewViewRepository(db core.DBTX) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) RecordView(
	ctx context.Context,
	contentType, contentID string,
	viewerID *string,
) error {
	query := `
		INSERT INTO content_views (content_type, content_id, viewer_id)
		VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, contentType, contentID, viewerID); err != nil {
		return fmt.Errorf("record view: %w", err)
	}

	return nil
}
