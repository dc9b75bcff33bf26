// AngelaMos | 2026
// ingested_repository.go

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/pitchside/internal/core"
	"github.com/carterperez-dev/pitchside/internal/moderation"
)

type IngestedRepository interface {
	Create(ctx context.Context, item *IngestedItem) error
	GetByID(ctx context.Context, id string) (*IngestedItem, error)
	GetBySlug(ctx context.Context, kind Kind, slug string) (*IngestedItem, error)
	ListPublished(ctx context.Context, kind Kind, params ListParams) ([]IngestedItem, int, error)
	ListPending(ctx context.Context, kind Kind) ([]IngestedItem, error)
	CountByStatus(ctx context.Context, kind Kind) (map[string]int, error)
	Save(ctx context.Context, item *IngestedItem) error
	Delete(ctx context.Context, id string) error
}

type ingestedRepository struct {
	db core.DBTX
}

func NewIngestedRepository(db core.DBTX) IngestedRepository {
	return &ingestedRepository{db: db}
}

const ingestedColumns = `id, kind, slug, title, body, source, author,
	       image_url, status, extra, published_at, moderated_by,
	       moderated_at, created_at, updated_at`

func (r *ingestedRepository) Create(ctx context.Context, item *IngestedItem) error {
	query := `
		INSERT INTO ingested_content (id, kind, slug, title, body, source,
		                              author, image_url, status, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, item, query,
		item.ID,
		item.Kind,
		item.Slug,
		item.Title,
		item.Body,
		item.Source,
		item.Author,
		item.ImageURL,
		item.Status,
		item.Extra,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create ingested item: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create ingested item: %w", err)
	}

	return nil
}

func (r *ingestedRepository) GetByID(
	ctx context.Context,
	id string,
) (*IngestedItem, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM ingested_content WHERE id = $1`, ingestedColumns,
	)

	var item IngestedItem
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ingested item: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ingested item: %w", err)
	}

	return &item, nil
}

func (r *ingestedRepository) GetBySlug(
	ctx context.Context,
	kind Kind,
	slug string,
) (*IngestedItem, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM ingested_content WHERE kind = $1 AND slug = $2`,
		ingestedColumns,
	)

	var item IngestedItem
	err := r.db.GetContext(ctx, &item, query, kind, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ingested item by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ingested item by slug: %w", err)
	}

	return &item, nil
}

func (r *ingestedRepository) ListPublished(
	ctx context.Context,
	kind Kind,
	params ListParams,
) ([]IngestedItem, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
	args = append(args, moderation.StatusPublished)
	argIdx++

	if kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, kind)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM ingested_content WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count ingested items: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ingested_content
		WHERE %s
		ORDER BY published_at DESC
		LIMIT $%d OFFSET $%d`,
		ingestedColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var items []IngestedItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list ingested items: %w", err)
	}

	return items, total, nil
}

// ListPending returns the moderation queue: everything not yet published,
// oldest first so reviewers work in arrival order.
func (r *ingestedRepository) ListPending(
	ctx context.Context,
	kind Kind,
) ([]IngestedItem, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("status != $%d", argIdx))
	args = append(args, moderation.StatusPublished)
	argIdx++

	if kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, kind)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ingested_content
		WHERE %s
		ORDER BY created_at ASC`,
		ingestedColumns, strings.Join(conditions, " AND "))

	var items []IngestedItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list pending items: %w", err)
	}

	return items, nil
}

func (r *ingestedRepository) CountByStatus(
	ctx context.Context,
	kind Kind,
) (map[string]int, error) {
	var conditions []string
	var args []any

	if kind != "" {
		conditions = append(conditions, "kind = $1")
		args = append(args, kind)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT status, COUNT(*) AS count
		FROM ingested_content
		%s
		GROUP BY status`,
		whereClause)

	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *ingestedRepository) Save(ctx context.Context, item *IngestedItem) error {
	query := `
		UPDATE ingested_content
		SET title = $2, body = $3, source = $4, author = $5, image_url = $6,
		    status = $7, extra = $8, published_at = $9,
		    moderated_by = $10, moderated_at = $11,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &item.UpdatedAt, query,
		item.ID,
		item.Title,
		item.Body,
		item.Source,
		item.Author,
		item.ImageURL,
		item.Status,
		item.Extra,
		item.PublishedAt,
		item.ModeratedBy,
		item.ModeratedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("save ingested item: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("save ingested item: %w", err)
	}

	return nil
}

func (r *ingestedRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx, `DELETE FROM ingested_content WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete ingested item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ingested item: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete ingested item: %w", core.ErrNotFound)
	}

	return nil
}
