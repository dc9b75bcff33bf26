// AngelaMos | 2026
// article_repository.go

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *Article) error
	GetByID(ctx context.Context, id string) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	ListPublished(ctx context.Context, params ListParams) ([]Article, int, error)
	ListUnpublished(ctx context.Context) ([]Article, error)
	Save(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	db core.DBTX
}

func NewArticleRepository(db core.DBTX) ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `id, slug, title, teaser, body, category, access_tier,
	       author, image_url, is_published, published_at, moderated_by,
	       moderated_at, created_at, updated_at`

func (r *articleRepository) Create(ctx context.Context, article *Article) error {
	query := `
		INSERT INTO articles (id, slug, title, teaser, body, category,
		                      access_tier, author, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, article, query,
		article.ID,
		article.Slug,
		article.Title,
		article.Teaser,
		article.Body,
		article.Category,
		article.AccessTier,
		article.Author,
		article.ImageURL,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create article: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE id = $1`, articleColumns,
	)

	var article Article
	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	return &article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE slug = $1`, articleColumns,
	)

	var article Article
	err := r.db.GetContext(ctx, &article, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}

	return &article, nil
}

func (r *articleRepository) ListPublished(
	ctx context.Context,
	params ListParams,
) ([]Article, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "is_published = TRUE")

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM articles WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM articles
		WHERE %s
		ORDER BY published_at DESC
		LIMIT $%d OFFSET $%d`,
		articleColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var articles []Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	return articles, total, nil
}

func (r *articleRepository) ListUnpublished(ctx context.Context) ([]Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM articles
		WHERE is_published = FALSE
		ORDER BY updated_at DESC`,
		articleColumns)

	var articles []Article
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("list unpublished articles: %w", err)
	}

	return articles, nil
}

// Save persists every mutable field, including the moderation stamps set by
// the state machine. Last write wins at the row level.
func (r *articleRepository) Save(ctx context.Context, article *Article) error {
	query := `
		UPDATE articles
		SET title = $2, teaser = $3, body = $4, category = $5,
		    access_tier = $6, author = $7, image_url = $8,
		    is_published = $9, published_at = $10,
		    moderated_by = $11, moderated_at = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &article.UpdatedAt, query,
		article.ID,
		article.Title,
		article.Teaser,
		article.Body,
		article.Category,
		article.AccessTier,
		article.Author,
		article.ImageURL,
		article.IsPublished,
		article.PublishedAt,
		article.ModeratedBy,
		article.ModeratedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("save article: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("save article: %w", err)
	}

	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete article: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
