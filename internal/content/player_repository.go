// AngelaMos | 2026
// player_repository.go

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type PlayerRepository interface {
	Create(ctx context.Context, player *Player) error
	GetBySlug(ctx context.Context, slug string) (*Player, error)
	List(ctx context.Context, params PlayerListParams) ([]Player, int, error)
	Save(ctx context.Context, player *Player) error
	Delete(ctx context.Context, id string) error
}

type PlayerListParams struct {
	Page     int
	PageSize int
	Team     string
	Position string
}

func (p *PlayerListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *PlayerListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type playerRepository struct {
	db core.DBTX
}

func NewPlayerRepository(db core.DBTX) PlayerRepository {
	return &playerRepository{db: db}
}

const playerColumns = `id, slug, name, position, team, nationality, bio,
	       stats, access_tier, created_at, updated_at`

func (r *playerRepository) Create(ctx context.Context, player *Player) error {
	query := `
		INSERT INTO players (id, slug, name, position, team, nationality,
		                     bio, stats, access_tier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, player, query,
		player.ID,
		player.Slug,
		player.Name,
		player.Position,
		player.Team,
		player.Nationality,
		player.Bio,
		player.Stats,
		player.AccessTier,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create player: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create player: %w", err)
	}

	return nil
}

func (r *playerRepository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Player, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM players WHERE slug = $1`, playerColumns,
	)

	var player Player
	err := r.db.GetContext(ctx, &player, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get player: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	return &player, nil
}

func (r *playerRepository) List(
	ctx context.Context,
	params PlayerListParams,
) ([]Player, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Team != "" {
		conditions = append(conditions, fmt.Sprintf("team = $%d", argIdx))
		args = append(args, params.Team)
		argIdx++
	}

	if params.Position != "" {
		conditions = append(conditions, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, params.Position)
		argIdx++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM players WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count players: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM players
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		playerColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var players []Player
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list players: %w", err)
	}

	return players, total, nil
}

func (r *playerRepository) Save(ctx context.Context, player *Player) error {
	query := `
		UPDATE players
		SET name = $2, position = $3, team = $4, nationality = $5,
		    bio = $6, stats = $7, access_tier = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &player.UpdatedAt, query,
		player.ID,
		player.Name,
		player.Position,
		player.Team,
		player.Nationality,
		player.Bio,
		player.Stats,
		player.AccessTier,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("save player: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}

	return nil
}

func (r *playerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete player: %w", core.ErrNotFound)
	}

	return nil
}
