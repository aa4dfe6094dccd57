package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/character/model"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/cache"
)

type postgresRepository struct {
	db    database.DBTX
	cache cache.Cache
}

func NewPostgresRepository(db database.DBTX, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{db: db, cache: cache}
}

const (
	characterCacheKeyPrefix = "character:"
	cacheTTL                = 15 * time.Minute

	characterColumns = `id, book_id, name, slug, role, description, photo_description, created_at, updated_at`
)

func scanCharacter(row pgx.Row, c *model.Character) error {
	return row.Scan(
		&c.ID,
		&c.BookID,
		&c.Name,
		&c.Slug,
		&c.Role,
		&c.Description,
		&c.PhotoDescription,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Character) (*model.Character, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	query := `
        INSERT INTO characters (book_id, name, slug, role, description, photo_description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + characterColumns

	var created model.Character
	err := scanCharacter(r.db.QueryRow(ctx, query,
		c.BookID,
		name,
		utils.Slugify(name),
		c.Role,
		c.Description,
		c.PhotoDescription,
	), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, model.ErrBookRequired
		}
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Character, error) {
	cacheKey := characterCacheKeyPrefix + strconv.FormatInt(id, 10)

	var c model.Character
	if found, err := r.cache.Get(ctx, cacheKey, &c); err == nil && found {
		return &c, nil
	}

	if err := scanCharacter(r.db.QueryRow(ctx, `SELECT `+characterColumns+` FROM characters WHERE id = $1`, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, c, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache character")
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.CharacterFilter) ([]model.Character, int64, error) {
	var where []string
	args := []interface{}{}
	argPos := 1

	if filter.BookID > 0 {
		where = append(where, fmt.Sprintf("book_id = $%d", argPos))
		args = append(args, filter.BookID)
		argPos++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+utils.EscapeLike(filter.Search)+"%")
		argPos++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + utils.JoinWithAnd(where)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM characters`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count characters: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM characters%s ORDER BY id LIMIT $%d OFFSET $%d`,
		characterColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	characters, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return characters, total, nil
}

func (r *postgresRepository) ListByBook(ctx context.Context, bookID int64) ([]model.Character, error) {
	return r.query(ctx, `SELECT `+characterColumns+` FROM characters WHERE book_id = $1 ORDER BY id`, bookID)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.Character, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	characters := []model.Character{}
	for rows.Next() {
		var c model.Character
		if err := scanCharacter(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", err)
	}
	return characters, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Character) (*model.Character, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	query := `
        UPDATE characters
        SET name = $2, slug = $3, role = $4, description = $5,
            photo_description = $6, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + characterColumns

	var updated model.Character
	err := scanCharacter(r.db.QueryRow(ctx, query,
		c.ID,
		name,
		utils.Slugify(name),
		c.Role,
		c.Description,
		c.PhotoDescription,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to update character: %w", err)
	}

	r.invalidate(ctx, updated.ID)
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCharacterNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	key := characterCacheKeyPrefix + strconv.FormatInt(id, 10)
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate character cache")
	}
}
