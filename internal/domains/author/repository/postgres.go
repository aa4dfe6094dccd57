package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface.
// db is either the pool or a transaction.
type postgresRepository struct {
	db    database.DBTX
	cache cache.Cache
}

func NewPostgresRepository(db database.DBTX, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		db:    db,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorSlugKeyPrefix  = "author:slug:"
	cacheTTL             = 15 * time.Minute

	authorColumns = `id, name, slug, country, biography, birth_date, photo_description, created_at, updated_at`
)

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.Name,
		&a.Slug,
		&a.Country,
		&a.Biography,
		&a.BirthDate,
		&a.PhotoDescription,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	query := `
        INSERT INTO authors (name, slug, country, biography, birth_date, photo_description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.db.QueryRow(ctx, query,
		name,
		utils.Slugify(name),
		a.Country,
		a.Biography,
		a.BirthDate,
		a.PhotoDescription,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

// GetByID retrieves author by id with caching
func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + strconv.FormatInt(id, 10)

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	if err := scanAuthor(r.db.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache author")
	}
	return &a, nil
}

// GetBySlug returns the oldest author with this slug. Slugs are not unique.
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Author, error) {
	cacheKey := authorSlugKeyPrefix + slug

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE slug = $1 ORDER BY id LIMIT 1`
	if err := scanAuthor(r.db.QueryRow(ctx, query, slug), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by slug: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache author")
	}
	return &a, nil
}

// List retrieves a page of authors with filtering and sorting
func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	var where []string
	args := []interface{}{}
	argPos := 1

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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	sortColumn := "created_at"
	if filter.SortBy == "name" {
		sortColumn = "name"
	}
	sortOrder := "DESC"
	if filter.Order == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM authors%s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		authorColumns, whereClause, sortColumn, sortOrder, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	authors, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	return r.query(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY id`)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}

// Update re-derives the slug from the (possibly new) name.
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	previous, _ := r.GetByID(ctx, a.ID)

	query := `
        UPDATE authors
        SET name = $2, slug = $3, country = $4, biography = $5, birth_date = $6,
            photo_description = $7, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + authorColumns

	var updated model.Author
	err := scanAuthor(r.db.QueryRow(ctx, query,
		a.ID,
		name,
		utils.Slugify(name),
		a.Country,
		a.Biography,
		a.BirthDate,
		a.PhotoDescription,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx, previous)
	r.invalidate(ctx, &updated)
	return &updated, nil
}

// Delete removes the author; books and characters go with it (ON DELETE CASCADE).
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	previous, _ := r.GetByID(ctx, id)

	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidate(ctx, previous)
	// cascaded rows
	for _, pattern := range []string{"book:*", "character:*"} {
		if err := r.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("Failed to invalidate cascaded cache")
		}
	}
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, a *model.Author) {
	if a == nil {
		return
	}
	keys := []string{
		authorCacheKeyPrefix + strconv.FormatInt(a.ID, 10),
		authorSlugKeyPrefix + a.Slug,
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Failed to invalidate author cache")
	}
}
