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

	"catalog-backend/internal/domains/book/model"
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
	bookCacheKeyPrefix = "book:"
	cacheTTL           = 15 * time.Minute

	bookColumns = `id, author_id, title, slug, year, isbn, resume, cover_description, created_at, updated_at`

	foreignKeyViolation = "23503"
)

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.AuthorID,
		&b.Title,
		&b.Slug,
		&b.Year,
		&b.ISBN,
		&b.Resume,
		&b.CoverDescription,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return nil, model.ErrInvalidTitle
	}

	query := `
        INSERT INTO books (author_id, title, slug, year, isbn, resume, cover_description)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + bookColumns

	var created model.Book
	err := scanBook(r.db.QueryRow(ctx, query,
		b.AuthorID,
		title,
		utils.Slugify(title),
		b.Year,
		b.ISBN,
		b.Resume,
		b.CoverDescription,
	), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, model.ErrAuthorRequired
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + strconv.FormatInt(id, 10)

	var b model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	if err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, b, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache book")
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	var where []string
	args := []interface{}{}
	argPos := 1

	if filter.AuthorID > 0 {
		where = append(where, fmt.Sprintf("author_id = $%d", argPos))
		args = append(args, filter.AuthorID)
		argPos++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("title ILIKE $%d", argPos))
		args = append(args, "%"+utils.EscapeLike(filter.Search)+"%")
		argPos++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + utils.JoinWithAnd(where)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM books%s ORDER BY id LIMIT $%d OFFSET $%d`,
		bookColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	books, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books WHERE author_id = $1 ORDER BY id`, authorID)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	return r.query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
}

func (r *postgresRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return nil, model.ErrInvalidTitle
	}

	query := `
        UPDATE books
        SET title = $2, slug = $3, year = $4, isbn = $5, resume = $6,
            cover_description = $7, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + bookColumns

	var updated model.Book
	err := scanBook(r.db.QueryRow(ctx, query,
		b.ID,
		title,
		utils.Slugify(title),
		b.Year,
		b.ISBN,
		b.Resume,
		b.CoverDescription,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidate(ctx, updated.ID)
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	r.invalidate(ctx, id)
	// cascaded characters
	if err := r.cache.DeletePattern(ctx, "character:*"); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate character cache")
	}
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id int64) {
	key := bookCacheKeyPrefix + strconv.FormatInt(id, 10)
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate book cache")
	}
}
