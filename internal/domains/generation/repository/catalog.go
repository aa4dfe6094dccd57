package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authorRepo "catalog-backend/internal/domains/author/repository"
	bookRepo "catalog-backend/internal/domains/book/repository"
	characterRepo "catalog-backend/internal/domains/character/repository"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/cache"
	pkgdb "catalog-backend/pkg/database"
)

// CatalogInterface groups the three entity repositories so a cascade can
// run against the pool or inside a single transaction.
type CatalogInterface interface {
	Authors() authorRepo.RepositoryInterface
	Books() bookRepo.RepositoryInterface
	Characters() characterRepo.RepositoryInterface
	// WithinTx runs fn with a catalog bound to one transaction.
	// Nested calls reuse the outer transaction.
	WithinTx(ctx context.Context, fn func(tx CatalogInterface) error) error
}

type postgresCatalog struct {
	pool       *pgxpool.Pool // nil once bound to a transaction
	authors    authorRepo.RepositoryInterface
	books      bookRepo.RepositoryInterface
	characters characterRepo.RepositoryInterface
	cache      cache.Cache
}

func NewPostgresCatalog(pool *pgxpool.Pool, c cache.Cache) CatalogInterface {
	return newPostgresCatalog(pool, pool, c)
}

func newPostgresCatalog(pool *pgxpool.Pool, db database.DBTX, c cache.Cache) *postgresCatalog {
	return &postgresCatalog{
		pool:       pool,
		authors:    authorRepo.NewPostgresRepository(db, c),
		books:      bookRepo.NewPostgresRepository(db, c),
		characters: characterRepo.NewPostgresRepository(db, c),
		cache:      c,
	}
}

func (c *postgresCatalog) Authors() authorRepo.RepositoryInterface       { return c.authors }
func (c *postgresCatalog) Books() bookRepo.RepositoryInterface           { return c.books }
func (c *postgresCatalog) Characters() characterRepo.RepositoryInterface { return c.characters }

func (c *postgresCatalog) WithinTx(ctx context.Context, fn func(tx CatalogInterface) error) error {
	if c.pool == nil {
		return fn(c)
	}
	return pkgdb.WithTransaction(ctx, c.pool, func(tx pgx.Tx) error {
		return fn(newPostgresCatalog(nil, tx, c.cache))
	})
}
