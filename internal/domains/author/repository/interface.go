package repository

import (
	"context"

	"catalog-backend/internal/domains/author/model"
)

// RepositoryInterface - data access for authors.
// Create and Update derive Slug from Name; callers never set it.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	GetBySlug(ctx context.Context, slug string) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	ListAll(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
}
