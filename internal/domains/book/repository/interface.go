package repository

import (
	"context"

	"catalog-backend/internal/domains/book/model"
)

// RepositoryInterface - data access for books.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}
