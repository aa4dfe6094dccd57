package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
)

// AuthorDetail - author with its books
type AuthorDetail struct {
	model.Author
	Books []bookModel.Book `json:"books"`
}

// ServiceInterface covers manual reads and edits. Authors are created by
// the generation service only.
type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*AuthorDetail, error)
	GetBySlug(ctx context.Context, slug string) (*AuthorDetail, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)
	Update(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id int64) error
	ExportToExcel(ctx context.Context) (*excelize.File, error)
}
