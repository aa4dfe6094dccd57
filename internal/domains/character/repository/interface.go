package repository

import (
	"context"

	"catalog-backend/internal/domains/character/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, c *model.Character) (*model.Character, error)
	GetByID(ctx context.Context, id int64) (*model.Character, error)
	List(ctx context.Context, filter model.CharacterFilter) ([]model.Character, int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Character, error)
	Update(ctx context.Context, c *model.Character) (*model.Character, error)
	Delete(ctx context.Context, id int64) error
}
