package service

import (
	"context"
	"fmt"

	authorModel "catalog-backend/internal/domains/author/model"
	authorRepo "catalog-backend/internal/domains/author/repository"
	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/repository"
	characterModel "catalog-backend/internal/domains/character/model"
	characterRepo "catalog-backend/internal/domains/character/repository"
	"catalog-backend/internal/shared/utils"
)

// BookDetail - book with its author and characters
type BookDetail struct {
	model.Book
	Author     *authorModel.Author        `json:"author"`
	Characters []characterModel.Character `json:"characters"`
}

type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*BookDetail, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo       repository.RepositoryInterface
	authors    authorRepo.RepositoryInterface
	characters characterRepo.RepositoryInterface
}

func NewBookService(
	repo repository.RepositoryInterface,
	authors authorRepo.RepositoryInterface,
	characters characterRepo.RepositoryInterface,
) ServiceInterface {
	return &bookService{
		repo:       repo,
		authors:    authors,
		characters: characters,
	}
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*BookDetail, error) {
	if id <= 0 {
		return nil, model.ErrBookNotFound
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.authors.GetByID(ctx, b.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author of book %d: %w", b.ID, err)
	}
	characters, err := s.characters.ListByBook(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load characters of book %d: %w", b.ID, err)
	}

	return &BookDetail{Book: *b, Author: author, Characters: characters}, nil
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	if filter.Limit <= 0 || filter.Limit > utils.MaxPageSize {
		filter.Limit = utils.DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *bookService) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(current)
	return s.repo.Update(ctx, current)
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}
