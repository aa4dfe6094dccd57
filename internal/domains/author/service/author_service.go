package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/repository"
	bookRepo "catalog-backend/internal/domains/book/repository"
	"catalog-backend/internal/shared/utils"
)

type authorService struct {
	repo  repository.RepositoryInterface
	books bookRepo.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface, books bookRepo.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*AuthorDetail, error) {
	if id <= 0 {
		return nil, model.ErrAuthorNotFound
	}

	// Repository handles cache + DB
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withBooks(ctx, a)
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*AuthorDetail, error) {
	slug = utils.Slugify(strings.TrimSpace(slug))
	if slug == "" {
		return nil, model.ErrAuthorNotFound
	}

	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withBooks(ctx, a)
}

func (s *authorService) withBooks(ctx context.Context, a *model.Author) (*AuthorDetail, error) {
	books, err := s.books.ListByAuthor(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load books of author %d: %w", a.ID, err)
	}
	return &AuthorDetail{Author: *a, Books: books}, nil
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	if filter.Limit <= 0 || filter.Limit > utils.MaxPageSize {
		filter.Limit = utils.DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *authorService) Update(ctx context.Context, id int64, req model.UpdateAuthorRequest) (*model.Author, error) {
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

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrAuthorNotFound
	}
	return s.repo.Delete(ctx, id)
}
