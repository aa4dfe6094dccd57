package service

import (
	"context"
	"fmt"

	"catalog-backend/internal/domains/character/model"
	"catalog-backend/internal/domains/character/repository"
	"catalog-backend/internal/shared/utils"
)

type ServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*model.Character, error)
	List(ctx context.Context, filter model.CharacterFilter) ([]model.Character, int64, error)
	Update(ctx context.Context, id int64, req model.UpdateCharacterRequest) (*model.Character, error)
	Delete(ctx context.Context, id int64) error
}

type characterService struct {
	repo repository.RepositoryInterface
}

func NewCharacterService(repo repository.RepositoryInterface) ServiceInterface {
	return &characterService{repo: repo}
}

func (s *characterService) GetByID(ctx context.Context, id int64) (*model.Character, error) {
	if id <= 0 {
		return nil, model.ErrCharacterNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *characterService) List(ctx context.Context, filter model.CharacterFilter) ([]model.Character, int64, error) {
	if filter.Limit <= 0 || filter.Limit > utils.MaxPageSize {
		filter.Limit = utils.DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *characterService) Update(ctx context.Context, id int64, req model.UpdateCharacterRequest) (*model.Character, error) {
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

func (s *characterService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrCharacterNotFound
	}
	return s.repo.Delete(ctx, id)
}
