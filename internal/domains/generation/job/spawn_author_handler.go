package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/service"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
)

type SpawnAuthorHandler struct {
	generation service.ServiceInterface
}

func NewSpawnAuthorHandler(generation service.ServiceInterface) *SpawnAuthorHandler {
	return &SpawnAuthorHandler{generation: generation}
}

func (h *SpawnAuthorHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.SpawnAuthorPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("request_id", payload.RequestID).
		Str("seed", payload.Name).
		Msg("Processing spawn author task")

	tree, err := h.generation.SpawnAuthorByName(ctx, payload.Name)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSeed) || errors.Is(err, model.ErrMalformedOutput) {
			return fmt.Errorf("spawn author: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("spawn author: %w", err)
	}

	log.Info().
		Str("request_id", payload.RequestID).
		Int64("author_id", tree.ID).
		Str("slug", tree.Slug).
		Int("books", len(tree.Books)).
		Int("failures", len(tree.AllFailures())).
		Msg("Spawn author task done")
	return nil
}
