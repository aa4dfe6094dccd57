package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/generation/service"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
)

type IllustrateCatalogHandler struct {
	generation service.ServiceInterface
}

func NewIllustrateCatalogHandler(generation service.ServiceInterface) *IllustrateCatalogHandler {
	return &IllustrateCatalogHandler{generation: generation}
}

func (h *IllustrateCatalogHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.IllustrateCatalogPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	report, err := h.generation.IllustrateCatalog(ctx)
	if err != nil {
		return fmt.Errorf("illustrate catalog: %w", err)
	}

	log.Info().
		Str("request_id", payload.RequestID).
		Int("generated", report.Generated).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Illustrate catalog task done")
	return nil
}
