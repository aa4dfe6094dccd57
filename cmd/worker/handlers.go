package main

import (
	"github.com/hibiken/asynq"

	"catalog-backend/internal/domains/generation/job"
	"catalog-backend/internal/shared"
	"catalog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	spawnAuthor       *job.SpawnAuthorHandler
	illustrateCatalog *job.IllustrateCatalogHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		spawnAuthor:       job.NewSpawnAuthorHandler(c.GenerationService),
		illustrateCatalog: job.NewIllustrateCatalogHandler(c.GenerationService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSpawnAuthor, h.spawnAuthor.ProcessTask)
	mux.HandleFunc(shared.TypeIllustrateCatalog, h.illustrateCatalog.ProcessTask)
}
