package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/infrastructure/artifact"
)

type illustration struct {
	category artifact.Category
	name     string
	prompt   string
}

const (
	illustrationGenerated = "generated"
	illustrationSkipped   = "skipped"
	illustrationFailed    = "failed"
)

// illustrate generates and stores an image unless one already exists.
// Failures are logged and never propagate.
func (s *generationService) illustrate(ctx context.Context, il illustration) string {
	if artifact.Key(il.category, il.name) == "" {
		log.Debug().Str("category", string(il.category)).Msg("No slug, skipping illustration")
		return illustrationSkipped
	}
	if s.artifacts.Exists(ctx, il.category, il.name) {
		return illustrationSkipped
	}

	payload, err := s.client.Image(ctx, il.prompt)
	if err != nil {
		log.Warn().Err(err).Str("category", string(il.category)).Str("slug", il.name).Msg("Image generation failed")
		return illustrationFailed
	}
	if err := s.artifacts.Store(ctx, il.category, il.name, payload); err != nil {
		log.Warn().Err(err).Str("category", string(il.category)).Str("slug", il.name).Msg("Failed to store image")
		return illustrationFailed
	}

	log.Info().Str("category", string(il.category)).Str("slug", il.name).Msg("Image stored")
	return illustrationGenerated
}

// IllustrateCatalog gives every author a superhero portrait and every book
// a cover, skipping images that already exist.
func (s *generationService) IllustrateCatalog(ctx context.Context) (*model.IllustrationReport, error) {
	authors, err := s.catalog.Authors().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.catalog.Books().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]illustration, 0, len(authors)+len(books))
	for _, a := range authors {
		jobs = append(jobs, illustration{
			category: artifact.CategorySuperhero,
			name:     a.Slug,
			prompt:   a.Name + ", portrait, as superhero",
		})
	}
	for _, b := range books {
		jobs = append(jobs, illustration{
			category: artifact.CategoryBook,
			name:     b.Slug,
			prompt:   b.Title + ", book cover art",
		})
	}

	report := &model.IllustrationReport{}
	for _, il := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		switch s.illustrate(ctx, il) {
		case illustrationGenerated:
			report.Generated++
		case illustrationSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}

	log.Info().
		Int("generated", report.Generated).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Catalog illustration finished")
	return report, nil
}

// imagePrompt prefers the generated description and falls back to a
// prompt built from the entity name.
func imagePrompt(description *string, fallback string) string {
	if description != nil && strings.TrimSpace(*description) != "" {
		return *description
	}
	return fallback
}
