package service

import (
	"context"
	"strings"

	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/repository"
)

// Seeder imports a fixed catalog without calling the provider.
// Authors are matched by name and books by title, so re-running an import
// only adds what is missing.
type Seeder struct {
	catalog repository.CatalogInterface
}

func NewSeeder(catalog repository.CatalogInterface) *Seeder {
	return &Seeder{catalog: catalog}
}

// Seed never stops on a bad entry: it is logged, counted and skipped.
func (s *Seeder) Seed(ctx context.Context, entries []model.SeedAuthor) (*model.SeedReport, error) {
	authors, err := s.catalog.Authors().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.catalog.Books().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	authorIDs := make(map[string]int64, len(authors))
	for _, a := range authors {
		authorIDs[a.Name] = a.ID
	}
	titles := make(map[string]bool, len(books))
	for _, b := range books {
		titles[b.Title] = true
	}

	report := &model.SeedReport{}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			log.Warn().Err(err).Msg("Skipping seed author")
			report.Failed++
			continue
		}
		name := strings.TrimSpace(entry.Name)

		authorID, found := authorIDs[name]
		if found {
			report.AuthorsFound++
		} else {
			author, err := s.catalog.Authors().Create(ctx, &authorModel.Author{
				Name:    name,
				Country: seedCountry(entry.Country),
			})
			if err != nil {
				log.Warn().Err(err).Str("name", name).Msg("Failed to seed author")
				report.Failed++
				continue
			}
			authorID = author.ID
			authorIDs[name] = authorID
			report.AuthorsCreated++
			log.Info().Str("name", name).Int64("author_id", authorID).Msg("Seeded author")
		}

		for _, b := range entry.Books {
			if err := b.Validate(); err != nil {
				log.Warn().Err(err).Str("name", name).Msg("Skipping seed book")
				report.Failed++
				continue
			}
			title := strings.TrimSpace(b.Title)
			if titles[title] {
				report.BooksFound++
				continue
			}

			if _, err := s.catalog.Books().Create(ctx, &bookModel.Book{
				AuthorID: authorID,
				Title:    title,
				Year:     b.Year,
				ISBN:     b.ISBN,
			}); err != nil {
				log.Warn().Err(err).Str("title", title).Msg("Failed to seed book")
				report.Failed++
				continue
			}
			titles[title] = true
			report.BooksCreated++
		}
	}
	return report, nil
}

// seedCountry keeps valid ISO alpha-2 codes, uppercased.
func seedCountry(v *string) *string {
	if v == nil {
		return nil
	}
	code := strings.ToUpper(strings.TrimSpace(*v))
	if code == "" || is.CountryCode2.Validate(code) != nil {
		return nil
	}
	return &code
}
