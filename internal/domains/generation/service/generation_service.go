package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/parser"
	"catalog-backend/internal/domains/generation/prompt"
	"catalog-backend/internal/domains/generation/repository"
	"catalog-backend/internal/infrastructure/artifact"
	"catalog-backend/internal/infrastructure/generative"
	"catalog-backend/internal/infrastructure/metrics"
)

type Options struct {
	// Atomic runs each cascade in one transaction: any node failure rolls
	// the whole cascade back. Images are generated after commit.
	Atomic bool
}

type generationService struct {
	client    generative.Client
	catalog   repository.CatalogInterface
	artifacts artifact.Cache
	metrics   *metrics.Metrics
	atomic    bool
}

func NewGenerationService(
	client generative.Client,
	catalog repository.CatalogInterface,
	artifacts artifact.Cache,
	m *metrics.Metrics,
	opts Options,
) ServiceInterface {
	return &generationService{
		client:    client,
		catalog:   catalog,
		artifacts: artifacts,
		metrics:   m,
		atomic:    opts.Atomic,
	}
}

// ════════════════════════════════════════════════════════════════
// ROOT OPERATIONS
// ════════════════════════════════════════════════════════════════

func (s *generationService) SpawnAuthorByName(ctx context.Context, name string) (*model.AuthorTree, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidSeed
	}

	text, err := s.client.Chat(ctx, prompt.Author(name))
	if err != nil {
		return nil, s.abort(model.KindAuthor, name, err)
	}
	attrs, err := parser.ParseAuthor(text)
	if err != nil {
		return nil, s.abort(model.KindAuthor, name, err)
	}

	var tree *model.AuthorTree
	err = s.execute(ctx, func(ctx context.Context, r *cascade) error {
		tree, err = r.author(ctx, attrs)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("kind", string(model.KindAuthor)).
		Str("seed", name).
		Int64("author_id", tree.ID).
		Int("books", len(tree.Books)).
		Int("failures", len(tree.AllFailures())).
		Msg("Author cascade finished")
	return tree, nil
}

func (s *generationService) SpawnBookByTitle(ctx context.Context, title string, authorID int64) (*model.BookTree, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.ErrInvalidSeed
	}

	author, err := s.catalog.Authors().GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	text, err := s.client.Chat(ctx, prompt.Book(title, author.Name))
	if err != nil {
		return nil, s.abort(model.KindBook, title, err)
	}
	attrs, err := parser.ParseBook(text)
	if err != nil {
		return nil, s.abort(model.KindBook, title, err)
	}

	var tree *model.BookTree
	err = s.execute(ctx, func(ctx context.Context, r *cascade) error {
		tree, err = r.book(ctx, author.ID, attrs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *generationService) SpawnCharactersForBook(ctx context.Context, bookID int64) (*model.CharacterBatch, error) {
	book, err := s.catalog.Books().GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	author, err := s.catalog.Authors().GetByID(ctx, book.AuthorID)
	if err != nil {
		return nil, err
	}

	text, err := s.client.Chat(ctx, prompt.Characters(book.Title, author.Name))
	if err != nil {
		return nil, s.abort(model.KindCharacter, book.Title, err)
	}
	items, err := parser.ParseCharacterList(text)
	if err != nil {
		return nil, s.abort(model.KindCharacter, book.Title, err)
	}

	batch := &model.CharacterBatch{BookID: book.ID}
	err = s.execute(ctx, func(ctx context.Context, r *cascade) error {
		batch.Failures = nil
		batch.Characters, err = r.characters(ctx, book.ID, items, &batch.Failures)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *generationService) Prompt(ctx context.Context, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", model.ErrInvalidSeed
	}
	return s.client.Chat(ctx, p)
}

func (s *generationService) Image(ctx context.Context, p string) ([]byte, error) {
	if strings.TrimSpace(p) == "" {
		return nil, model.ErrInvalidSeed
	}
	payload, err := s.client.Image(ctx, p)
	if err != nil {
		return nil, err
	}
	return artifact.Decode(payload)
}

// execute runs fn against the catalog, inside one transaction in atomic mode.
// Once the root reply is parsed the cascade runs to completion: caller
// cancellation is dropped and only the provider's per-call timeout applies.
func (s *generationService) execute(ctx context.Context, fn func(ctx context.Context, r *cascade) error) error {
	ctx = context.WithoutCancel(ctx)
	if !s.atomic {
		return fn(ctx, &cascade{svc: s, catalog: s.catalog})
	}

	r := &cascade{svc: s, strict: true}
	err := s.catalog.WithinTx(ctx, func(tx repository.CatalogInterface) error {
		r.catalog = tx
		r.pending = nil
		return fn(ctx, r)
	})
	if err != nil {
		return err
	}

	for _, il := range r.pending {
		s.illustrate(ctx, il)
	}
	return nil
}

// abort records a root failure. Nothing has been persisted at this point.
func (s *generationService) abort(kind model.Kind, seed string, err error) error {
	s.metrics.RecordNode(string(kind), "aborted")
	log.Warn().Err(err).Str("kind", string(kind)).Str("seed", seed).Msg("Generation aborted")
	return fmt.Errorf("generate %s %q: %w", kind, seed, err)
}
