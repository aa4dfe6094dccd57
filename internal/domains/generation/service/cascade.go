package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	characterModel "catalog-backend/internal/domains/character/model"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/domains/generation/parser"
	"catalog-backend/internal/domains/generation/repository"
	"catalog-backend/internal/infrastructure/artifact"
)

// cascade persists one parsed document tree. Nodes are handled strictly in
// array order. In strict mode the first child failure aborts the walk;
// otherwise it is logged, recorded and skipped.
type cascade struct {
	svc     *generationService
	catalog repository.CatalogInterface
	strict  bool
	pending []illustration // strict mode only, run after commit
}

func (r *cascade) author(ctx context.Context, attrs *model.AuthorAttributes) (*model.AuthorTree, error) {
	author, err := r.catalog.Authors().Create(ctx, &authorModel.Author{
		Name:             attrs.Name,
		Country:          attrs.Country,
		Biography:        attrs.Biography,
		BirthDate:        attrs.BirthDate,
		PhotoDescription: attrs.PhotoDescription,
	})
	if err != nil {
		r.svc.metrics.RecordNode(string(model.KindAuthor), "aborted")
		return nil, fmt.Errorf("%w: author %q: %w", model.ErrPersistence, attrs.Name, err)
	}
	r.persisted(model.KindAuthor, author.Slug).Int64("author_id", author.ID).Msg("Author persisted")

	r.illustrate(ctx, illustration{
		category: artifact.CategoryAuthor,
		name:     author.Slug,
		prompt:   imagePrompt(attrs.PhotoDescription, author.Name+", portrait"),
	})

	tree := &model.AuthorTree{Author: *author, Books: []model.BookTree{}}

	items, err := parser.ParseChildren(attrs.Books)
	if err != nil {
		return tree, r.fail(&tree.Failures, model.KindBook, author.Name, err)
	}

	for i, raw := range items {
		seed := fmt.Sprintf("%s books[%d]", author.Name, i)

		book, err := r.childBook(ctx, author.ID, raw)
		if err != nil {
			if err := r.fail(&tree.Failures, model.KindBook, seed, err); err != nil {
				return nil, err
			}
			continue
		}
		tree.Books = append(tree.Books, *book)
	}
	return tree, nil
}

func (r *cascade) childBook(ctx context.Context, authorID int64, raw json.RawMessage) (*model.BookTree, error) {
	attrs, err := parser.ParseBook(string(raw))
	if err != nil {
		return nil, err
	}
	return r.book(ctx, authorID, attrs)
}

func (r *cascade) book(ctx context.Context, authorID int64, attrs *model.BookAttributes) (*model.BookTree, error) {
	book, err := r.catalog.Books().Create(ctx, &bookModel.Book{
		AuthorID:         authorID,
		Title:            attrs.Title,
		Year:             attrs.Year,
		ISBN:             attrs.ISBN,
		Resume:           attrs.Resume,
		CoverDescription: attrs.CoverDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: book %q: %w", model.ErrPersistence, attrs.Title, err)
	}
	r.persisted(model.KindBook, book.Slug).Int64("author_id", authorID).Int64("book_id", book.ID).Msg("Book persisted")

	r.illustrate(ctx, illustration{
		category: artifact.CategoryBook,
		name:     book.Slug,
		prompt:   imagePrompt(attrs.CoverDescription, book.Title+", book cover art"),
	})

	tree := &model.BookTree{Book: *book, Characters: []characterModel.Character{}}

	items, err := parser.ParseChildren(attrs.Characters)
	if err != nil {
		if err := r.fail(&tree.Failures, model.KindCharacter, book.Title, err); err != nil {
			return nil, err
		}
		return tree, nil
	}

	tree.Characters, err = r.characters(ctx, book.ID, items, &tree.Failures)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// characters persists each item on its own; a failed item never affects
// its siblings outside strict mode.
func (r *cascade) characters(ctx context.Context, bookID int64, items []json.RawMessage, failures *[]model.NodeFailure) ([]characterModel.Character, error) {
	out := []characterModel.Character{}
	for i, raw := range items {
		seed := fmt.Sprintf("book %d characters[%d]", bookID, i)

		c, err := r.character(ctx, bookID, raw)
		if err != nil {
			if err := r.fail(failures, model.KindCharacter, seed, err); err != nil {
				return nil, err
			}
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *cascade) character(ctx context.Context, bookID int64, raw json.RawMessage) (*characterModel.Character, error) {
	attrs, err := parser.ParseCharacter(string(raw))
	if err != nil {
		return nil, err
	}

	c, err := r.catalog.Characters().Create(ctx, &characterModel.Character{
		BookID:           bookID,
		Name:             attrs.Name,
		Role:             attrs.Role,
		Description:      attrs.Description,
		PhotoDescription: attrs.PhotoDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: character %q: %w", model.ErrPersistence, attrs.Name, err)
	}
	r.persisted(model.KindCharacter, c.Slug).Int64("book_id", bookID).Int64("character_id", c.ID).Msg("Character persisted")

	r.illustrate(ctx, illustration{
		category: artifact.CategoryCharacter,
		name:     c.Slug,
		prompt:   imagePrompt(attrs.PhotoDescription, c.Name+", character portrait"),
	})
	return c, nil
}

// fail handles a child failure. In strict mode it returns the error to
// unwind the transaction; otherwise it records the failure and returns nil.
func (r *cascade) fail(failures *[]model.NodeFailure, kind model.Kind, seed string, err error) error {
	r.svc.metrics.RecordNode(string(kind), "failed")
	if r.strict {
		return fmt.Errorf("%s %s: %w", kind, seed, err)
	}

	log.Warn().
		Err(err).
		Str("kind", string(kind)).
		Str("seed", seed).
		Msg("Skipping child node")
	*failures = append(*failures, model.NodeFailure{Kind: kind, Seed: seed, Err: err})
	return nil
}

func (r *cascade) persisted(kind model.Kind, slug string) *zerolog.Event {
	r.svc.metrics.RecordNode(string(kind), "persisted")
	return log.Info().Str("kind", string(kind)).Str("slug", slug)
}

func (r *cascade) illustrate(ctx context.Context, il illustration) {
	if r.strict {
		r.pending = append(r.pending, il)
		return
	}
	r.svc.illustrate(ctx, il)
}
