package service

import (
	"context"

	"catalog-backend/internal/domains/generation/model"
)

// ServiceInterface drives the generative pipeline:
// prompt → chat → parse → persist → illustrate, recursively.
type ServiceInterface interface {
	// SpawnAuthorByName generates an author with all books and characters
	// from a single chat call. Only the author is all-or-nothing.
	SpawnAuthorByName(ctx context.Context, name string) (*model.AuthorTree, error)
	// SpawnBookByTitle generates one book (and its characters) for an existing author.
	SpawnBookByTitle(ctx context.Context, title string, authorID int64) (*model.BookTree, error)
	// SpawnCharactersForBook generates characters for an existing book.
	SpawnCharactersForBook(ctx context.Context, bookID int64) (*model.CharacterBatch, error)
	// IllustrateCatalog backfills missing author and cover images.
	IllustrateCatalog(ctx context.Context) (*model.IllustrationReport, error)

	// Prompt and Image pass a raw prompt through to the provider.
	Prompt(ctx context.Context, prompt string) (string, error)
	Image(ctx context.Context, prompt string) ([]byte, error)
}
