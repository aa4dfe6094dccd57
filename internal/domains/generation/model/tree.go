package model

import (
	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	characterModel "catalog-backend/internal/domains/character/model"
)

// NodeFailure records a child node that was skipped during a cascade.
type NodeFailure struct {
	Kind Kind
	Seed string
	Err  error
}

// AuthorTree is the persisted result of an author cascade.
// Failures are kept for logs and the CLI; they are never serialized.
type AuthorTree struct {
	authorModel.Author
	Books    []BookTree    `json:"books"`
	Failures []NodeFailure `json:"-"`
}

type BookTree struct {
	bookModel.Book
	Characters []characterModel.Character `json:"characters"`
	Failures   []NodeFailure              `json:"-"`
}

// CharacterBatch is the result of generating characters for an existing book.
type CharacterBatch struct {
	BookID     int64                      `json:"book_id"`
	Characters []characterModel.Character `json:"characters"`
	Failures   []NodeFailure              `json:"-"`
}

// AllFailures flattens book and character failures of the whole tree.
func (t *AuthorTree) AllFailures() []NodeFailure {
	out := append([]NodeFailure(nil), t.Failures...)
	for _, b := range t.Books {
		out = append(out, b.Failures...)
	}
	return out
}

// IllustrationReport summarises a backfill run.
type IllustrationReport struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
