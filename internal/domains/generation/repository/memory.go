package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	authorModel "catalog-backend/internal/domains/author/model"
	authorRepo "catalog-backend/internal/domains/author/repository"
	bookModel "catalog-backend/internal/domains/book/model"
	bookRepo "catalog-backend/internal/domains/book/repository"
	characterModel "catalog-backend/internal/domains/character/model"
	characterRepo "catalog-backend/internal/domains/character/repository"
	"catalog-backend/internal/shared/utils"
)

// MemoryCatalog keeps the catalog in process. It backs dry-run cascades,
// which show what a cascade would produce without touching the database.
// Deletes cascade like the SQL schema. WithinTx is not isolated.
type MemoryCatalog struct {
	mu         sync.Mutex
	nextID     int64
	authors    map[int64]authorModel.Author
	books      map[int64]bookModel.Book
	characters map[int64]characterModel.Character
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		authors:    make(map[int64]authorModel.Author),
		books:      make(map[int64]bookModel.Book),
		characters: make(map[int64]characterModel.Character),
	}
}

func (m *MemoryCatalog) Authors() authorRepo.RepositoryInterface       { return memoryAuthors{m} }
func (m *MemoryCatalog) Books() bookRepo.RepositoryInterface           { return memoryBooks{m} }
func (m *MemoryCatalog) Characters() characterRepo.RepositoryInterface { return memoryCharacters{m} }

func (m *MemoryCatalog) WithinTx(_ context.Context, fn func(tx CatalogInterface) error) error {
	return fn(m)
}

func (m *MemoryCatalog) id() int64 {
	m.nextID++
	return m.nextID
}

func contains(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// page applies offset and limit; limit <= 0 means no limit.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[max(offset, 0):]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ════════════════════════════════════════════════════════════════
// AUTHORS
// ════════════════════════════════════════════════════════════════

type memoryAuthors struct{ m *MemoryCatalog }

func (r memoryAuthors) Create(_ context.Context, a *authorModel.Author) (*authorModel.Author, error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return nil, authorModel.ErrInvalidName
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	created := *a
	created.ID = r.m.id()
	created.Name = name
	created.Slug = utils.Slugify(name)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.m.authors[created.ID] = created
	return &created, nil
}

func (r memoryAuthors) GetByID(_ context.Context, id int64) (*authorModel.Author, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	a, ok := r.m.authors[id]
	if !ok {
		return nil, authorModel.ErrAuthorNotFound
	}
	return &a, nil
}

func (r memoryAuthors) GetBySlug(ctx context.Context, slug string) (*authorModel.Author, error) {
	all, _ := r.ListAll(ctx)
	for _, a := range all {
		if a.Slug == slug {
			return &a, nil
		}
	}
	return nil, authorModel.ErrAuthorNotFound
}

func (r memoryAuthors) List(ctx context.Context, filter authorModel.AuthorFilter) ([]authorModel.Author, int64, error) {
	all, _ := r.ListAll(ctx)

	matched := []authorModel.Author{}
	for _, a := range all {
		if contains(a.Name, filter.Search) {
			matched = append(matched, a)
		}
	}
	if filter.SortBy == "name" {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}
	if filter.Order != "asc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return page(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r memoryAuthors) ListAll(_ context.Context) ([]authorModel.Author, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]authorModel.Author, 0, len(r.m.authors))
	for _, a := range r.m.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryAuthors) Update(_ context.Context, a *authorModel.Author) (*authorModel.Author, error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return nil, authorModel.ErrInvalidName
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	current, ok := r.m.authors[a.ID]
	if !ok {
		return nil, authorModel.ErrAuthorNotFound
	}
	updated := *a
	updated.Name = name
	updated.Slug = utils.Slugify(name)
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now()
	r.m.authors[a.ID] = updated
	return &updated, nil
}

func (r memoryAuthors) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.authors[id]; !ok {
		return authorModel.ErrAuthorNotFound
	}
	delete(r.m.authors, id)
	for bookID, b := range r.m.books {
		if b.AuthorID == id {
			r.m.deleteBook(bookID)
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════════
// BOOKS
// ════════════════════════════════════════════════════════════════

type memoryBooks struct{ m *MemoryCatalog }

func (r memoryBooks) Create(_ context.Context, b *bookModel.Book) (*bookModel.Book, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return nil, bookModel.ErrInvalidTitle
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.authors[b.AuthorID]; !ok {
		return nil, bookModel.ErrAuthorRequired
	}
	created := *b
	created.ID = r.m.id()
	created.Title = title
	created.Slug = utils.Slugify(title)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.m.books[created.ID] = created
	return &created, nil
}

func (r memoryBooks) GetByID(_ context.Context, id int64) (*bookModel.Book, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	b, ok := r.m.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	return &b, nil
}

func (r memoryBooks) List(ctx context.Context, filter bookModel.BookFilter) ([]bookModel.Book, int64, error) {
	all, _ := r.ListAll(ctx)

	matched := []bookModel.Book{}
	for _, b := range all {
		if filter.AuthorID != 0 && b.AuthorID != filter.AuthorID {
			continue
		}
		if contains(b.Title, filter.Search) {
			matched = append(matched, b)
		}
	}
	return page(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r memoryBooks) ListByAuthor(ctx context.Context, authorID int64) ([]bookModel.Book, error) {
	books, _, err := r.List(ctx, bookModel.BookFilter{AuthorID: authorID})
	return books, err
}

func (r memoryBooks) ListAll(_ context.Context) ([]bookModel.Book, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	out := make([]bookModel.Book, 0, len(r.m.books))
	for _, b := range r.m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryBooks) Update(_ context.Context, b *bookModel.Book) (*bookModel.Book, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		return nil, bookModel.ErrInvalidTitle
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	current, ok := r.m.books[b.ID]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	updated := *b
	updated.AuthorID = current.AuthorID
	updated.Title = title
	updated.Slug = utils.Slugify(title)
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now()
	r.m.books[b.ID] = updated
	return &updated, nil
}

func (r memoryBooks) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.books[id]; !ok {
		return bookModel.ErrBookNotFound
	}
	r.m.deleteBook(id)
	return nil
}

// deleteBook removes a book and its characters. Caller holds mu.
func (m *MemoryCatalog) deleteBook(id int64) {
	delete(m.books, id)
	for charID, c := range m.characters {
		if c.BookID == id {
			delete(m.characters, charID)
		}
	}
}

// ════════════════════════════════════════════════════════════════
// CHARACTERS
// ════════════════════════════════════════════════════════════════

type memoryCharacters struct{ m *MemoryCatalog }

func (r memoryCharacters) Create(_ context.Context, c *characterModel.Character) (*characterModel.Character, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, characterModel.ErrInvalidName
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.books[c.BookID]; !ok {
		return nil, characterModel.ErrBookRequired
	}
	created := *c
	created.ID = r.m.id()
	created.Name = name
	created.Slug = utils.Slugify(name)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.m.characters[created.ID] = created
	return &created, nil
}

func (r memoryCharacters) GetByID(_ context.Context, id int64) (*characterModel.Character, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	c, ok := r.m.characters[id]
	if !ok {
		return nil, characterModel.ErrCharacterNotFound
	}
	return &c, nil
}

func (r memoryCharacters) List(_ context.Context, filter characterModel.CharacterFilter) ([]characterModel.Character, int64, error) {
	r.m.mu.Lock()
	matched := []characterModel.Character{}
	for _, c := range r.m.characters {
		if filter.BookID != 0 && c.BookID != filter.BookID {
			continue
		}
		if contains(c.Name, filter.Search) {
			matched = append(matched, c)
		}
	}
	r.m.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return page(matched, filter.Limit, filter.Offset), int64(len(matched)), nil
}

func (r memoryCharacters) ListByBook(ctx context.Context, bookID int64) ([]characterModel.Character, error) {
	characters, _, err := r.List(ctx, characterModel.CharacterFilter{BookID: bookID})
	return characters, err
}

func (r memoryCharacters) Update(_ context.Context, c *characterModel.Character) (*characterModel.Character, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, characterModel.ErrInvalidName
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	current, ok := r.m.characters[c.ID]
	if !ok {
		return nil, characterModel.ErrCharacterNotFound
	}
	updated := *c
	updated.BookID = current.BookID
	updated.Name = name
	updated.Slug = utils.Slugify(name)
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now()
	r.m.characters[c.ID] = updated
	return &updated, nil
}

func (r memoryCharacters) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.characters[id]; !ok {
		return characterModel.ErrCharacterNotFound
	}
	delete(r.m.characters, id)
	return nil
}
