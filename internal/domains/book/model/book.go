package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength      = 255
	MaxDescriptionRunes = 200
)

// Book belongs to exactly one author.
type Book struct {
	ID               int64     `json:"id" db:"id"`
	AuthorID         int64     `json:"author_id" db:"author_id"`
	Title            string    `json:"title" db:"title"`
	Slug             string    `json:"slug" db:"slug"`
	Year             *int      `json:"year,omitempty" db:"year"`
	ISBN             *string   `json:"isbn,omitempty" db:"isbn"`
	Resume           *string   `json:"resume,omitempty" db:"resume"`
	CoverDescription *string   `json:"cover_description,omitempty" db:"cover_description"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateBookRequest - PUT /v1/books/:id
type UpdateBookRequest struct {
	Title            *string `json:"title,omitempty"`
	Year             *int    `json:"year,omitempty"`
	ISBN             *string `json:"isbn,omitempty"`
	Resume           *string `json:"resume,omitempty"`
	CoverDescription *string `json:"cover_description,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.By(notBlank), validation.Length(1, MaxTitleLength))),
		validation.Field(&r.Year, validation.When(r.Year != nil, validation.Min(0), validation.Max(9999))),
		validation.Field(&r.CoverDescription, validation.When(r.CoverDescription != nil, validation.RuneLength(0, MaxDescriptionRunes))),
	)
}

func (r UpdateBookRequest) ApplyTo(b *Book) {
	if r.Title != nil {
		b.Title = strings.TrimSpace(*r.Title)
	}
	if r.Year != nil {
		b.Year = r.Year
	}
	if r.ISBN != nil {
		b.ISBN = r.ISBN
	}
	if r.Resume != nil {
		b.Resume = r.Resume
	}
	if r.CoverDescription != nil {
		b.CoverDescription = r.CoverDescription
	}
}

// BookFilter - Query parameters for listing
type BookFilter struct {
	AuthorID int64  `form:"author_id"`
	Search   string `form:"search"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

func notBlank(value interface{}) error {
	if s, ok := value.(*string); ok && s != nil && strings.TrimSpace(*s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}
