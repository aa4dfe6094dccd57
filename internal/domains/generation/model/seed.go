package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SeedAuthor is one entry of a seed catalog file:
//
//	[{"name": "J.R.R. Tolkien", "country": "GB", "books": [{"title": "The Hobbit", "year": 1937}]}]
type SeedAuthor struct {
	Name    string     `json:"name"`
	Country *string    `json:"country,omitempty"`
	Books   []SeedBook `json:"books"`
}

type SeedBook struct {
	Title string  `json:"title"`
	Year  *int    `json:"year,omitempty"`
	ISBN  *string `json:"isbn,omitempty"`
}

func (a SeedAuthor) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.By(trimmedRequired)),
	)
}

func (b SeedBook) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.By(trimmedRequired)),
	)
}

func trimmedRequired(value interface{}) error {
	s, _ := value.(string)
	return validation.Validate(strings.TrimSpace(s), validation.Required)
}

// SeedReport counts what an import created and what was already there.
type SeedReport struct {
	AuthorsCreated int `json:"authors_created"`
	AuthorsFound   int `json:"authors_found"`
	BooksCreated   int `json:"books_created"`
	BooksFound     int `json:"books_found"`
	Failed         int `json:"failed"`
}
