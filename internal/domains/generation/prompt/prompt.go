// Package prompt renders the instructions sent to the chat provider.
// Every prompt embeds the JSON shape expected back, with field hints inline,
// and the shapes nest: an author carries books which carry characters.
package prompt

import (
	"fmt"
	"strings"

	"catalog-backend/internal/domains/generation/model"
)

// Context carries the parent information a prompt may need.
type Context struct {
	AuthorName string
}

const characterShape = `{
  "name": "", // correctly spelled, complete name of the character
  "role": "", // protagonist, antagonist, supporting...
  "description": "", // short description of the character
  "photo_description": "" // anime style, studio ghibli style, short description (200 chars max) of a portrait of the character
}`

const bookShape = `{
  "title": "", // complete, correctly spelled title
  "year": "", // 'YYYY' of first publication
  "ISBN": "", // most recent ISBN
  "resume": "", // medium-sized summary of the book
  "cover_description": "", // short description (200 chars max) of the most famous cover art
  "characters": [
%s
    // more characters can be added here, empty array if the book has no characters
  ]
}`

const authorShape = `{
  "name": "", // correctly spelled, complete name
  "country": "", // two-letter country code
  "biography": "", // medium-sized biography
  "dob": "", // date of birth, 'YYYY-MM-DD'
  "photo_description": "", // anime style, studio ghibli style, short description (200 chars max) of the most famous profile picture
  "books": [
%s
    // more books can be added here, empty array if the author has no books
  ]
}`

// Build renders the prompt for kind. The seed is the author name, the book
// title or the book title for a character list.
func Build(kind model.Kind, seed string, ctx Context) (string, error) {
	switch kind {
	case model.KindAuthor:
		return Author(seed), nil
	case model.KindBook:
		return Book(seed, ctx.AuthorName), nil
	case model.KindCharacter:
		return Characters(seed, ctx.AuthorName), nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnknownKind, kind)
	}
}

// Author asks for the author and the full subtree of books and characters.
func Author(name string) string {
	return fmt.Sprintf("About the following author: %s\nReply with a single JSON object in the following format:\n%s",
		name, AuthorShape())
}

// Book asks for one book, with its characters.
func Book(title, authorName string) string {
	return fmt.Sprintf("About the book %q by the author %q,\nReply with a single JSON object in the following format:\n%s",
		title, authorName, BookShape())
}

// Characters asks for the characters of an existing book.
func Characters(bookTitle, authorName string) string {
	return fmt.Sprintf("About the book %q by %q,\nReply with a JSON array of objects in the following format:\n[\n%s\n  // more characters can be added here, empty array if the book has no characters\n]",
		bookTitle, authorName, indent(characterShape, 2))
}

func BookShape() string {
	return fmt.Sprintf(bookShape, indent(characterShape, 4))
}

func AuthorShape() string {
	return fmt.Sprintf(authorShape, indent(BookShape(), 4))
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
