package model

import (
	"encoding/json"
)

// Kind identifies which entity a prompt or a parsed response describes.
type Kind string

const (
	KindAuthor    Kind = "author"
	KindBook      Kind = "book"
	KindCharacter Kind = "character"
)

// Attributes is one parsed node of a generated document.
type Attributes interface {
	Kind() Kind
	Label() string
}

// MaxDescriptionRunes caps image descriptions, which double as image prompts.
const MaxDescriptionRunes = 200

// AuthorAttributes - validated author fields. Books holds the raw child
// array; it is split and parsed only when the cascade reaches it.
type AuthorAttributes struct {
	Name             string
	Country          *string
	Biography        *string
	BirthDate        *string
	PhotoDescription *string
	Books            json.RawMessage
}

func (AuthorAttributes) Kind() Kind      { return KindAuthor }
func (a AuthorAttributes) Label() string { return a.Name }

type BookAttributes struct {
	Title            string
	Year             *int
	ISBN             *string
	Resume           *string
	CoverDescription *string
	Characters       json.RawMessage
}

func (BookAttributes) Kind() Kind      { return KindBook }
func (b BookAttributes) Label() string { return b.Title }

type CharacterAttributes struct {
	Name             string
	Role             *string
	Description      *string
	PhotoDescription *string
}

func (CharacterAttributes) Kind() Kind      { return KindCharacter }
func (c CharacterAttributes) Label() string { return c.Name }
