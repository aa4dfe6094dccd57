// Package parser turns chat completions into validated entity attributes.
//
// Only the node being parsed is decoded strictly. Child arrays are kept as
// raw documents so a broken book or character only costs its own subtree.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	characterModel "catalog-backend/internal/domains/character/model"
	"catalog-backend/internal/domains/generation/model"
	"catalog-backend/internal/shared/utils"
)

type authorDoc struct {
	Name             looseString     `json:"name"`
	Country          looseString     `json:"country"`
	Biography        looseString     `json:"biography"`
	DOB              looseString     `json:"dob"`
	BirthDate        looseString     `json:"birth_date"`
	PhotoDescription looseString     `json:"photo_description"`
	Books            json.RawMessage `json:"books"`
}

type bookDoc struct {
	Title            looseString     `json:"title"`
	Year             looseInt        `json:"year"`
	ISBN             looseString     `json:"ISBN"`
	Resume           looseString     `json:"resume"`
	CoverDescription looseString     `json:"cover_description"`
	Characters       json.RawMessage `json:"characters"`
}

type characterDoc struct {
	Name             looseString `json:"name"`
	Role             looseString `json:"role"`
	Description      looseString `json:"description"`
	PhotoDescription looseString `json:"photo_description"`
}

// ParseEntity parses raw as a single node of the given kind.
func ParseEntity(kind model.Kind, raw string) (model.Attributes, error) {
	var (
		attrs model.Attributes
		err   error
	)
	switch kind {
	case model.KindAuthor:
		var a *model.AuthorAttributes
		if a, err = ParseAuthor(raw); err == nil {
			attrs = a
		}
	case model.KindBook:
		var b *model.BookAttributes
		if b, err = ParseBook(raw); err == nil {
			attrs = b
		}
	case model.KindCharacter:
		var c *model.CharacterAttributes
		if c, err = ParseCharacter(raw); err == nil {
			attrs = c
		}
	default:
		err = fmt.Errorf("%w: %q", model.ErrUnknownKind, kind)
	}
	return attrs, err
}

func ParseAuthor(raw string) (*model.AuthorAttributes, error) {
	var doc authorDoc
	if err := decodeObject(raw, &doc); err != nil {
		return nil, err
	}

	dob := doc.DOB.v
	if dob == nil {
		dob = doc.BirthDate.v
	}

	attrs := &model.AuthorAttributes{
		Name:             doc.Name.String(),
		Country:          countryCode(doc.Country.v),
		Biography:        doc.Biography.v,
		BirthDate:        isoDate(dob),
		PhotoDescription: description(doc.PhotoDescription.v),
		Books:            doc.Books,
	}
	if err := validation.ValidateStruct(attrs,
		validation.Field(&attrs.Name, validation.Required, validation.RuneLength(1, authorModel.MaxNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: author: %v", model.ErrMalformedOutput, err)
	}
	return attrs, nil
}

// ParseBook parses one book document. Characters stay raw.
func ParseBook(raw string) (*model.BookAttributes, error) {
	var doc bookDoc
	if err := decodeObject(raw, &doc); err != nil {
		return nil, err
	}

	attrs := &model.BookAttributes{
		Title:            doc.Title.String(),
		Year:             year(doc.Year.v),
		ISBN:             doc.ISBN.v,
		Resume:           doc.Resume.v,
		CoverDescription: description(doc.CoverDescription.v),
		Characters:       doc.Characters,
	}
	if err := validation.ValidateStruct(attrs,
		validation.Field(&attrs.Title, validation.Required, validation.RuneLength(1, bookModel.MaxTitleLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: book: %v", model.ErrMalformedOutput, err)
	}
	return attrs, nil
}

func ParseCharacter(raw string) (*model.CharacterAttributes, error) {
	var doc characterDoc
	if err := decodeObject(raw, &doc); err != nil {
		return nil, err
	}

	attrs := &model.CharacterAttributes{
		Name:             doc.Name.String(),
		Role:             doc.Role.v,
		Description:      doc.Description.v,
		PhotoDescription: description(doc.PhotoDescription.v),
	}
	if err := validation.ValidateStruct(attrs,
		validation.Field(&attrs.Name, validation.Required, validation.RuneLength(1, characterModel.MaxNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: character: %v", model.ErrMalformedOutput, err)
	}
	return attrs, nil
}

// ParseCharacterList parses the reply to a character list prompt. A bare
// array is expected; an object wrapping it under "characters" is accepted.
func ParseCharacterList(raw string) ([]json.RawMessage, error) {
	text, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(text, "{") {
		var wrapper struct {
			Characters json.RawMessage `json:"characters"`
		}
		if err := json.Unmarshal([]byte(text), &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedOutput, err)
		}
		if wrapper.Characters == nil {
			return nil, fmt.Errorf("%w: expected a list of characters", model.ErrMalformedOutput)
		}
		return ParseChildren(wrapper.Characters)
	}
	return ParseChildren(json.RawMessage(text))
}

// ParseChildren splits a raw child array into its elements.
// Absent and null arrays are empty; anything else that is not an array
// is malformed.
func ParseChildren(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []json.RawMessage{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("%w: expected an array: %v", model.ErrMalformedOutput, err)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

func decodeObject(raw string, dest interface{}) error {
	text, err := extractJSON(raw)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(text, "{") {
		return fmt.Errorf("%w: expected a JSON object", model.ErrMalformedOutput)
	}
	if err := json.Unmarshal([]byte(text), dest); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedOutput, err)
	}
	return nil
}

var codeFence = regexp.MustCompile("(?s)```[A-Za-z]*\\s*(.*?)\\s*```")

// extractJSON drops Markdown fences, surrounding prose and line comments
// copied from the prompt template.
func extractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON document in response", model.ErrMalformedOutput)
	}
	return stripLineComments(text[start : end+1]), nil
}

// stripLineComments removes // comments that sit outside string literals.
func stripLineComments(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func countryCode(v *string) *string {
	if v == nil {
		return nil
	}
	code := strings.ToUpper(*v)
	if validation.Validate(code, is.CountryCode2) != nil {
		return nil
	}
	return &code
}

func isoDate(v *string) *string {
	if v == nil || validation.Validate(*v, validation.Date("2006-01-02")) != nil {
		return nil
	}
	return v
}

func year(v *int) *int {
	if v == nil || validation.Validate(*v, validation.Min(0), validation.Max(9999)) != nil {
		return nil
	}
	return v
}

func description(v *string) *string {
	if v == nil {
		return nil
	}
	d := utils.TruncateRunes(*v, model.MaxDescriptionRunes)
	return &d
}
