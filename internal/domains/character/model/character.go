package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength       = 255
	MaxDescriptionRunes = 200
)

// Character belongs to exactly one book.
type Character struct {
	ID               int64     `json:"id" db:"id"`
	BookID           int64     `json:"book_id" db:"book_id"`
	Name             string    `json:"name" db:"name"`
	Slug             string    `json:"slug" db:"slug"`
	Role             *string   `json:"role,omitempty" db:"role"`
	Description      *string   `json:"description,omitempty" db:"description"`
	PhotoDescription *string   `json:"photo_description,omitempty" db:"photo_description"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateCharacterRequest - PUT /v1/characters/:id
type UpdateCharacterRequest struct {
	Name             *string `json:"name,omitempty"`
	Role             *string `json:"role,omitempty"`
	Description      *string `json:"description,omitempty"`
	PhotoDescription *string `json:"photo_description,omitempty"`
}

func (r UpdateCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.When(r.Name != nil, validation.By(notBlank), validation.Length(1, MaxNameLength))),
		validation.Field(&r.PhotoDescription, validation.When(r.PhotoDescription != nil, validation.RuneLength(0, MaxDescriptionRunes))),
	)
}

func (r UpdateCharacterRequest) ApplyTo(c *Character) {
	if r.Name != nil {
		c.Name = strings.TrimSpace(*r.Name)
	}
	if r.Role != nil {
		c.Role = r.Role
	}
	if r.Description != nil {
		c.Description = r.Description
	}
	if r.PhotoDescription != nil {
		c.PhotoDescription = r.PhotoDescription
	}
}

type CharacterFilter struct {
	BookID int64  `form:"book_id"`
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

func notBlank(value interface{}) error {
	if s, ok := value.(*string); ok && s != nil && strings.TrimSpace(*s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}
