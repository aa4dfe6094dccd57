package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	MaxNameLength       = 255
	MaxDescriptionRunes = 200
)

type Author struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Slug             string    `json:"slug" db:"slug"`
	Country          *string   `json:"country,omitempty" db:"country"`       // ISO 3166 alpha-2
	Biography        *string   `json:"biography,omitempty" db:"biography"`   // free text
	BirthDate        *string   `json:"birth_date,omitempty" db:"birth_date"` // YYYY-MM-DD
	PhotoDescription *string   `json:"photo_description,omitempty" db:"photo_description"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateAuthorRequest - PUT /v1/authors/:id
// All fields optional; slug is re-derived when name changes.
type UpdateAuthorRequest struct {
	Name             *string `json:"name,omitempty"`
	Country          *string `json:"country,omitempty"`
	Biography        *string `json:"biography,omitempty"`
	BirthDate        *string `json:"birth_date,omitempty"`
	PhotoDescription *string `json:"photo_description,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil,
				validation.By(notBlank),
				validation.Length(1, MaxNameLength),
			),
		),
		validation.Field(&r.Country, validation.When(r.Country != nil, validation.By(countryCode))),
		validation.Field(&r.BirthDate, validation.When(r.BirthDate != nil, validation.Date("2006-01-02"))),
		validation.Field(&r.PhotoDescription, validation.When(r.PhotoDescription != nil, validation.RuneLength(0, MaxDescriptionRunes))),
	)
}

// ApplyTo copies the non-nil fields onto a.
func (r UpdateAuthorRequest) ApplyTo(a *Author) {
	if r.Name != nil {
		a.Name = strings.TrimSpace(*r.Name)
	}
	if r.Country != nil {
		country := strings.ToUpper(*r.Country)
		a.Country = &country
	}
	if r.Biography != nil {
		a.Biography = r.Biography
	}
	if r.BirthDate != nil {
		a.BirthDate = r.BirthDate
	}
	if r.PhotoDescription != nil {
		a.PhotoDescription = r.PhotoDescription
	}
}

// AuthorFilter - Query parameters for listing
type AuthorFilter struct {
	Search string `form:"search"`
	SortBy string `form:"sort_by"` // name, created_at
	Order  string `form:"order"`   // asc, desc
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// countryCode accepts ISO 3166-1 alpha-2 codes in any case; ApplyTo uppercases them.
func countryCode(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return is.CountryCode2.Validate(strings.ToUpper(*s))
}

func notBlank(value interface{}) error {
	if s, ok := value.(*string); ok && s != nil && strings.TrimSpace(*s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}
