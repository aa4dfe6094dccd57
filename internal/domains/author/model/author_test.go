package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUpdateAuthorRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateAuthorRequest{}.Validate())
	assert.NoError(t, UpdateAuthorRequest{
		Name:      strPtr("Agatha Christie"),
		Country:   strPtr("GB"),
		BirthDate: strPtr("1890-09-15"),
	}.Validate())
	assert.NoError(t, UpdateAuthorRequest{Country: strPtr("gb")}.Validate())

	assert.Error(t, UpdateAuthorRequest{Name: strPtr("   ")}.Validate())
	assert.Error(t, UpdateAuthorRequest{Country: strPtr("Britain")}.Validate())
	assert.Error(t, UpdateAuthorRequest{BirthDate: strPtr("15/09/1890")}.Validate())
}

func TestUpdateAuthorRequest_ApplyTo(t *testing.T) {
	a := &Author{ID: 1, Name: "Old", Slug: "old"}
	UpdateAuthorRequest{Name: strPtr("  Agatha Christie "), Country: strPtr("gb")}.ApplyTo(a)

	assert.Equal(t, "Agatha Christie", a.Name)
	assert.Equal(t, "GB", *a.Country)
	assert.Nil(t, a.Biography)
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, ToHTTPStatus(ErrAuthorNotFound))
	assert.Equal(t, 400, ToHTTPStatus(ErrInvalidName))
	assert.Equal(t, 500, ToHTTPStatus(assert.AnError))
	assert.Equal(t, "AUTHOR_NOT_FOUND", ToErrorCode(ErrAuthorNotFound))
}
