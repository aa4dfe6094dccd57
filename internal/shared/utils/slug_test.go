package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only separators", " -- __ .. ", ""},
		{"initials with dots", "J.R.R. Tolkien", "j-r-r-tolkien"},
		{"spaced initials", "J. R. R. Tolkien", "j-r-r-tolkien"},
		{"title", "The Hobbit", "the-hobbit"},
		{"accents", "Gabriel García Márquez", "gabriel-garcia-marquez"},
		{"vietnamese", "Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"apostrophe", "Harry Potter and the Philosopher's Stone", "harry-potter-and-the-philosophers-stone"},
		{"camel case", "fooBar", "foo-bar"},
		{"acronym", "XMLHttpRequest", "xml-http-request"},
		{"digits", "Catch-22", "catch-22"},
		{"letters and digits", "R2D2", "r-2-d-2"},
		{"year only", "1984", "1984"},
		{"repeated separators", "  --Hello__World--  ", "hello-world"},
		{"capital without lowercase", "Bϒ", "bϒ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"J.R.R. Tolkien",
		"Cien años de soledad",
		"XMLHttpRequest",
		"R2D2 and C-3PO",
		"Don't Panic!",
		"  weird   spacing\tand\nnewlines ",
		"already-a-slug",
		"Bϒ",
		"A-Σϒ9'ǈ",
		"Ab𝐀𝐁 Xy",
		"ǅemal Bijedić",
	}

	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, Slugify("Frodo Baggins"), Slugify("Frodo Baggins"))
	assert.Equal(t, Slugify("J.R.R. Tolkien"), Slugify("J. R. R. Tolkien"))
}
