package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "ab", TruncateRunes("abc", 2))
	assert.Equal(t, "Már", TruncateRunes("Márquez", 3))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, NonEmpty("   "))
	if v := NonEmpty(" GB "); assert.NotNil(t, v) {
		assert.Equal(t, "GB", *v)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_done`, EscapeLike("100%_done"))
}
