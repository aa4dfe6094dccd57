package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"catalog-backend/internal/shared/utils"
)

// looseString accepts a string or a number. Other JSON types, blanks and
// null leave it unset instead of failing the whole document.
type looseString struct {
	v *string
}

func (s *looseString) UnmarshalJSON(b []byte) error {
	var x interface{}
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	switch t := x.(type) {
	case string:
		s.v = utils.NonEmpty(t)
	case float64:
		text := strconv.FormatFloat(t, 'f', -1, 64)
		s.v = &text
	}
	return nil
}

func (s looseString) String() string {
	return utils.Deref(s.v)
}

// looseInt accepts 1937 or "1937".
type looseInt struct {
	v *int
}

func (n *looseInt) UnmarshalJSON(b []byte) error {
	var x interface{}
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	switch t := x.(type) {
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < math.MaxInt32 {
			i := int(t)
			n.v = &i
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			n.v = &i
		}
	}
	return nil
}
