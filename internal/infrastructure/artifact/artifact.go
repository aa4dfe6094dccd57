// Package artifact stores generated images keyed by (category, slug).
// Entries are written at most once and are never updated.
package artifact

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"catalog-backend/internal/infrastructure/storage"
	"catalog-backend/internal/shared/utils"
)

// Category is the namespace of an artifact.
type Category string

const (
	CategoryAuthor     Category = "author"
	CategoryBook       Category = "book"
	CategoryCharacter  Category = "character"
	CategorySuperhero  Category = "author/superhero"
	defaultContentType          = "image/png"
)

// ErrWrite is returned when an artifact cannot be decoded or persisted.
var ErrWrite = errors.New("artifact write failed")

// Cache is the idempotent artifact store.
type Cache interface {
	// Exists never fails; any lookup error is treated as absent.
	Exists(ctx context.Context, category Category, name string) bool
	// Store writes payload only when the key is absent.
	Store(ctx context.Context, category Category, name, payload string) error
}

// Key returns "<category>/<slug>.png", or "" when name has no slug.
func Key(category Category, name string) string {
	slug := utils.Slugify(name)
	if slug == "" {
		return ""
	}
	return path.Join(string(category), slug+".png")
}

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// decodePayload strips an optional data URI prefix, base64-decodes and
// verifies the bytes are an image, returning PNG bytes.
func decodePayload(processor *storage.ImageProcessor, payload string) ([]byte, error) {
	payload = strings.TrimSpace(dataURIPrefix.ReplaceAllString(strings.TrimSpace(payload), ""))
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrWrite)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrWrite, err)
	}

	data, err := processor.NormalizePNG(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return data, nil
}

// Decode returns the PNG bytes of a provider payload without storing it.
func Decode(payload string) ([]byte, error) {
	return decodePayload(storage.NewImageProcessor(), payload)
}
