package model

import (
	"errors"
	"net/http"

	authorModel "catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/infrastructure/artifact"
	"catalog-backend/internal/infrastructure/generative"
)

var (
	// ErrGenerationUnavailable - provider unreachable, timed out, rate limited or empty
	ErrGenerationUnavailable = generative.ErrUnavailable
	// ErrMalformedOutput - provider text is not JSON of the expected shape
	ErrMalformedOutput = errors.New("malformed generation output")
	// ErrPersistence - the entity store rejected a write
	ErrPersistence = errors.New("persistence failed")
	// ErrArtifactWrite - an image could not be decoded or written
	ErrArtifactWrite = artifact.ErrWrite
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrInvalidSeed   = errors.New("seed must not be empty")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSeed):
		return "INVALID_SEED"
	case errors.Is(err, authorModel.ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, bookModel.ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrGenerationUnavailable):
		return "GENERATION_UNAVAILABLE"
	case errors.Is(err, ErrMalformedOutput):
		return "MALFORMED_GENERATION_OUTPUT"
	case errors.Is(err, ErrPersistence):
		return "PERSISTENCE_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidSeed), errors.Is(err, ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, authorModel.ErrAuthorNotFound), errors.Is(err, bookModel.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGenerationUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrMalformedOutput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
