package model

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrInvalidTitle   = errors.New("book title is invalid")
	ErrAuthorRequired = errors.New("book must reference an existing author")
	ErrInvalidInput   = errors.New("invalid book data")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrInvalidTitle):
		return "INVALID_TITLE"
	case errors.Is(err, ErrAuthorRequired):
		return "AUTHOR_REQUIRED"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrAuthorRequired), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
