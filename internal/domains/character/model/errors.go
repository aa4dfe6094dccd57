package model

import (
	"errors"
	"net/http"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrInvalidName       = errors.New("character name is invalid")
	ErrBookRequired      = errors.New("character must reference an existing book")
	ErrInvalidInput      = errors.New("invalid character data")
)

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return "CHARACTER_NOT_FOUND"
	case errors.Is(err, ErrInvalidName):
		return "INVALID_NAME"
	case errors.Is(err, ErrBookRequired):
		return "BOOK_REQUIRED"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrBookRequired), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
