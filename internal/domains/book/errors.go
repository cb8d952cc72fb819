package book

import "errors"

// Repository-level errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrUserBookNotFound = errors.New("book not found in your lists")
)

// Service-level errors
var (
	ErrInvalidStatus = errors.New("invalid status provided")
	ErrInvalidDate   = errors.New("dates must use YYYY-MM-DD format")
)
