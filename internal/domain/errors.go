package domain

import "errors"

var (
	// ErrInvalidInput is returned for empty or whitespace-only query text
	ErrInvalidInput = errors.New("empty or whitespace-only input text")

	// ErrFoodNotFound is returned when a food id or exact string has no catalog match
	ErrFoodNotFound = errors.New("food not found in catalog")

	// ErrDimensionMismatch is returned when an indexed vector disagrees with the
	// embedder's output length; the index is stale and must be rebuilt from the catalog
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStorageFailure is returned when the entry store cannot be read or written
	ErrStorageFailure = errors.New("entry storage failure")
)
