package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmbeddingFailure is returned when the embedding provider request fails
	ErrEmbeddingFailure = errors.New("embedding provider request failed")

	// ErrEmbeddingDisabled is returned when an embedding is requested but no provider is configured
	ErrEmbeddingDisabled = errors.New("semantic search is disabled")

	// ErrCacheMiss is returned when a vector is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
