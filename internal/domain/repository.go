package domain

import "context"

// EmbeddingClient defines the interface for fetching embedding vectors from an
// external provider. Implementations may fail; callers must degrade gracefully.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorCache defines the interface for memoizing embedding vectors by
// normalized text. Concurrent lookups for the same text may race; the cache is
// idempotent so duplicate fills are harmless.
type VectorCache interface {
	Get(key string) ([]float64, bool)
	Set(key string, vector []float64)
}
