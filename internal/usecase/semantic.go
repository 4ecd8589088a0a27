package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/domain"
	"github.com/tradelink/backend/internal/metrics"
)

// defaultEmbedTimeout bounds a single embedding lookup so a slow provider
// cannot stall a whole batch.
const defaultEmbedTimeout = 5 * time.Second

// SemanticScorer computes embedding-based similarity between two texts.
// Failures never propagate: any provider error degrades to the zero-vector
// sentinel, which always yields 0.0 similarity, so the semantic signal stays
// strictly optional and additive.
type SemanticScorer struct {
	client  domain.EmbeddingClient
	cache   domain.VectorCache
	timeout time.Duration
	log     *zap.Logger
}

// NewSemanticScorer creates a scorer over an embedding client and a shared
// vector cache.
func NewSemanticScorer(client domain.EmbeddingClient, cache domain.VectorCache, timeout time.Duration, log *zap.Logger) *SemanticScorer {
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SemanticScorer{
		client:  client,
		cache:   cache,
		timeout: timeout,
		log:     log,
	}
}

// Similarity returns the cosine similarity of the two texts' embeddings,
// clamped to [0,1]. Returns 0.0 when either embedding is unavailable.
func (s *SemanticScorer) Similarity(ctx context.Context, text1, text2 string) float64 {
	vec1 := s.vector(ctx, text1)
	vec2 := s.vector(ctx, text2)
	return CosineSimilarity(vec1, vec2)
}

// vector fetches the embedding for text, memoized by the lowercased trimmed
// text. A nil return is the zero-vector sentinel.
func (s *SemanticScorer) vector(ctx context.Context, text string) []float64 {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return nil
	}

	if vec, ok := s.cache.Get(key); ok {
		metrics.EmbeddingCacheHits.Inc()
		return vec
	}
	metrics.EmbeddingCacheMisses.Inc()

	embedCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	vec, err := s.client.Embed(embedCtx, key)
	if err != nil {
		s.log.Warn("embedding lookup failed, degrading to zero vector",
			zap.String("text", key),
			zap.Error(err))
		return nil
	}

	s.cache.Set(key, vec)
	return vec
}

// CosineSimilarity computes cosine similarity between two vectors, truncated
// to [0,1]. Embeddings in this domain describe non-opposable concepts, so
// negative values carry no meaning and clamp to 0. A zero or empty vector (the
// failure sentinel) always yields 0.0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
