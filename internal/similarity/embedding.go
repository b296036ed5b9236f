package similarity

import (
	"context"
	"fmt"
	"math"

	"github.com/spigell/resume-screener/internal/ai"
)

// EmbeddingScorer scores text similarity with dense vectors from an Embedder.
type EmbeddingScorer struct {
	embedder ai.Embedder
}

// NewEmbeddingScorer wraps the provided embedder. The embedder handle may be
// shared across scorers and calls; embedding computation is stateless.
func NewEmbeddingScorer(embedder ai.Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder}
}

// Score embeds both texts and returns their cosine similarity remapped from
// [-1,1] into [0,1]. The remap is applied unconditionally: cosine similarity
// over arbitrary embeddings can legitimately be negative.
func (s *EmbeddingScorer) Score(ctx context.Context, a, b string) (float64, error) {
	vecA, err := s.embedder.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embedding first text: %w", err)
	}

	vecB, err := s.embedder.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embedding second text: %w", err)
	}

	return (Cosine(vecA, vecB) + 1.0) / 2.0, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either has zero
// norm or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
