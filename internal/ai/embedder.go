package ai

import "context"

// Embedder produces a dense vector representation of a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
