package similarity

import (
	"context"
	"math"
	"testing"
)

func TestTfidfIdenticalTexts(t *testing.T) {
	t.Parallel()

	score, err := TFIDF{}.Score(context.Background(),
		"python developer with flask experience",
		"python developer with flask experience",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected similarity 1.0 for identical texts, got %v", score)
	}
}

func TestTfidfDisjointTexts(t *testing.T) {
	t.Parallel()

	score, err := TFIDF{}.Score(context.Background(),
		"kubernetes cluster operator",
		"watercolor painting classes",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected similarity 0 for disjoint texts, got %v", score)
	}
}

func TestTfidfOverlapBetweenExtremes(t *testing.T) {
	t.Parallel()

	score, err := TFIDF{}.Score(context.Background(),
		"python developer",
		"python painter",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score <= 0 || score >= 1 {
		t.Fatalf("expected partial overlap strictly between 0 and 1, got %v", score)
	}
}

func TestTfidfEmptyText(t *testing.T) {
	t.Parallel()

	if _, err := (TFIDF{}).Score(context.Background(), "", "python"); err == nil {
		t.Fatalf("expected error for empty text")
	}

	// Stop words alone leave nothing to vectorize either.
	if _, err := (TFIDF{}).Score(context.Background(), "the and of", "python"); err == nil {
		t.Fatalf("expected error for stop words only")
	}
}

func TestTfidfSymmetric(t *testing.T) {
	t.Parallel()

	a := "senior python developer with docker"
	b := "docker platform engineer"

	ab, err := TFIDF{}.Score(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := TFIDF{}.Score(context.Background(), b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("expected symmetric similarity, got %v and %v", ab, ba)
	}
}
