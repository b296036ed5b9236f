package similarity

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/spigell/resume-screener/internal/skills"
)

// TFIDF scores the cosine similarity between tf-idf vector representations of
// two texts. Terms are unigrams and bigrams over the normalized text, with
// common English stop words removed and smoothed idf over the two-document
// corpus. The zero value is ready to use.
type TFIDF struct{}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
		"has", "have", "in", "is", "it", "its", "of", "on", "or", "that",
		"the", "to", "was", "were", "will", "with",
	} {
		stopWords[w] = struct{}{}
	}
}

// Score returns the tf-idf cosine similarity in [0,1]. It fails when either
// text yields no terms at all.
func (TFIDF) Score(_ context.Context, a, b string) (float64, error) {
	termsA := terms(a)
	termsB := terms(b)
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0, errors.New("no terms to vectorize")
	}

	vecA := weigh(termsA, termsB)
	vecB := weigh(termsB, termsA)

	var dot, normA, normB float64
	for term, wa := range vecA {
		if wb, ok := vecB[term]; ok {
			dot += wa * wb
		}
		normA += wa * wa
	}
	for _, wb := range vecB {
		normB += wb * wb
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0, nil
	}

	return dot / denom, nil
}

// terms tokenizes normalized text into unigrams and bigrams, dropping stop words.
func terms(text string) []string {
	words := strings.Fields(skills.Normalize(text))

	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := stopWords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}

	out := make([]string, 0, 2*len(kept))
	out = append(out, kept...)
	for i := 0; i+1 < len(kept); i++ {
		out = append(out, kept[i]+" "+kept[i+1])
	}

	return out
}

// weigh builds the tf-idf vector for doc against the two-document corpus
// {doc, other} using smoothed idf: ln((1+n)/(1+df)) + 1.
func weigh(doc, other []string) map[string]float64 {
	tf := make(map[string]float64, len(doc))
	for _, t := range doc {
		tf[t]++
	}

	otherSet := make(map[string]struct{}, len(other))
	for _, t := range other {
		otherSet[t] = struct{}{}
	}

	vec := make(map[string]float64, len(tf))
	for term, count := range tf {
		df := 1.0
		if _, ok := otherSet[term]; ok {
			df = 2.0
		}
		idf := math.Log(3.0/(1.0+df)) + 1.0
		vec[term] = count * idf
	}

	return vec
}
