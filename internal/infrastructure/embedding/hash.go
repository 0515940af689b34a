package embedding

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/foodtrack/backend/internal/domain"
)

// DefaultDimension is the vector length used when none is configured.
// Large enough that token hash collisions are rare for a food-sized vocabulary.
const DefaultDimension = 256

// HashingEmbedder is a deterministic, offline embedder. Each token of the
// case-folded input is hashed into a bucket of a fixed-length vector, which
// is then L2-normalized so cosine similarity reduces to a dot product.
type HashingEmbedder struct {
	dimension int
}

// NewHashingEmbedder creates a hashing embedder with the given vector length.
// Non-positive dimensions fall back to DefaultDimension.
func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashingEmbedder{dimension: dimension}
}

// Dimension returns the length of vectors produced by Encode
func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

// Encode converts text into a normalized vector. Returns ErrInvalidInput
// for empty or whitespace-only text.
func (e *HashingEmbedder) Encode(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	tokens := tokenize(text)

	vector := make([]float64, e.dimension)
	for _, tok := range tokens {
		h := fnv.New64a()
		_, _ = h.Write([]byte(tok))
		vector[h.Sum64()%uint64(e.dimension)] += 1
	}

	norm := 0.0
	for _, v := range vector {
		norm += v * v
	}
	if norm == 0 {
		return vector, nil
	}
	inv := 1 / math.Sqrt(norm)
	for i := range vector {
		vector[i] *= inv
	}
	return vector, nil
}

// tokenize splits text into lowercase alphanumeric tokens
func tokenize(text string) []string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil
	}
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

var _ domain.Embedder = (*HashingEmbedder)(nil)
