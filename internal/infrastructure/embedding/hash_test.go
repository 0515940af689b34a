package embedding

import (
	"errors"
	"math"
	"testing"

	"github.com/foodtrack/backend/internal/domain"
)

func TestNewHashingEmbedder(t *testing.T) {
	t.Run("uses provided dimension", func(t *testing.T) {
		e := NewHashingEmbedder(512)
		if e.Dimension() != 512 {
			t.Errorf("Dimension() = %d, want 512", e.Dimension())
		}
	})

	t.Run("falls back to default for non-positive dimension", func(t *testing.T) {
		e := NewHashingEmbedder(0)
		if e.Dimension() != DefaultDimension {
			t.Errorf("Dimension() = %d, want %d", e.Dimension(), DefaultDimension)
		}
	})
}

func TestEncode(t *testing.T) {
	e := NewHashingEmbedder(256)

	t.Run("produces vector of configured length", func(t *testing.T) {
		vec, err := e.Encode("grilled chicken breast")
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if len(vec) != 256 {
			t.Errorf("len(vec) = %d, want 256", len(vec))
		}
	})

	t.Run("vectors are L2-normalized", func(t *testing.T) {
		vec, err := e.Encode("greek yogurt")
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		norm := 0.0
		for _, v := range vec {
			norm += v * v
		}
		if math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("norm squared = %v, want 1.0", norm)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		a, err := e.Encode("banana smoothie")
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		b, err := e.Encode("banana smoothie")
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("vectors differ at index %d: %v vs %v", i, a[i], b[i])
			}
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		a, _ := e.Encode("Chicken Breast")
		b, _ := e.Encode("chicken breast")
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("case-folded vectors differ at index %d", i)
			}
		}
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := e.Encode("")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("rejects whitespace-only text", func(t *testing.T) {
		_, err := e.Encode("   \t ")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("shared tokens overlap in embedding space", func(t *testing.T) {
		a, _ := e.Encode("grilled chicken breast")
		b, _ := e.Encode("chicken soup")
		c, _ := e.Encode("greek yogurt")

		dotAB := 0.0
		dotAC := 0.0
		for i := range a {
			dotAB += a[i] * b[i]
			dotAC += a[i] * c[i]
		}
		if dotAB <= dotAC {
			t.Errorf("similarity(chicken breast, chicken soup) = %v, want > similarity(chicken breast, greek yogurt) = %v", dotAB, dotAC)
		}
	})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "simple words", input: "grilled chicken", want: []string{"grilled", "chicken"}},
		{name: "case folded", input: "Greek Yogurt", want: []string{"greek", "yogurt"}},
		{name: "punctuation split", input: "plantain-like fruit", want: []string{"plantain", "like", "fruit"}},
		{name: "empty", input: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
