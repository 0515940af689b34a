package domain

// Embedder maps text to a fixed-length vector. Implementations must be
// deterministic: the same input always yields the same vector. Encode
// returns ErrInvalidInput for empty or whitespace-only text.
type Embedder interface {
	Encode(text string) ([]float64, error)

	// Dimension returns the length of vectors produced by Encode
	Dimension() int
}

// EntryRepository defines the interface for food-entry persistence
type EntryRepository interface {
	LoadEntries() ([]FoodEntry, error)
	SaveEntries(entries []FoodEntry) error
}
