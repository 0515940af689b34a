package usecase

import (
	"fmt"
	"strings"

	"github.com/foodtrack/backend/internal/domain"
)

// IndexEntry caches the embedding of one searchable string (a display name
// or an alias) together with the id of the food it belongs to. Entries are
// created at registration time and never mutated.
type IndexEntry struct {
	Text   string
	FoodID string
	Alias  bool // false for the display name entry
	Vector []float64
}

// Index is the derived recognition structure: one IndexEntry per
// (food, name-or-alias) pair for the similarity tier, plus case-insensitive
// string maps for O(1) exact and alias lookups. Textual matching never
// touches a vector; embeddings are approximate and must not shadow an
// exact hit. Like Catalog, the Index relies on the RecognitionService for
// serialization.
type Index struct {
	embedder domain.Embedder
	entries  []IndexEntry
	names    map[string]string // normalized display name -> food id
	aliases  map[string]string // normalized alias -> food id
}

// NewIndex creates an empty recognition index backed by the given embedder
func NewIndex(embedder domain.Embedder) *Index {
	return &Index{
		embedder: embedder,
		names:    make(map[string]string),
		aliases:  make(map[string]string),
	}
}

// IndexItem embeds and stores the item's display name and every alias,
// removing any prior entries for the same id first so re-registration
// never leaves stale strings behind. On a string conflict between two
// items, last registration wins.
func (idx *Index) IndexItem(item domain.FoodItem) error {
	texts := make([]string, 0, 1+len(item.Aliases))
	texts = append(texts, item.Name)
	texts = append(texts, item.Aliases...)

	// Embed everything before touching the index so a failed encode
	// cannot leave the item half-indexed.
	fresh := make([]IndexEntry, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		vector, err := idx.embedder.Encode(text)
		if err != nil {
			return fmt.Errorf("encoding %q for %q: %w", text, item.ID, err)
		}
		if len(vector) != idx.embedder.Dimension() {
			return fmt.Errorf("%w: got %d, want %d", domain.ErrDimensionMismatch, len(vector), idx.embedder.Dimension())
		}
		fresh = append(fresh, IndexEntry{Text: text, FoodID: item.ID, Alias: i > 0, Vector: vector})
	}

	idx.removeEntries(item.ID)
	idx.entries = append(idx.entries, fresh...)
	idx.rebuildLookups()
	return nil
}

// Remove drops every entry and lookup string referencing the given id
func (idx *Index) Remove(id string) {
	idx.removeEntries(id)
	idx.rebuildLookups()
}

func (idx *Index) removeEntries(id string) {
	kept := idx.entries[:0]
	for _, entry := range idx.entries {
		if entry.FoodID != id {
			kept = append(kept, entry)
		}
	}
	idx.entries = kept
}

// rebuildLookups rederives the exact-lookup maps from the entry list.
// Entries are kept in registration order, so a conflicting string resolves
// to its latest registrant, and removing that item hands the string back
// to an earlier owner instead of dropping it.
func (idx *Index) rebuildLookups() {
	idx.names = make(map[string]string, len(idx.entries))
	idx.aliases = make(map[string]string)
	for _, entry := range idx.entries {
		if entry.Alias {
			idx.aliases[Normalize(entry.Text)] = entry.FoodID
		} else {
			idx.names[Normalize(entry.Text)] = entry.FoodID
		}
	}
}

// Candidates returns the full set of index entries for similarity scanning
func (idx *Index) Candidates() []IndexEntry {
	return idx.entries
}

// LookupExact resolves a normalized string against display names first,
// then aliases, returning the owning id and the matching tier. A miss is
// ErrFoodNotFound: an expected outcome callers branch on, not a failure.
func (idx *Index) LookupExact(normalized string) (string, domain.MatchTier, error) {
	if id, ok := idx.names[normalized]; ok {
		return id, domain.TierExact, nil
	}
	if id, ok := idx.aliases[normalized]; ok {
		return id, domain.TierAlias, nil
	}
	return "", "", domain.ErrFoodNotFound
}

// Normalize case-folds and collapses whitespace for string comparison
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
