package usecase

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/foodtrack/backend/internal/domain"
)

// RecognitionConfig holds configuration for the recognition service
type RecognitionConfig struct {
	DefaultTopK        int
	EnableDebugLogging bool
}

// RecognitionService resolves free-text food descriptions to catalog
// entries. Matching runs in strict tier order: an exact display-name hit,
// then an alias hit (both confidence 1.0, no embedding computed), then
// cosine similarity over the recognition index. A higher tier always
// outranks a lower one regardless of numeric score.
//
// Match never mutates state; RegisterFood updates catalog and index under
// one write lock so no query observes a partially indexed item.
type RecognitionService struct {
	mu       sync.RWMutex
	embedder domain.Embedder
	catalog  *Catalog
	index    *Index

	defaultTopK        int
	enableDebugLogging bool
}

// NewRecognitionService creates a recognition service with an empty catalog
func NewRecognitionService(embedder domain.Embedder, config RecognitionConfig) *RecognitionService {
	topK := config.DefaultTopK
	if topK <= 0 {
		topK = 1
	}

	return &RecognitionService{
		embedder:           embedder,
		catalog:            NewCatalog(),
		index:              NewIndex(embedder),
		defaultTopK:        topK,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// RegisterFood inserts or replaces a catalog entry and (re)indexes its name
// and aliases as one atomic operation. Replacing an existing id silently
// overwrites all fields; its old aliases stop matching.
func (s *RecognitionService) RegisterFood(item domain.FoodItem) error {
	if item.ID == "" || strings.TrimSpace(item.Name) == "" {
		return domain.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Index first: IndexItem embeds every string before mutating, so an
	// encode failure leaves both structures untouched.
	if err := s.index.IndexItem(item); err != nil {
		return err
	}
	s.catalog.Register(item)

	if s.enableDebugLogging {
		log.Printf("[RECOGNISE] Registered %q (%d aliases, catalog size %d)",
			item.ID, len(item.Aliases), s.catalog.Size())
	}
	return nil
}

// Match returns up to topK ranked candidates for a query. Exact and alias
// hits short-circuit with a single result; otherwise every index entry is
// scored by cosine similarity, grouped by food (best name/alias wins), and
// ranked descending with registration order as the tie-break. An empty
// catalog yields an empty result, not an error. topK <= 0 uses the
// configured default.
func (s *RecognitionService) Match(query string, topK int) ([]domain.MatchResult, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}

	normalized := Normalize(query)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, tier, err := s.index.LookupExact(normalized); err == nil {
		item, err := s.catalog.Get(id)
		if err != nil {
			return nil, fmt.Errorf("index references unknown id %q: %w", id, err)
		}
		if s.enableDebugLogging {
			log.Printf("[RECOGNISE] %q -> %q (%s)", query, id, tier)
		}
		return []domain.MatchResult{{Item: item, Confidence: 1.0, Tier: tier}}, nil
	}

	return s.matchSimilarity(query, topK)
}

// matchSimilarity runs the embedding tier. Caller holds at least a read lock.
func (s *RecognitionService) matchSimilarity(query string, topK int) ([]domain.MatchResult, error) {
	if s.catalog.Size() == 0 {
		return []domain.MatchResult{}, nil
	}

	queryVec, err := s.embedder.Encode(query)
	if err != nil {
		return nil, err
	}

	// Best score per food: an item with several aliases is ranked by its
	// closest name or alias.
	best := make(map[string]float64)
	for _, entry := range s.index.Candidates() {
		score, err := cosineSimilarity(queryVec, entry.Vector)
		if err != nil {
			return nil, fmt.Errorf("scoring %q: %w", entry.Text, err)
		}
		if current, seen := best[entry.FoodID]; !seen || score > current {
			best[entry.FoodID] = score
		}
	}

	ids := make([]string, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if best[ids[i]] != best[ids[j]] {
			return best[ids[i]] > best[ids[j]]
		}
		return s.catalog.Position(ids[i]) < s.catalog.Position(ids[j])
	})

	if topK > len(ids) {
		topK = len(ids)
	}
	results := make([]domain.MatchResult, 0, topK)
	for _, id := range ids[:topK] {
		item, err := s.catalog.Get(id)
		if err != nil {
			return nil, fmt.Errorf("index references unknown id %q: %w", id, err)
		}
		results = append(results, domain.MatchResult{
			Item:       item,
			Confidence: clampUnit(best[id]),
			Tier:       domain.TierSimilarity,
		})
	}

	if s.enableDebugLogging && len(results) > 0 {
		log.Printf("[RECOGNISE] %q -> %q (SIMILARITY %.3f, %d candidates)",
			query, results[0].Item.ID, results[0].Confidence, len(ids))
	}
	return results, nil
}

// MatchBulk runs Match for every query independently, fanning out across
// goroutines. Results are identical to calling Match once per query; every
// input query appears as a key in the returned map.
func (s *RecognitionService) MatchBulk(queries []string, topK int) (map[string][]domain.MatchResult, error) {
	results := make([][]domain.MatchResult, len(queries))

	var g errgroup.Group
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			matches, err := s.Match(query, topK)
			if err != nil {
				return fmt.Errorf("query %q: %w", query, err)
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byQuery := make(map[string][]domain.MatchResult, len(queries))
	for i, query := range queries {
		byQuery[query] = results[i]
	}
	return byQuery, nil
}

// GetFood returns the catalog entry for an id, or ErrFoodNotFound
func (s *RecognitionService) GetFood(id string) (domain.FoodItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Get(id)
}

// Items returns the catalog in registration order
func (s *RecognitionService) Items() []domain.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.List()
}

// Rebuild re-embeds the full catalog into a fresh index. This is the
// recovery path for a stale index (ErrDimensionMismatch after an embedder
// change) and is also how the index comes up on startup: it is derived
// state and never persisted.
func (s *RecognitionService) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := NewIndex(s.embedder)
	for _, item := range s.catalog.List() {
		if err := fresh.IndexItem(item); err != nil {
			return fmt.Errorf("rebuilding index: %w", err)
		}
	}
	s.index = fresh
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Vector lengths must agree; a zero vector scores 0 against anything.
func cosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
