package usecase

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foodtrack/backend/internal/domain"
)

// TrackerService is the journalling layer: it resolves scans through the
// recogniser, registers user-defined foods, and keeps the per-day log of
// what was eaten, persisting every change through the entry repository.
type TrackerService struct {
	recogniser *RecognitionService
	repository domain.EntryRepository

	mu      sync.RWMutex
	entries []domain.FoodEntry
}

// NewTrackerService creates a tracker backed by the given recogniser and
// repository, loading any previously persisted entries.
func NewTrackerService(recogniser *RecognitionService, repository domain.EntryRepository) (*TrackerService, error) {
	entries, err := repository.LoadEntries()
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return &TrackerService{
		recogniser: recogniser,
		repository: repository,
		entries:    entries,
	}, nil
}

// ScanDescription resolves a free-text description to ranked catalog matches
func (t *TrackerService) ScanDescription(description string, topK int) ([]domain.MatchResult, error) {
	return t.recogniser.Match(description, topK)
}

// RegisterCustomFood adds a user-defined food to the catalog and index,
// making it immediately recognisable. Missing ids are derived from the name.
func (t *TrackerService) RegisterCustomFood(item domain.FoodItem) (domain.FoodItem, error) {
	if item.ID == "" {
		item.ID = slugify(item.Name)
	}
	if err := t.recogniser.RegisterFood(item); err != nil {
		return domain.FoodItem{}, err
	}
	return item, nil
}

// LogFood records a quantity of a food eaten at the given time (zero
// timestamp means now) and persists the journal.
func (t *TrackerService) LogFood(item domain.FoodItem, quantity float64, timestamp time.Time) (domain.FoodEntry, error) {
	if quantity <= 0 {
		return domain.FoodEntry{}, domain.ErrInvalidRequest
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	entry := domain.FoodEntry{
		ID:        uuid.NewString(),
		Food:      item,
		Quantity:  quantity,
		Timestamp: timestamp,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, entry)
	if err := t.repository.SaveEntries(t.entries); err != nil {
		t.entries = t.entries[:len(t.entries)-1]
		return domain.FoodEntry{}, fmt.Errorf("persisting entry: %w", err)
	}
	return entry, nil
}

// ManualFoodEntry creates a one-off food (not registered in the catalog)
// and logs it in a single step.
func (t *TrackerService) ManualFoodEntry(name, servingSize string, nutrients domain.Nutrients, quantity float64, timestamp time.Time) (domain.FoodEntry, error) {
	if strings.TrimSpace(name) == "" {
		return domain.FoodEntry{}, domain.ErrInvalidRequest
	}
	item := domain.FoodItem{
		ID:          slugify(name),
		Name:        name,
		ServingSize: servingSize,
		Nutrients:   nutrients,
	}
	return t.LogFood(item, quantity, timestamp)
}

// Entries returns a copy of all logged entries
func (t *TrackerService) Entries() []domain.FoodEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]domain.FoodEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// EntriesForDay returns the log for one calendar day. A day with no
// entries yields an empty log, not an error.
func (t *TrackerService) EntriesForDay(day time.Time) domain.DailyLog {
	key := dayKey(day)
	logForDay := domain.DailyLog{Day: truncateToDay(day), Entries: []domain.FoodEntry{}}

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, entry := range t.entries {
		if dayKey(entry.Timestamp) == key {
			logForDay.Entries = append(logForDay.Entries, entry)
		}
	}
	return logForDay
}

// DailySummary groups all entries by calendar day, sorted ascending
func (t *TrackerService) DailySummary() []domain.DailyLog {
	t.mu.RLock()
	defer t.mu.RUnlock()

	byDay := make(map[string][]domain.FoodEntry)
	for _, entry := range t.entries {
		key := dayKey(entry.Timestamp)
		byDay[key] = append(byDay[key], entry)
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	summary := make([]domain.DailyLog, 0, len(keys))
	for _, key := range keys {
		day, _ := time.Parse("2006-01-02", key)
		summary = append(summary, domain.DailyLog{Day: day, Entries: byDay[key]})
	}
	return summary
}

// TotalCalories sums quantity-scaled calories across every logged entry
func (t *TrackerService) TotalCalories() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := 0.0
	for _, entry := range t.entries {
		total += entry.Food.Nutrients.Calories * entry.Quantity
	}
	return total
}

// TotalMacros sums quantity-scaled macronutrients across every logged entry
func (t *TrackerService) TotalMacros() domain.Nutrients {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var totals domain.Nutrients
	for _, entry := range t.entries {
		totals.Protein += entry.Food.Nutrients.Protein * entry.Quantity
		totals.Carbohydrates += entry.Food.Nutrients.Carbohydrates * entry.Quantity
		totals.TotalFat += entry.Food.Nutrients.TotalFat * entry.Quantity
	}
	return totals
}

// slugify derives a stable id from a display name
func slugify(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}

// dayKey names the calendar day an instant falls on in its own location.
// Entries are grouped by wall-clock date, not by instant, so logs recorded
// under different zone offsets still land on the day the user saw.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
