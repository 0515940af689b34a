package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtrack/backend/internal/domain"
)

func sampleEntries() []domain.FoodEntry {
	return []domain.FoodEntry{
		{
			ID: "e1",
			Food: domain.FoodItem{
				ID:          "banana",
				Name:        "Banana",
				ServingSize: "1 medium",
				Nutrients:   domain.Nutrients{Calories: 105, Protein: 1.3, Carbohydrates: 27, TotalFat: 0.4},
			},
			Quantity:  1.5,
			Timestamp: time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:        "e2",
			Food:      domain.FoodItem{ID: "greek-yogurt", Name: "Greek Yogurt"},
			Quantity:  1,
			Timestamp: time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC),
		},
	}
}

func TestFileEntryRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	repo := NewFileEntryRepository(path)

	require.NoError(t, repo.SaveEntries(sampleEntries()))

	loaded, err := repo.LoadEntries()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "e1", loaded[0].ID)
	assert.Equal(t, "Banana", loaded[0].Food.Name)
	assert.Equal(t, 1.5, loaded[0].Quantity)
	assert.True(t, loaded[0].Timestamp.Equal(sampleEntries()[0].Timestamp))
}

func TestFileEntryRepository_MissingFileIsEmptyJournal(t *testing.T) {
	repo := NewFileEntryRepository(filepath.Join(t.TempDir(), "nonexistent.json"))

	loaded, err := repo.LoadEntries()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileEntryRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewFileEntryRepository(path)
	_, err := repo.LoadEntries()
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestFileEntryRepository_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "entries.json")
	repo := NewFileEntryRepository(path)

	require.NoError(t, repo.SaveEntries(sampleEntries()))

	loaded, err := repo.LoadEntries()
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestFileEntryRepository_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	repo := NewFileEntryRepository(path)

	require.NoError(t, repo.SaveEntries(sampleEntries()))
	require.NoError(t, repo.SaveEntries(sampleEntries()[:1]))

	loaded, err := repo.LoadEntries()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	// No temp files left behind
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".entries-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
