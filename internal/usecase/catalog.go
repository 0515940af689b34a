package usecase

import (
	"github.com/foodtrack/backend/internal/domain"
)

// Catalog is the authoritative in-memory set of known foods, keyed by id
// and enumerable in registration order. It is not safe for concurrent use
// on its own; the RecognitionService serializes access to it.
type Catalog struct {
	items map[string]domain.FoodItem
	order []string // ids in first-registration order
}

// NewCatalog creates an empty food catalog
func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[string]domain.FoodItem),
	}
}

// Register inserts or fully replaces an entry by id. Replacing is a silent
// last-write-wins overwrite; the item keeps its original position in List().
func (c *Catalog) Register(item domain.FoodItem) {
	if _, exists := c.items[item.ID]; !exists {
		c.order = append(c.order, item.ID)
	}
	c.items[item.ID] = item
}

// Get returns the item for an id, or ErrFoodNotFound
func (c *Catalog) Get(id string) (domain.FoodItem, error) {
	item, ok := c.items[id]
	if !ok {
		return domain.FoodItem{}, domain.ErrFoodNotFound
	}
	return item, nil
}

// List returns all items in registration order
func (c *Catalog) List() []domain.FoodItem {
	items := make([]domain.FoodItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

// Position returns the registration rank of an id, used as the
// deterministic tie-break when similarity scores are equal
func (c *Catalog) Position(id string) int {
	for i, existing := range c.order {
		if existing == id {
			return i
		}
	}
	return len(c.order)
}

// Size returns the number of registered items
func (c *Catalog) Size() int {
	return len(c.items)
}
