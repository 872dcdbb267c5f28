package repositories

import (
	"fmt"
	"sync"
	"time"

	"prototype/internal/models"
	"prototype/internal/shared"
)

// MemoryItemRepository is an in-memory implementation of ItemRepository.
// Ids come from a counter that only ever increases, so ids stay unique
// and strictly increasing even after deletions. The mutex serializes the
// counter increment together with the map mutation.
type MemoryItemRepository struct {
	items  map[int]models.Item
	order  []int // ids in insertion order
	nextID int
	mu     sync.RWMutex
}

// NewMemoryItemRepository creates a new instance of MemoryItemRepository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items:  make(map[int]models.Item),
		nextID: 1,
	}
}

// Create adds a new item, assigning the next id.
func (r *MemoryItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return nil
}

// List returns items in insertion order, offset by skip and truncated to
// limit. A negative skip is treated as 0; a negative limit returns nothing.
func (r *MemoryItemRepository) List(skip, limit int) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if skip < 0 {
		skip = 0
	}
	if skip >= len(r.order) || limit <= 0 {
		return []models.Item{}, nil
	}

	end := skip + limit
	if end > len(r.order) {
		end = len(r.order)
	}

	itemList := make([]models.Item, 0, end-skip)
	for _, id := range r.order[skip:end] {
		itemList = append(itemList, r.items[id])
	}
	return itemList, nil
}

// GetByID returns an item by its id.
func (r *MemoryItemRepository) GetByID(id int) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %d: %w", id, shared.ErrNotFound)
	}
	return &item, nil
}

// Update replaces the stored item with the same id.
func (r *MemoryItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("item with ID %d: %w", item.ID, shared.ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its id.
func (r *MemoryItemRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %d: %w", id, shared.ErrNotFound)
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
