package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	itemDomain "github.com/shareloop/service-rental/internal/domain/item"
)

// ItemRepository is an in-memory implementation of the item persistence
// contract.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*itemDomain.Item
}

// NewItemRepository creates an empty in-memory item repository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[uuid.UUID]*itemDomain.Item)}
}

// FindByID retrieves an item by its unique identifier.
func (r *ItemRepository) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id.String())
	}
	return cloneItem(it), nil
}

// FindByOwnerID retrieves all items registered by the given owner.
func (r *ItemRepository) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*itemDomain.Item
	for _, it := range r.items {
		if it.OwnerID() == ownerID {
			result = append(result, cloneItem(it))
		}
	}
	sortByCreation(result)
	return result, nil
}

// Search retrieves available items matching the text, case-insensitively.
func (r *ItemRepository) Search(_ context.Context, text string) ([]*itemDomain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(text)
	var result []*itemDomain.Item
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle) {
			result = append(result, cloneItem(it))
		}
	}
	sortByCreation(result)
	return result, nil
}

// Save persists a new item.
func (r *ItemRepository) Save(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[it.ID()] = cloneItem(it)
	return nil
}

// Update persists changes to an existing item.
func (r *ItemRepository) Update(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[it.ID()]; !ok {
		return domain.NewNotFoundError("Item", it.ID().String())
	}
	r.items[it.ID()] = cloneItem(it)
	return nil
}

func cloneItem(it *itemDomain.Item) *itemDomain.Item {
	return itemDomain.ReconstructItem(
		it.ID(), it.Name(), it.Description(),
		it.Available(), it.OwnerID(), it.LastBookingEnd(),
		it.CreatedAt(), it.UpdatedAt(),
	)
}

func sortByCreation(items []*itemDomain.Item) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt().Before(items[j].CreatedAt())
	})
}
