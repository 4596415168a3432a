package items

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository with the same ordering and
// zero-affected semantics as the Mongo implementation. It backs the service
// and transport tests and is safe for concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []Item
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// ListByOwner returns the owner's items, newest first by CreatedAt.
func (r *MemoryRepository) ListByOwner(ctx context.Context, owner string) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Item, 0)
	for _, item := range r.items {
		if item.Owner == owner {
			result = append(result, item)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Insert stores a copy of the item with a freshly assigned identifier.
func (r *MemoryRepository) Insert(ctx context.Context, item *Item) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = primitive.NewObjectID()
	r.items = append(r.items, *item)

	return item.ID.Hex(), nil
}

// UpdateByOwner applies the patch to the matching owned item.
func (r *MemoryRepository) UpdateByOwner(ctx context.Context, id, owner string, patch Patch) (*UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &UpdateResult{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != oid || r.items[i].Owner != owner {
			continue
		}

		modified := int64(0)
		if patch.Name != nil && r.items[i].Name != *patch.Name {
			r.items[i].Name = *patch.Name
			modified = 1
		}
		if patch.Description != nil && r.items[i].Description != *patch.Description {
			r.items[i].Description = *patch.Description
			modified = 1
		}
		if patch.Completed != nil && r.items[i].Completed != *patch.Completed {
			r.items[i].Completed = *patch.Completed
			modified = 1
		}
		if !r.items[i].UpdatedAt.Equal(patch.UpdatedAt) {
			r.items[i].UpdatedAt = patch.UpdatedAt
			modified = 1
		}

		return &UpdateResult{Matched: 1, Modified: modified}, nil
	}

	return &UpdateResult{}, nil
}

// DeleteByOwner removes the matching owned item.
func (r *MemoryRepository) DeleteByOwner(ctx context.Context, id, owner string) (*DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &DeleteResult{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == oid && r.items[i].Owner == owner {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return &DeleteResult{Deleted: 1}, nil
		}
	}

	return &DeleteResult{}, nil
}

// Get returns a copy of the stored item by hex id, for test assertions on
// underlying state. The second return is false when no item matches.
func (r *MemoryRepository) Get(id string) (Item, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Item{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == oid {
			return item, true
		}
	}
	return Item{}, false
}
