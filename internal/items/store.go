package items

import (
	"sync"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"

	"github.com/google/uuid"
)

const itemNotFound = "Item not found"

type Store interface {
	List() []Item
	Get(id string) (Item, error)
	Create(name, description string) Item
	Update(id string, patch ItemPatch) (Item, error)
	Delete(id string) error
}

// MemoryStore keeps items in insertion order for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []Item{}}
}

func (s *MemoryStore) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *MemoryStore) Get(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Item{}, reasoncodes.NotFound(itemNotFound)
	}
	return s.items[idx], nil
}

func (s *MemoryStore) Create(name, description string) Item {
	item := Item{
		ID:          uuid.NewString(),
		Name:        sanitize(name),
		Description: sanitize(description),
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	return item
}

func (s *MemoryStore) Update(id string, patch ItemPatch) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Item{}, reasoncodes.NotFound(itemNotFound)
	}
	s.items[idx] = patch.apply(s.items[idx])
	return s.items[idx], nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return reasoncodes.NotFound(itemNotFound)
	}
	s.items = utilities.Filter(s.items, func(item Item) bool { return item.ID != id })
	return nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
