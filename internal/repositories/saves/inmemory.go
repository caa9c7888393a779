package saves

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-director/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Slot
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Slot),
	}
}

func copySlot(s *Slot) *Slot {
	return &Slot{
		Summary:  s.Summary,
		Document: append([]byte(nil), s.Document...),
	}
}

// Put stores a slot
func (r *InMemoryRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if msg := validateSlot(input.Slot); msg != "" {
		return nil, errors.InvalidArgument(msg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Slot.ID] = copySlot(input.Slot)

	return &PutOutput{Summary: input.Slot.Summary}, nil
}

// Get retrieves a slot by ID
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("save slot %s not found", input.ID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Slot: copySlot(slot)}, nil
}

// List returns all summaries, newest first
func (r *InMemoryRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.store))
	for _, s := range r.store {
		out = append(out, s.Summary)
	}
	sortSummaries(out)

	return &ListOutput{Summaries: out}, nil
}

// Delete removes a slot
func (r *InMemoryRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("save slot %s not found", input.ID)
	}

	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

// sortSummaries orders newest first, then by id for a stable listing
func sortSummaries(s []Summary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].SavedAt.Equal(s[j].SavedAt) {
			return s[i].SavedAt.After(s[j].SavedAt)
		}
		return s[i].ID < s[j].ID
	})
}
