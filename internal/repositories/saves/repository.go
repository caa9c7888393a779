// Package saves stores encoded save documents in named slots
package saves

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=savesmock github.com/KirkDiggler/rpg-director/internal/repositories/saves Repository

// Summary describes a slot without its document
type Summary struct {
	ID            string    `json:"id"`
	CharacterName string    `json:"characterName"`
	Turns         int       `json:"turns"`
	SavedAt       time.Time `json:"savedAt"`
}

// Slot is a stored save
type Slot struct {
	Summary
	Document []byte `json:"-"`
}

// PutInput contains parameters for writing a slot. An existing slot with the
// same id is overwritten.
type PutInput struct {
	Slot *Slot
}

// PutOutput contains the result of writing a slot
type PutOutput struct {
	Summary Summary
}

// GetInput contains parameters for reading a slot
type GetInput struct {
	ID string
}

// GetOutput contains the result of reading a slot
type GetOutput struct {
	Slot *Slot
}

// ListInput contains parameters for listing slots
type ListInput struct{}

// ListOutput lists slots newest first
type ListOutput struct {
	Summaries []Summary
}

// DeleteInput contains parameters for deleting a slot
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a slot
type DeleteOutput struct{}

// Repository defines save slot storage
type Repository interface {
	// Put writes a slot
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Get reads a slot by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every slot summary, newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a slot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errSlotNil     = "slot cannot be nil"
	errSlotIDEmpty = "slot ID cannot be empty"
	errDocEmpty    = "slot document cannot be empty"
)

func validateSlot(s *Slot) string {
	switch {
	case s == nil:
		return errSlotNil
	case s.ID == "":
		return errSlotIDEmpty
	case len(s.Document) == 0:
		return errDocEmpty
	}
	return ""
}
