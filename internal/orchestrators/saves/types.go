package saves

import (
	savesrepo "github.com/KirkDiggler/rpg-director/internal/repositories/saves"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// SaveGameInput contains parameters for saving the live session
type SaveGameInput struct {
	// SlotID overwrites an existing slot. Empty creates a new slot.
	SlotID string
}

// SaveGameOutput contains the written slot
type SaveGameOutput struct {
	Summary savesrepo.Summary
}

// LoadGameInput contains parameters for restoring a slot
type LoadGameInput struct {
	SlotID string
}

// LoadGameOutput contains the restored session
type LoadGameOutput struct {
	Summary savesrepo.Summary
	State   *store.State
}

// ListSavesInput is empty
type ListSavesInput struct{}

// ListSavesOutput lists slots newest first
type ListSavesOutput struct {
	Summaries []savesrepo.Summary
}

// DeleteSaveInput contains parameters for deleting a slot
type DeleteSaveInput struct {
	SlotID string
}

// DeleteSaveOutput is empty
type DeleteSaveOutput struct{}

// ExportDocumentInput is empty
type ExportDocumentInput struct{}

// ExportDocumentOutput contains the encoded session
type ExportDocumentOutput struct {
	Document []byte
	// FileName is a suggested name for the downloaded document
	FileName string
}

// ImportDocumentInput contains a save document from outside
type ImportDocumentInput struct {
	Document []byte
}

// ImportDocumentOutput contains the restored session
type ImportDocumentOutput struct {
	State *store.State
}

// CheckSavesInput contains parameters for checking every slot
type CheckSavesInput struct {
	// Delete removes slots whose documents cannot be decoded
	Delete bool
}

// CorruptSlot names a slot whose document cannot be decoded
type CorruptSlot struct {
	ID     string
	Reason string
}

// CheckSavesOutput reports the result of a check
type CheckSavesOutput struct {
	Checked int
	Corrupt []CorruptSlot
	// Deleted lists the corrupt slots that were removed
	Deleted []string
}
