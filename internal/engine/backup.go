package engine

import (
	"fmt"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// StageRestore holds an imported backup for confirmation. Nothing is
// mutated until ConfirmRestore.
func (e *Engine) StageRestore(imported model.AppData) {
	staged := imported.Clone()
	e.pending = &staged
}

// PendingRestore returns the staged backup, or nil.
func (e *Engine) PendingRestore() *model.AppData {
	return e.pending
}

// CancelRestore discards the staged backup.
func (e *Engine) CancelRestore() {
	e.pending = nil
}

// ConfirmRestore replaces the entire application state with the staged
// backup, verbatim. The blob store is cleared first; if clearing fails the
// command aborts with the previous state intact. The backup is trusted as-is
// with no referential-integrity validation, matching what an exported
// snapshot contains.
func (e *Engine) ConfirmRestore() error {
	if e.pending == nil {
		return nil
	}
	if err := e.blobs.DeleteAll(); err != nil {
		return fmt.Errorf("clear file store: %w", err)
	}
	next := *e.pending
	e.pending = nil
	return e.apply(next)
}

// Reset clears the blob store and replaces the state with the empty
// skeleton. Same all-or-nothing contract as ConfirmRestore.
func (e *Engine) Reset() error {
	if err := e.blobs.DeleteAll(); err != nil {
		return fmt.Errorf("clear file store: %w", err)
	}
	return e.apply(model.Empty())
}
