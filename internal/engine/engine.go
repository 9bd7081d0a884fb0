// Package engine holds the application state and applies every user command
// to it. Commands compute a fresh snapshot from the previous one, persist it
// through the gateway, then swap it in; readers of an earlier snapshot are
// never affected by an in-flight command. Single writer, no locking.
package engine

import (
	"errors"
	"fmt"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// DefaultUser is the label stamped on history entries. There is no real
// identity in a single-user tool; this is configuration, not authentication.
const DefaultUser = "User"

// ErrNoActiveProject is returned when a command needs an active project and
// none is selected.
var ErrNoActiveProject = errors.New("no active project selected")

// Gateway persists the whole snapshot. Load must return a usable (possibly
// empty) snapshot rather than fail.
type Gateway interface {
	Load() model.AppData
	Save(model.AppData) error
}

// BlobStore stores document bytes keyed by file id. Failures must be
// reported; the engine sequences blob operations strictly before state
// mutation and aborts the whole command when one fails.
type BlobStore interface {
	Put(id string, data []byte) error
	Delete(id string) error
	DeleteAll() error
}

type Engine struct {
	gw    Gateway
	blobs BlobStore
	user  string

	data    model.AppData
	pending *model.AppData // staged backup awaiting confirmation
}

func New(gw Gateway, blobs BlobStore) *Engine {
	return &Engine{
		gw:    gw,
		blobs: blobs,
		user:  DefaultUser,
		data:  gw.Load(),
	}
}

// SetUser overrides the audit-trail user label.
func (e *Engine) SetUser(name string) {
	if name != "" {
		e.user = name
	}
}

// Data returns the current snapshot.
func (e *Engine) Data() model.AppData {
	return e.data
}

// apply swaps in the new snapshot and persists it.
func (e *Engine) apply(next model.AppData) error {
	e.data = next
	if err := e.gw.Save(next); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
