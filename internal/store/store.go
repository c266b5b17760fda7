package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// DefaultDBPath is the default relative path for the SQLite DB (per-workspace).
// Resolve against cwd or workspace root; Open() creates the parent dir (e.g. .nexus).
const DefaultDBPath = ".nexus/nexus.db"

var (
	// ErrNotFound reports a missing assessment id or version.
	ErrNotFound = errors.New("assessment not found")
	// ErrVersionExists reports an attempt to overwrite a stored version.
	// Versions are immutable once written; revisions get a new version number.
	ErrVersionExists = errors.New("assessment version already stored")
	// ErrCorrupt reports a stored payload that no longer decodes or validates.
	ErrCorrupt = errors.New("stored assessment corrupt")
)

// Meta is one listing row: identity plus entity counts, no payload.
type Meta struct {
	ID         uuid.UUID
	Name       string
	Version    int
	Vectors    int
	Hypotheses int
	Signals    int
	CreatedAt  time.Time
}

// Store is the persistence facade for assessment chains.
// Commands and the MCP server use only this interface; the implementation
// is SQLite or in-memory.
type Store interface {
	// Save writes one immutable assessment version.
	// Fails with ErrVersionExists if (id, version) is already stored.
	Save(a *htc.Assessment) error
	// Get loads one exact version. Fails with ErrNotFound if absent.
	Get(id uuid.UUID, version int) (*htc.Assessment, error)
	// Latest loads the highest stored version of the chain.
	Latest(id uuid.UUID) (*htc.Assessment, error)
	// List returns the latest version of every chain, newest first.
	List() ([]Meta, error)
	// Versions returns every stored version of one chain, oldest first.
	Versions(id uuid.UUID) ([]Meta, error)
	Close() error
}
