package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// MemStore implements Store with in-memory maps. Used by tests and by the
// MCP server when no database path is configured.
type MemStore struct {
	mu     sync.Mutex
	chains map[uuid.UUID][]*htc.Assessment // each slice sorted by version
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{chains: make(map[uuid.UUID][]*htc.Assessment)}
}

// Save validates and stores a deep copy, so later mutation of the caller's
// value cannot reach stored history.
func (s *MemStore) Save(a *htc.Assessment) error {
	if a == nil {
		return fmt.Errorf("save: nil assessment")
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("save %s v%d: %w", htc.ShortID(a.ID), a.Version, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.chains[a.ID] {
		if stored.Version == a.Version {
			return fmt.Errorf("save %s v%d: %w", htc.ShortID(a.ID), a.Version, ErrVersionExists)
		}
	}
	versions := append(s.chains[a.ID], a.Clone())
	sort.Slice(versions, func(i, j int) bool { return versions[i].Version < versions[j].Version })
	s.chains[a.ID] = versions
	return nil
}

func (s *MemStore) Get(id uuid.UUID, version int) (*htc.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.chains[id] {
		if stored.Version == version {
			return stored.Clone(), nil
		}
	}
	return nil, fmt.Errorf("get %s v%d: %w", htc.ShortID(id), version, ErrNotFound)
}

func (s *MemStore) Latest(id uuid.UUID) (*htc.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := s.chains[id]
	if len(versions) == 0 {
		return nil, fmt.Errorf("latest %s: %w", htc.ShortID(id), ErrNotFound)
	}
	return versions[len(versions)-1].Clone(), nil
}

func (s *MemStore) List() ([]Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list []Meta
	for _, versions := range s.chains {
		list = append(list, metaOf(versions[len(versions)-1]))
	}
	// Newest first, id as tiebreak for a stable listing.
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID.String() < list[j].ID.String()
	})
	return list, nil
}

func (s *MemStore) Versions(id uuid.UUID) ([]Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := s.chains[id]
	if len(versions) == 0 {
		return nil, fmt.Errorf("versions %s: %w", htc.ShortID(id), ErrNotFound)
	}
	list := make([]Meta, 0, len(versions))
	for _, a := range versions {
		list = append(list, metaOf(a))
	}
	return list, nil
}

func (s *MemStore) Close() error { return nil }

func metaOf(a *htc.Assessment) Meta {
	return Meta{
		ID:         a.ID,
		Name:       a.Name,
		Version:    a.Version,
		Vectors:    len(a.Vectors),
		Hypotheses: len(a.Hypotheses),
		Signals:    len(a.Signals),
		CreatedAt:  a.CreatedAt,
	}
}
