// Package memory holds in-process repositories, used by tests and by
// careers that opt out of persistence.
package memory

import (
	"context"
	"sync"

	"github.com/mskarstad/benchboss/internal/domain/save"
)

type SaveStore struct {
	mu   sync.RWMutex
	snap save.Snapshot
	has  bool
}

func NewSaveStore() *SaveStore {
	return &SaveStore{}
}

func (s *SaveStore) Save(_ context.Context, snap save.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap
	s.has = true
	return nil
}

func (s *SaveStore) Load(_ context.Context) (save.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has {
		return save.Snapshot{}, save.ErrNoSave
	}
	return s.snap, nil
}

func (s *SaveStore) Peek(_ context.Context) (save.Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has {
		return save.Metadata{}, save.ErrNoSave
	}
	return save.Metadata{
		TeamName:    s.snap.TeamName,
		SeasonCount: s.snap.SeasonCount,
		SavedAt:     s.snap.SavedAt,
	}, nil
}
