// Package hint keeps the "this client previously had a confirmed session"
// marker. It is only used to pick an optimistic initial status before the
// server answers and is never proof of authentication.
package hint

import (
	"context"

	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/logging"
)

const (
	StorageKey = "session_hint"
	present    = "1"
)

type Store struct {
	kv  storage.PersistentKV
	log logging.Logger
}

func NewStore(kv storage.PersistentKV, log logging.Logger) *Store {
	return &Store{kv: kv, log: log.With("component", "session_hint")}
}

// Present reports whether the marker is set. Storage errors read as absent.
func (s *Store) Present(ctx context.Context) bool {
	v, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Warn(ctx, "session hint unreadable", "error", err)
		return false
	}
	return string(v) == present
}

func (s *Store) Mark(ctx context.Context) {
	if err := s.kv.Set(ctx, StorageKey, []byte(present)); err != nil {
		s.log.Warn(ctx, "session hint not stored", "error", err)
	}
}

func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, StorageKey); err != nil {
		s.log.Warn(ctx, "session hint not removed", "error", err)
	}
}
