// Package token persists the bearer token and mirrors it into the
// Authorization default header of the shared API client.
//
// Store is the only code allowed to touch either the "auth_token" storage key
// or the Authorization default header. Both are updated under one lock, so a
// reader never observes a persisted token without the header or the reverse.
package token

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/logging"
)

const (
	StorageKey          = "auth_token"
	AuthorizationHeader = "Authorization"
)

type Store struct {
	mu      sync.Mutex
	kv      storage.PersistentKV
	headers *api.Headers
	log     logging.Logger
}

func NewStore(kv storage.PersistentKV, headers *api.Headers, log logging.Logger) *Store {
	return &Store{kv: kv, headers: headers, log: log.With("component", "token_store")}
}

// Get returns the persisted token, or "" when absent or unreadable.
func (s *Store) Get(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// Set persists the trimmed token and installs the header. An empty token
// behaves exactly like Clear.
func (s *Store) Set(ctx context.Context, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.Clear(ctx)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, StorageKey, []byte(token)); err != nil {
		// The header still goes in so this process keeps its session.
		s.log.Warn(ctx, "token not persisted", "error", err)
	}
	s.headers.Set(AuthorizationHeader, "Bearer "+token)
}

// Clear removes the persisted token and deletes the header.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, StorageKey); err != nil {
		s.log.Warn(ctx, "token not removed from storage", "error", err)
	}
	s.headers.Del(AuthorizationHeader)
}

// Initialize re-arms the header from storage. Call once at process start;
// repeated calls leave the same header state.
func (s *Store) Initialize(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.read(ctx)
	if token != "" {
		s.headers.Set(AuthorizationHeader, "Bearer "+token)
	}
	s.log.Debug(ctx, "token store initialized", "has_token", token != "")
	return token
}

// Armed reports whether the Authorization header is currently installed.
func (s *Store) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers.Has(AuthorizationHeader)
}

func (s *Store) read(ctx context.Context) string {
	b, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Warn(ctx, "token storage unavailable", "error", err)
		return ""
	}
	return strings.TrimSpace(string(b))
}
