package token

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenKV fails every call, like storage disabled by privacy settings.
type brokenKV struct{}

var errBroken = errors.New("storage disabled")

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenKV) Set(context.Context, string, []byte) error   { return errBroken }
func (brokenKV) Remove(context.Context, string) error        { return errBroken }

func newStore(kv storage.PersistentKV) (*Store, *api.Headers) {
	h := api.NewHeaders()
	return NewStore(kv, h, logging.Discard()), h
}

func persisted(t *testing.T, kv storage.PersistentKV) []byte {
	t.Helper()
	v, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	return v
}

func TestSet_TrimsAndInstallsHeader(t *testing.T) {
	kv := storage.NewMemoryKV()
	s, h := newStore(kv)
	ctx := context.Background()

	s.Set(ctx, " abc ")

	assert.Equal(t, []byte("abc"), persisted(t, kv))
	assert.Equal(t, "abc", s.Get(ctx))
	assert.Equal(t, "Bearer abc", h.Get(AuthorizationHeader))
}

func TestSetEmpty_EquivalentToClear(t *testing.T) {
	ctx := context.Background()

	for name, reset := range map[string]func(*Store){
		"set empty": func(s *Store) { s.Set(ctx, "   ") },
		"clear":     func(s *Store) { s.Clear(ctx) },
	} {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryKV()
			s, h := newStore(kv)
			s.Set(ctx, "abc")

			reset(s)

			assert.Nil(t, persisted(t, kv))
			assert.Equal(t, "", s.Get(ctx))
			assert.False(t, h.Has(AuthorizationHeader), "header must be absent, not empty")
		})
	}
}

func TestInitialize_RearmsHeaderAndIsIdempotent(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), StorageKey, []byte(" t1\n")))
	s, h := newStore(kv)
	ctx := context.Background()

	assert.Equal(t, "t1", s.Initialize(ctx))
	first := h.Get(AuthorizationHeader)
	assert.Equal(t, "t1", s.Initialize(ctx))

	assert.Equal(t, "Bearer t1", first)
	assert.Equal(t, first, h.Get(AuthorizationHeader))
}

func TestInitialize_EmptyStorageLeavesHeaderAbsent(t *testing.T) {
	s, h := newStore(storage.NewMemoryKV())

	assert.Equal(t, "", s.Initialize(context.Background()))
	assert.False(t, h.Has(AuthorizationHeader))
}

func TestStorageFailuresDegrade(t *testing.T) {
	s, h := newStore(brokenKV{})
	ctx := context.Background()

	assert.Equal(t, "", s.Initialize(ctx))
	assert.Equal(t, "", s.Get(ctx))

	s.Set(ctx, "abc")
	assert.Equal(t, "Bearer abc", h.Get(AuthorizationHeader))

	s.Clear(ctx)
	assert.False(t, h.Has(AuthorizationHeader))
}

func TestArmed_FollowsHeader(t *testing.T) {
	s, h := newStore(storage.NewMemoryKV())
	ctx := context.Background()

	assert.False(t, s.Armed())

	s.Set(ctx, "abc")
	assert.True(t, s.Armed())

	h.Del(AuthorizationHeader)
	assert.False(t, s.Armed())

	s.Initialize(ctx)
	assert.True(t, s.Armed())

	s.Clear(ctx)
	assert.False(t, s.Armed())
}
