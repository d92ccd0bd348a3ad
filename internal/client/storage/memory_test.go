package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_Basic(t *testing.T) {
	m := NewMemoryKV()
	ctx := context.Background()

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	in := []byte("v")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'x'

	v, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v, "stored value must not alias the caller's slice")

	require.NoError(t, m.Remove(ctx, "k"))
	v, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryKV_Closed(t *testing.T) {
	m := NewMemoryKV()
	m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, m.Set(ctx, "k", nil), ErrClosed)
	require.ErrorIs(t, m.Remove(ctx, "k"), ErrClosed)
	require.ErrorIs(t, m.Clear(ctx), ErrClosed)
	_, err = m.Keys(ctx)
	require.ErrorIs(t, err, ErrClosed)
}

func TestMemoryKV_KeysAndClear(t *testing.T) {
	m := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "b", []byte("2")))
	require.NoError(t, m.Set(ctx, "a", []byte("1")))

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, m.Clear(ctx))
	keys, err = m.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	var _ Resettable = m
	var _ Resettable = (*SQLiteKV)(nil)
}

func TestMemoryKV_ConcurrentAccess(t *testing.T) {
	m := NewMemoryKV()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "k", []byte("v"))
			_, _ = m.Get(ctx, "k")
			_ = m.Remove(ctx, "k")
		}()
	}
	wg.Wait()
}

var _ PersistentKV = (*MemoryKV)(nil)
var _ PersistentKV = (*SQLiteKV)(nil)
