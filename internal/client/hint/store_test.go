package hint

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAndClear(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := NewStore(kv, logging.Discard())
	ctx := context.Background()

	assert.False(t, s.Present(ctx))

	s.Mark(ctx)
	assert.True(t, s.Present(ctx))
	v, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	s.Mark(ctx)
	assert.True(t, s.Present(ctx))

	s.Clear(ctx)
	assert.False(t, s.Present(ctx))
	v, err = kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPresent_OnlyLiteralOne(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), StorageKey, []byte("true")))

	assert.False(t, NewStore(kv, logging.Discard()).Present(context.Background()))
}

func TestPresent_StorageErrorReadsAsAbsent(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.Close()
	s := NewStore(kv, logging.Discard())
	ctx := context.Background()

	s.Mark(ctx)
	s.Clear(ctx)
	assert.False(t, s.Present(ctx))
}
