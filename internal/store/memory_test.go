package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ReadWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Write(ctx, "k", []byte(`{"a":1}`)))

	value, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)

	// Overwrite
	require.NoError(t, s.Write(ctx, "k", []byte(`{"a":2}`)))
	value, err = s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), value)
}

func TestMemoryStore_Exists(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	exists, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Write(ctx, "k", []byte("v")))

	exists, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Write(ctx, "a", []byte("1")))
	require.NoError(t, s.Write(ctx, "b", []byte("2")))

	require.NoError(t, s.Clear(ctx))

	_, err := s.Read(ctx, "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = s.Read(ctx, "b")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	original := []byte("abc")
	require.NoError(t, s.Write(ctx, "k", original))

	// Mutating the caller's slice must not affect the stored value
	original[0] = 'x'
	value, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), value)

	// Mutating a read result must not affect subsequent reads
	value[0] = 'y'
	again, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
