package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := newTestSession(t)
	require.NoError(t, store.SaveSession(ctx, s))

	// Changes after a save are not visible until the next save.
	require.NoError(t, s.GameState.RecordNightPhaseDeath("Bob"))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 0, loaded.GameState.Round)
	alive, err := loaded.GameState.IsAlive("Bob")
	require.NoError(t, err)
	assert.True(t, alive)

	require.NoError(t, store.SaveSession(ctx, s))
	loaded, err = store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	alive, err = loaded.GameState.IsAlive("Bob")
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestMemoryStore_MissingAndDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	loaded, err := store.LoadSession(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	s := newTestSession(t)
	require.NoError(t, store.SaveSession(ctx, s))
	require.NoError(t, store.DeleteSession(ctx, s.ID))
	loaded, err = store.LoadSession(ctx, s.ID)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStore_Ping(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Ping(context.Background()))

	store.SetPingError(errors.New("down"))
	assert.Error(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
}
