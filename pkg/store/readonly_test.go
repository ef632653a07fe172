package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/store"
	"github.com/pagestack/pagestack/pkg/store/storetest"
)

func TestReadOnlyStoreRejectsWrites(t *testing.T) {
	ctx := context.Background()
	backing := storetest.NewMemoryStore()

	readOnly := false
	wrapped := store.NewReadOnlyStore(backing, func() bool { return readOnly })

	ws := models.NewWorkspace("Eng")
	require.NoError(t, wrapped.CreateWorkspace(ctx, ws))

	readOnly = true

	err := wrapped.CreateWorkspace(ctx, models.NewWorkspace("Ops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")

	_, err = wrapped.UpdatePageFields(ctx, models.NewPageID(), map[string]any{"title": "x"})
	require.Error(t, err)

	_, err = wrapped.DeletePage(ctx, models.NewPageID())
	require.Error(t, err)

	err = wrapped.DeleteBlocksByPage(ctx, "some-page")
	require.Error(t, err)

	// Reads pass through in read-only mode.
	got, err := wrapped.GetWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Eng", got.Name)

	listed, err := wrapped.ListWorkspaces(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	readOnly = false
	require.NoError(t, wrapped.CreateWorkspace(ctx, models.NewWorkspace("Ops")))
}

func TestReadOnlyStoreUnwrap(t *testing.T) {
	backing := storetest.NewMemoryStore()
	wrapped := store.NewReadOnlyStore(backing, func() bool { return true })

	ro, ok := wrapped.(*store.ReadOnlyStore)
	require.True(t, ok)
	assert.Equal(t, store.Store(backing), ro.Unwrap())
}
