package store

import (
	"context"
	"fmt"

	"github.com/pagestack/pagestack/pkg/models"
)

// ReadOnlyStore wraps a Store and rejects write operations while the
// application is in read-only mode.
//
// The read-only state is determined dynamically by the isReadOnly function,
// so the application can toggle between read-write and read-only during a
// maintenance window without recreating the store instance. Read operations
// always pass through.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a new read-only wrapper for a store.
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store.
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

func (r *ReadOnlyStore) checkReadOnly() error {
	if r.isReadOnly() {
		return fmt.Errorf("operation denied: application is in read-only mode")
	}
	return nil
}

// Write operations - check read-only mode first

func (r *ReadOnlyStore) CreateWorkspace(ctx context.Context, workspace *models.Workspace) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateWorkspace(ctx, workspace)
}

func (r *ReadOnlyStore) CreatePage(ctx context.Context, page *models.Page) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreatePage(ctx, page)
}

func (r *ReadOnlyStore) UpdatePageFields(ctx context.Context, id models.PageID, fields map[string]any) (bool, error) {
	if err := r.checkReadOnly(); err != nil {
		return false, err
	}
	return r.Store.UpdatePageFields(ctx, id, fields)
}

func (r *ReadOnlyStore) DeletePage(ctx context.Context, id models.PageID) (bool, error) {
	if err := r.checkReadOnly(); err != nil {
		return false, err
	}
	return r.Store.DeletePage(ctx, id)
}

func (r *ReadOnlyStore) CreateBlock(ctx context.Context, block *models.Block) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateBlock(ctx, block)
}

func (r *ReadOnlyStore) UpdateBlockFields(ctx context.Context, id models.BlockID, fields map[string]any) (bool, error) {
	if err := r.checkReadOnly(); err != nil {
		return false, err
	}
	return r.Store.UpdateBlockFields(ctx, id, fields)
}

func (r *ReadOnlyStore) DeleteBlock(ctx context.Context, id models.BlockID) (bool, error) {
	if err := r.checkReadOnly(); err != nil {
		return false, err
	}
	return r.Store.DeleteBlock(ctx, id)
}

func (r *ReadOnlyStore) DeleteBlocksByPage(ctx context.Context, pageID string) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteBlocksByPage(ctx, pageID)
}
