// Package store defines the document-store collaborator of the pagestack
// hierarchy service.
//
// The interface is deliberately ignorant of the hierarchy. It can insert a
// record, fetch one by identifier, list by an exact filter value, merge a
// field map into one record, and delete; nothing more. Parent-existence
// checks, cascading deletion and sibling ordering all live in the service
// layer, which is why the same interface is implemented both by the
// SurrealDB backend and the PostgreSQL backend without either knowing what a
// "cascade" is.
//
// Mutating operations report what actually happened: UpdatePageFields and
// UpdateBlockFields return whether a record matched, DeletePage and
// DeleteBlock return whether a record was removed. The service turns a false
// into a not-found error; the store itself never does.
package store

import (
	"context"

	"github.com/pagestack/pagestack/pkg/models"
)

// Store is the persistence contract shared by all backends.
//
// Every method returns an error only for store-level failures (connection
// loss, query errors). Absence is communicated through nil pointers, empty
// slices and false booleans, never through errors.
type Store interface {
	// CreateWorkspace inserts a workspace record. The record's ID must be
	// set by the caller; the store persists it as given.
	CreateWorkspace(ctx context.Context, workspace *models.Workspace) error
	// GetWorkspace returns the workspace with the given ID, or nil if it
	// does not exist.
	GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error)
	// ListWorkspaces returns all workspace records in store-native order.
	ListWorkspaces(ctx context.Context) ([]*models.Workspace, error)

	// CreatePage inserts a page record.
	CreatePage(ctx context.Context, page *models.Page) error
	// GetPage returns the page with the given ID, or nil if it does not
	// exist.
	GetPage(ctx context.Context, id models.PageID) (*models.Page, error)
	// ListPages returns all page records.
	ListPages(ctx context.Context) ([]*models.Page, error)
	// ListPagesByWorkspace returns the pages whose workspace_id field
	// equals the given raw string. No identifier parsing happens here: an
	// unparseable or unknown value simply matches nothing.
	ListPagesByWorkspace(ctx context.Context, workspaceID string) ([]*models.Page, error)
	// UpdatePageFields merges the field map into the page with the given
	// ID and reports whether a record matched.
	UpdatePageFields(ctx context.Context, id models.PageID, fields map[string]any) (bool, error)
	// DeletePage removes the page and reports whether a record was
	// actually deleted.
	DeletePage(ctx context.Context, id models.PageID) (bool, error)

	// CreateBlock inserts a block record.
	CreateBlock(ctx context.Context, block *models.Block) error
	// GetBlock returns the block with the given ID, or nil if it does not
	// exist.
	GetBlock(ctx context.Context, id models.BlockID) (*models.Block, error)
	// ListBlocksByPage returns the blocks whose page_id field equals the
	// given raw string, in store-native order. Sorting by position is the
	// service's job.
	ListBlocksByPage(ctx context.Context, pageID string) ([]*models.Block, error)
	// UpdateBlockFields merges the field map into the block with the given
	// ID and reports whether a record matched.
	UpdateBlockFields(ctx context.Context, id models.BlockID, fields map[string]any) (bool, error)
	// DeleteBlock removes the block and reports whether a record was
	// actually deleted.
	DeleteBlock(ctx context.Context, id models.BlockID) (bool, error)
	// DeleteBlocksByPage removes every block whose page_id field equals
	// the given raw string. Deleting zero blocks is success.
	DeleteBlocksByPage(ctx context.Context, pageID string) error

	// Migrate prepares whatever schema the backend needs. Schemaless
	// backends treat this as a no-op.
	Migrate(ctx context.Context) error
	// Close releases the underlying connection.
	Close() error
}
