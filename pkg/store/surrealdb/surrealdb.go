// Package surrealdb provides the SurrealDB implementation of the
// [github.com/pagestack/pagestack/pkg/store.Store] interface using native
// SurrealQL.
//
// The implementation uses the surrealcbor codec for marshaling. SurrealDB
// speaks CBOR internally, and the custom codec is what makes time.Time and
// the typed record IDs serialize in the format SurrealDB expects; with the
// default codec, datetime values and RecordIDs round-trip incorrectly.
//
// Every query that touches user-supplied values is parameterized ($param
// syntax). Record identifiers are bound as RecordID values produced by the
// typed IDs, never interpolated into query strings.
//
// The soft parent references (page.workspace_id, block.page_id) are stored
// as plain strings, exactly as the client supplied them. Listing and cascade
// deletion filter on those strings with WHERE equality, so a dangling or
// malformed reference matches nothing instead of failing.
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/store"
)

// SurrealStore implements the Store interface on a SurrealDB connection.
type SurrealStore struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// NewSurrealStore connects to SurrealDB over WebSocket with the surrealcbor
// codec, authenticates when credentials are given, and selects the
// namespace/database pair.
func NewSurrealStore(wsURL, namespace, database, username, password string) (store.Store, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	// The custom codec is required for correct time.Time and RecordID
	// handling; see the package comment.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{
		db:       db,
		ns:       namespace,
		database: database,
	}, nil
}

// Migrate is a no-op: SurrealDB creates tables implicitly on first insert.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	return nil
}

// Close closes the database connection.
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound maps the driver's "no such record" errors to nil so callers
// can treat absence as a nil record rather than a failure.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

// firstResult extracts the rows of the first statement of a query response.
func firstResult[T any](res *[]surrealdb.QueryResult[[]T]) []T {
	if res == nil || len(*res) == 0 {
		return nil
	}
	return (*res)[0].Result
}

func toPointers[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}

// Workspace operations

func (s *SurrealStore) CreateWorkspace(ctx context.Context, workspace *models.Workspace) error {
	// The typed ID marshals to a RecordID, so the record keeps the
	// caller-generated identifier.
	_, err := surrealdb.Create[models.Workspace](ctx, s.db, "workspace", workspace)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	workspace, err := surrealdb.Select[models.Workspace](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return workspace, nil
}

func (s *SurrealStore) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	result, err := surrealdb.Query[[]models.Workspace](ctx, s.db,
		"SELECT * FROM workspace ORDER BY created_at ASC", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return toPointers(firstResult(result)), nil
}

// Page operations

func (s *SurrealStore) CreatePage(ctx context.Context, page *models.Page) error {
	_, err := surrealdb.Create[models.Page](ctx, s.db, "page", page)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetPage(ctx context.Context, id models.PageID) (*models.Page, error) {
	page, err := surrealdb.Select[models.Page](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}

func (s *SurrealStore) ListPages(ctx context.Context) ([]*models.Page, error) {
	result, err := surrealdb.Query[[]models.Page](ctx, s.db,
		"SELECT * FROM page ORDER BY created_at ASC", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return toPointers(firstResult(result)), nil
}

func (s *SurrealStore) ListPagesByWorkspace(ctx context.Context, workspaceID string) ([]*models.Page, error) {
	// workspace_id is compared as the raw string the client supplied.
	result, err := surrealdb.Query[[]models.Page](ctx, s.db,
		"SELECT * FROM page WHERE workspace_id = $workspace_id ORDER BY created_at ASC",
		map[string]any{"workspace_id": workspaceID})
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return toPointers(firstResult(result)), nil
}

func (s *SurrealStore) UpdatePageFields(ctx context.Context, id models.PageID, fields map[string]any) (bool, error) {
	merge := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merge[k] = v
	}
	merge["updated_at"] = time.Now()

	result, err := surrealdb.Query[[]models.Page](ctx, s.db,
		"UPDATE $page MERGE $fields RETURN AFTER",
		map[string]any{"page": id.RecordID(), "fields": merge})
	if err != nil {
		return false, fmt.Errorf("failed to update page: %w", err)
	}
	return len(firstResult(result)) > 0, nil
}

func (s *SurrealStore) DeletePage(ctx context.Context, id models.PageID) (bool, error) {
	result, err := surrealdb.Query[[]models.Page](ctx, s.db,
		"DELETE $page RETURN BEFORE",
		map[string]any{"page": id.RecordID()})
	if err != nil {
		return false, fmt.Errorf("failed to delete page: %w", err)
	}
	return len(firstResult(result)) > 0, nil
}

// Block operations

func (s *SurrealStore) CreateBlock(ctx context.Context, block *models.Block) error {
	_, err := surrealdb.Create[models.Block](ctx, s.db, "block", block)
	if err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetBlock(ctx context.Context, id models.BlockID) (*models.Block, error) {
	block, err := surrealdb.Select[models.Block](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return block, nil
}

func (s *SurrealStore) ListBlocksByPage(ctx context.Context, pageID string) ([]*models.Block, error) {
	// Ordered by creation time so that the service's stable position sort
	// breaks ties by insertion order.
	result, err := surrealdb.Query[[]models.Block](ctx, s.db,
		"SELECT * FROM block WHERE page_id = $page_id ORDER BY created_at ASC",
		map[string]any{"page_id": pageID})
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return toPointers(firstResult(result)), nil
}

func (s *SurrealStore) UpdateBlockFields(ctx context.Context, id models.BlockID, fields map[string]any) (bool, error) {
	merge := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merge[k] = v
	}
	merge["updated_at"] = time.Now()

	result, err := surrealdb.Query[[]models.Block](ctx, s.db,
		"UPDATE $block MERGE $fields RETURN AFTER",
		map[string]any{"block": id.RecordID(), "fields": merge})
	if err != nil {
		return false, fmt.Errorf("failed to update block: %w", err)
	}
	return len(firstResult(result)) > 0, nil
}

func (s *SurrealStore) DeleteBlock(ctx context.Context, id models.BlockID) (bool, error) {
	result, err := surrealdb.Query[[]models.Block](ctx, s.db,
		"DELETE $block RETURN BEFORE",
		map[string]any{"block": id.RecordID()})
	if err != nil {
		return false, fmt.Errorf("failed to delete block: %w", err)
	}
	return len(firstResult(result)) > 0, nil
}

func (s *SurrealStore) DeleteBlocksByPage(ctx context.Context, pageID string) error {
	_, err := surrealdb.Query[any](ctx, s.db,
		"DELETE block WHERE page_id = $page_id",
		map[string]any{"page_id": pageID})
	if err != nil {
		return fmt.Errorf("failed to delete blocks for page: %w", err)
	}
	return nil
}
