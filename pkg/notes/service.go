// Package notes implements the hierarchy manager: the rules that make three
// flat collections behave like a tree.
//
// The service enforces parent existence at creation time (a page needs its
// workspace, a block needs its page), performs the cascading deletion of a
// page's blocks, and derives sibling order by a stable position sort. It
// holds no state of its own and does no locking; the injected store is the
// only shared resource, and the existence-check-then-insert sequences are
// deliberately not atomic (see the package-level concurrency note below).
//
// # Concurrency
//
// Operations are expected to run concurrently, one per request. The
// existence check in CreatePage/CreateBlock and the subsequent insert are
// two separate store calls: a parent deleted in between leaves an orphaned
// child. Likewise the page-delete cascade is two store calls with no
// cross-collection transaction. Both races are accepted; the unconditional
// cascade on every page delete doubles as idempotent cleanup for blocks
// orphaned that way.
package notes

import (
	"context"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/store"
)

// Service executes the hierarchy operations against an injected store.
type Service struct {
	store  store.Store
	logger zerolog.Logger
}

// NewService creates a hierarchy service on top of the given store.
func NewService(st store.Store, logger zerolog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// CreateWorkspaceRequest carries the input for workspace creation.
type CreateWorkspaceRequest struct {
	Name string `json:"name"`
}

func (r CreateWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// CreateWorkspace inserts a new workspace and returns the full record.
func (s *Service) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*models.Workspace, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	workspace := models.NewWorkspace(req.Name)
	if err := s.store.CreateWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("workspace_id", workspace.ID.String()).Msg("workspace created")
	return workspace, nil
}

// ListWorkspaces returns all workspaces in store-native order.
func (s *Service) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	workspaces, err := s.store.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []*models.Workspace{}
	}
	return workspaces, nil
}

// CreatePageRequest carries the input for page creation. Title is optional
// and defaults to "Untitled" when absent.
type CreatePageRequest struct {
	WorkspaceID string                  `json:"workspace_id"`
	Title       models.Optional[string] `json:"title"`
}

func (r CreatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.WorkspaceID, validation.Required),
	)
}

// CreatePage validates the workspace reference, checks that the workspace
// currently exists, and inserts the page. The reference is stored as the
// original string, not the parsed key, and is never re-validated afterward.
func (s *Service) CreatePage(ctx context.Context, req CreatePageRequest) (*models.Page, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	workspaceID, err := models.ParseWorkspaceID(req.WorkspaceID)
	if err != nil {
		return nil, &InvalidIDError{Raw: req.WorkspaceID, Err: err}
	}

	workspace, err := s.store.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, &NotFoundError{Kind: "Workspace"}
	}

	page := models.NewPage(req.WorkspaceID, req.Title)
	if err := s.store.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("page_id", page.ID.String()).
		Str("workspace_id", page.WorkspaceID).
		Msg("page created")
	return page, nil
}

// ListPages returns all pages, or only those of one workspace when
// workspaceID is non-empty. The filter is an exact string match with no
// identifier parsing: an unparseable or unknown workspace id yields an empty
// list, not an error.
func (s *Service) ListPages(ctx context.Context, workspaceID string) ([]*models.Page, error) {
	var (
		pages []*models.Page
		err   error
	)
	if workspaceID != "" {
		pages, err = s.store.ListPagesByWorkspace(ctx, workspaceID)
	} else {
		pages, err = s.store.ListPages(ctx)
	}
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []*models.Page{}
	}
	return pages, nil
}

// UpdatePage applies a partial update to a page and returns the updated
// record. An update with no fields present is a no-op that succeeds without
// touching the store, signalled by a nil record; the caller echoes the
// identifier. The empty-update short circuit runs before identifier parsing.
func (s *Service) UpdatePage(ctx context.Context, rawID string, upd models.PageUpdate) (*models.Page, error) {
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, nil
	}

	id, err := models.ParsePageID(rawID)
	if err != nil {
		return nil, &InvalidIDError{Raw: rawID, Err: err}
	}

	matched, err := s.store.UpdatePageFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, &NotFoundError{Kind: "Page"}
	}

	page, err := s.store.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		// Deleted between the update and the re-fetch.
		return nil, &NotFoundError{Kind: "Page"}
	}
	return page, nil
}

// DeletePage removes a page and every block referencing it. The block
// cascade is keyed on the raw identifier string and runs unconditionally,
// even when the page itself was already absent, so a repeated delete still
// cleans up orphaned blocks. The not-found failure is reported only after
// the cascade has run.
func (s *Service) DeletePage(ctx context.Context, rawID string) error {
	id, err := models.ParsePageID(rawID)
	if err != nil {
		return &InvalidIDError{Raw: rawID, Err: err}
	}

	deleted, err := s.store.DeletePage(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteBlocksByPage(ctx, rawID); err != nil {
		return err
	}

	if !deleted {
		return &NotFoundError{Kind: "Page"}
	}

	s.logger.Debug().Str("page_id", rawID).Msg("page deleted with block cascade")
	return nil
}

// CreateBlockRequest carries the input for block creation. Every field but
// the page reference is optional: type defaults to text, content to empty,
// checked to false, position to 0.
type CreateBlockRequest struct {
	PageID   string                            `json:"page_id"`
	Type     models.Optional[models.BlockType] `json:"type"`
	Content  models.Optional[string]           `json:"content"`
	Checked  models.Optional[bool]             `json:"checked"`
	Position models.Optional[int]              `json:"position"`
}

func (r CreateBlockRequest) Validate() error {
	return validation.Errors{
		"page_id":  validation.Validate(r.PageID, validation.Required),
		"type":     validation.Validate(r.Type.Or(models.BlockTypeText), validation.In(models.BlockTypeText, models.BlockTypeTodo)),
		"position": validation.Validate(r.Position.Or(0), validation.Min(0)),
	}.Filter()
}

// CreateBlock validates the page reference, checks that the page currently
// exists, and inserts the block with its defaults applied.
func (s *Service) CreateBlock(ctx context.Context, req CreateBlockRequest) (*models.Block, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	pageID, err := models.ParsePageID(req.PageID)
	if err != nil {
		return nil, &InvalidIDError{Raw: req.PageID, Err: err}
	}

	page, err := s.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, &NotFoundError{Kind: "Page"}
	}

	block := models.NewBlock(req.PageID, req.Type, req.Content, req.Checked, req.Position)
	if err := s.store.CreateBlock(ctx, block); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("block_id", block.ID.String()).
		Str("page_id", block.PageID).
		Msg("block created")
	return block, nil
}

// ListBlocks returns the blocks of one page, sorted ascending by position.
// The sort is stable: blocks sharing a position keep the store's natural
// order, which both backends return as insertion order. The page itself is
// not checked for existence; an unknown page id yields an empty list.
func (s *Service) ListBlocks(ctx context.Context, pageID string) ([]*models.Block, error) {
	blocks, err := s.store.ListBlocksByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []*models.Block{}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Position < blocks[j].Position
	})
	return blocks, nil
}

// UpdateBlock applies a partial update to a block, with the same no-op and
// short-circuit semantics as UpdatePage.
func (s *Service) UpdateBlock(ctx context.Context, rawID string, upd models.BlockUpdate) (*models.Block, error) {
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, nil
	}

	if upd.Position.Present() {
		if err := validation.Validate(upd.Position.Value(), validation.Min(0)); err != nil {
			return nil, &ValidationError{Err: validation.Errors{"position": err}}
		}
	}

	id, err := models.ParseBlockID(rawID)
	if err != nil {
		return nil, &InvalidIDError{Raw: rawID, Err: err}
	}

	matched, err := s.store.UpdateBlockFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, &NotFoundError{Kind: "Block"}
	}

	block, err := s.store.GetBlock(ctx, id)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, &NotFoundError{Kind: "Block"}
	}
	return block, nil
}

// DeleteBlock removes a single block. Blocks have no children, so there is
// no cascade.
func (s *Service) DeleteBlock(ctx context.Context, rawID string) error {
	id, err := models.ParseBlockID(rawID)
	if err != nil {
		return &InvalidIDError{Raw: rawID, Err: err}
	}

	deleted, err := s.store.DeleteBlock(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Kind: "Block"}
	}
	return nil
}
