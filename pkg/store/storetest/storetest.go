// Package storetest provides an in-memory Store used by service and handler
// tests. It preserves insertion order, counts every store access so tests
// can assert that identifier validation runs before any store call, and can
// be switched into a failing mode to exercise store-failure paths.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/store"
)

// MemoryStore is an insertion-ordered, mutex-guarded Store implementation.
type MemoryStore struct {
	mu         sync.Mutex
	workspaces []*models.Workspace
	pages      []*models.Page
	blocks     []*models.Block
	calls      int
	failWith   error
}

var _ store.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Calls returns how many store operations have been invoked.
func (m *MemoryStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// FailWith makes every subsequent operation return err. Pass nil to restore
// normal behavior.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// SeedBlock inserts a block without counting as a store access. Tests use it
// to plant orphaned blocks directly.
func (m *MemoryStore) SeedBlock(block *models.Block) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := *block
	m.blocks = append(m.blocks, &b)
}

// enter counts the access and reports a forced failure, if any.
func (m *MemoryStore) enter() error {
	m.calls++
	return m.failWith
}

func (m *MemoryStore) CreateWorkspace(ctx context.Context, workspace *models.Workspace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	w := *workspace
	m.workspaces = append(m.workspaces, &w)
	return nil
}

func (m *MemoryStore) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	for _, w := range m.workspaces {
		if w.ID == id {
			copied := *w
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := make([]*models.Workspace, 0, len(m.workspaces))
	for _, w := range m.workspaces {
		copied := *w
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryStore) CreatePage(ctx context.Context, page *models.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	p := *page
	m.pages = append(m.pages, &p)
	return nil
}

func (m *MemoryStore) GetPage(ctx context.Context, id models.PageID) (*models.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	for _, p := range m.pages {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListPages(ctx context.Context) ([]*models.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := make([]*models.Page, 0, len(m.pages))
	for _, p := range m.pages {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryStore) ListPagesByWorkspace(ctx context.Context, workspaceID string) ([]*models.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	var out []*models.Page
	for _, p := range m.pages {
		if p.WorkspaceID == workspaceID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdatePageFields(ctx context.Context, id models.PageID, fields map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	for _, p := range m.pages {
		if p.ID == id {
			if title, ok := fields["title"]; ok {
				p.Title = title.(string)
			}
			p.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) DeletePage(ctx context.Context, id models.PageID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	for i, p := range m.pages {
		if p.ID == id {
			m.pages = append(m.pages[:i], m.pages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) CreateBlock(ctx context.Context, block *models.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	b := *block
	m.blocks = append(m.blocks, &b)
	return nil
}

func (m *MemoryStore) GetBlock(ctx context.Context, id models.BlockID) (*models.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	for _, b := range m.blocks {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListBlocksByPage(ctx context.Context, pageID string) ([]*models.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	var out []*models.Block
	for _, b := range m.blocks {
		if b.PageID == pageID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateBlockFields(ctx context.Context, id models.BlockID, fields map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	for _, b := range m.blocks {
		if b.ID == id {
			if content, ok := fields["content"]; ok {
				b.Content = content.(string)
			}
			if checked, ok := fields["checked"]; ok {
				b.Checked = checked.(bool)
			}
			if position, ok := fields["position"]; ok {
				b.Position = position.(int)
			}
			b.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) DeleteBlock(ctx context.Context, id models.BlockID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return false, err
	}
	for i, b := range m.blocks {
		if b.ID == id {
			m.blocks = append(m.blocks[:i], m.blocks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) DeleteBlocksByPage(ctx context.Context, pageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	kept := m.blocks[:0]
	for _, b := range m.blocks {
		if b.PageID != pageID {
			kept = append(kept, b)
		}
	}
	m.blocks = kept
	return nil
}

func (m *MemoryStore) Migrate(ctx context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
