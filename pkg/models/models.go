package models

import (
	"time"
)

// BlockType represents the kind of content a block holds.
type BlockType string

const (
	BlockTypeText BlockType = "text"
	BlockTypeTodo BlockType = "todo"
)

// Workspace is the top-level container. It owns zero or more pages through
// soft references; nothing in the store enforces the edge.
type Workspace struct {
	ID        WorkspaceID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string      `gorm:"not null" json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Workspace) TableName() string { return "workspace" }

// NewWorkspace builds a workspace record with a generated ID.
func NewWorkspace(name string) *Workspace {
	now := time.Now()
	return &Workspace{
		ID:        NewWorkspaceID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Page is a document belonging to exactly one workspace.
//
// WorkspaceID is deliberately a plain string, not a WorkspaceID: the parent
// reference is stored as the original client-supplied identifier and the
// page listing filters on it by exact string match. The reference is
// validated once, at creation time, and never re-checked afterward.
type Page struct {
	ID          PageID    `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID string    `gorm:"not null;index" json:"workspace_id"`
	Title       string    `gorm:"not null" json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Page) TableName() string { return "page" }

// DefaultPageTitle is used when a page is created without a title.
const DefaultPageTitle = "Untitled"

// NewPage builds a page record, filling in the title default when the field
// was absent from the input. An explicit empty title stays empty.
func NewPage(workspaceID string, title Optional[string]) *Page {
	now := time.Now()
	return &Page{
		ID:          NewPageID(),
		WorkspaceID: workspaceID,
		Title:       title.Or(DefaultPageTitle),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Block is the smallest content unit within a page, ordered among its
// siblings by Position. Position carries no uniqueness constraint: duplicate
// and sparse values are fine, ordering is advisory.
//
// PageID is a plain string for the same reason Page.WorkspaceID is.
type Block struct {
	ID        BlockID   `gorm:"type:uuid;primary_key" json:"id"`
	PageID    string    `gorm:"not null;index" json:"page_id"`
	Type      BlockType `gorm:"not null" json:"type"`
	Content   string    `json:"content"`
	Checked   bool      `json:"checked"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Block) TableName() string { return "block" }

// NewBlock builds a block record, applying defaults for every absent field:
// type text, empty content, unchecked, position 0.
func NewBlock(pageID string, typ Optional[BlockType], content Optional[string], checked Optional[bool], position Optional[int]) *Block {
	now := time.Now()
	return &Block{
		ID:        NewBlockID(),
		PageID:    pageID,
		Type:      typ.Or(BlockTypeText),
		Content:   content.Or(""),
		Checked:   checked.Or(false),
		Position:  position.Or(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PageUpdate is a partial update of a page. Only the title is updatable;
// the workspace reference is immutable after creation.
type PageUpdate struct {
	Title Optional[string] `json:"title"`
}

// Fields returns a mapping of the fields actually present in the update.
// A field explicitly set to its zero value is included; only absent fields
// are excluded.
func (u PageUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Title.Present() {
		fields["title"] = u.Title.Value()
	}
	return fields
}

// BlockUpdate is a partial update of a block. The page reference and the
// block type are immutable after creation.
type BlockUpdate struct {
	Content  Optional[string] `json:"content"`
	Checked  Optional[bool]   `json:"checked"`
	Position Optional[int]    `json:"position"`
}

// Fields returns a mapping of the fields actually present in the update,
// zero values included.
func (u BlockUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Content.Present() {
		fields["content"] = u.Content.Value()
	}
	if u.Checked.Present() {
		fields["checked"] = u.Checked.Value()
	}
	if u.Position.Present() {
		fields["position"] = u.Position.Value()
	}
	return fields
}
