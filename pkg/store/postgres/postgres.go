// Package postgres provides the PostgreSQL implementation of the
// [github.com/pagestack/pagestack/pkg/store.Store] interface using GORM.
//
// The relational backend maps each collection to a table of the same name
// (workspace, page, block). The parent references stay plain string columns
// with an index and no foreign-key constraint: referential integrity is the
// service layer's job, and the two backends must agree on what the store
// does and does not enforce.
//
// Field-map updates use GORM's Updates with a map, which issues a single SET
// for exactly the supplied columns; RowsAffected supplies the matched/deleted
// booleans the interface requires.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pagestack/pagestack/pkg/models"
	"github.com/pagestack/pagestack/pkg/store"
)

// PostgresStore implements the Store interface using PostgreSQL with GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to PostgreSQL with the given DSN.
func NewPostgresStore(dsn string) (store.Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Migrate creates or updates the workspace, page and block tables via GORM
// AutoMigrate. Safe to run repeatedly; it only adds missing schema elements.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Workspace{},
		&models.Page{},
		&models.Block{},
	)
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Workspace operations

func (s *PostgresStore) CreateWorkspace(ctx context.Context, workspace *models.Workspace) error {
	if err := s.db.WithContext(ctx).Create(workspace).Error; err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetWorkspace(ctx context.Context, id models.WorkspaceID) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.WithContext(ctx).First(&workspace, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return &workspace, nil
}

func (s *PostgresStore) ListWorkspaces(ctx context.Context) ([]*models.Workspace, error) {
	var workspaces []*models.Workspace
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&workspaces).Error; err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Page operations

func (s *PostgresStore) CreatePage(ctx context.Context, page *models.Page) error {
	if err := s.db.WithContext(ctx).Create(page).Error; err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPage(ctx context.Context, id models.PageID) (*models.Page, error) {
	var page models.Page
	err := s.db.WithContext(ctx).First(&page, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return &page, nil
}

func (s *PostgresStore) ListPages(ctx context.Context) ([]*models.Page, error) {
	var pages []*models.Page
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

func (s *PostgresStore) ListPagesByWorkspace(ctx context.Context, workspaceID string) ([]*models.Page, error) {
	var pages []*models.Page
	err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

func (s *PostgresStore) UpdatePageFields(ctx context.Context, id models.PageID, fields map[string]any) (bool, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	tx := s.db.WithContext(ctx).
		Model(&models.Page{}).
		Where("id = ?", id.String()).
		Updates(updates)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to update page: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (s *PostgresStore) DeletePage(ctx context.Context, id models.PageID) (bool, error) {
	tx := s.db.WithContext(ctx).Delete(&models.Page{}, "id = ?", id.String())
	if tx.Error != nil {
		return false, fmt.Errorf("failed to delete page: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// Block operations

func (s *PostgresStore) CreateBlock(ctx context.Context, block *models.Block) error {
	if err := s.db.WithContext(ctx).Create(block).Error; err != nil {
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBlock(ctx context.Context, id models.BlockID) (*models.Block, error) {
	var block models.Block
	err := s.db.WithContext(ctx).First(&block, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return &block, nil
}

func (s *PostgresStore) ListBlocksByPage(ctx context.Context, pageID string) ([]*models.Block, error) {
	// created_at order gives the service's stable position sort its
	// insertion-order tie-breaking.
	var blocks []*models.Block
	err := s.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("created_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}

func (s *PostgresStore) UpdateBlockFields(ctx context.Context, id models.BlockID, fields map[string]any) (bool, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	tx := s.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("id = ?", id.String()).
		Updates(updates)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to update block: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (s *PostgresStore) DeleteBlock(ctx context.Context, id models.BlockID) (bool, error) {
	tx := s.db.WithContext(ctx).Delete(&models.Block{}, "id = ?", id.String())
	if tx.Error != nil {
		return false, fmt.Errorf("failed to delete block: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (s *PostgresStore) DeleteBlocksByPage(ctx context.Context, pageID string) error {
	err := s.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Delete(&models.Block{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete blocks for page: %w", err)
	}
	return nil
}
