package pagestack

import (
	"context"
	"fmt"
)

// Migrate brings the active backend's schema up to date. PostgreSQL gets its
// tables through GORM AutoMigrate; SurrealDB needs nothing because tables
// appear on first insert. Running it again is harmless.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.logger.Info().Msg("running database migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.logger.Info().Msg("migrations completed")
	return nil
}
