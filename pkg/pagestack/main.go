package pagestack

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Main parses the arguments, builds the application, and executes the
// selected command. It is the whole program behind cmd/pagestack, kept here
// so tests can drive it without building the binary. The context cancels the
// server for graceful shutdown.
func Main(ctx context.Context, args []string, logger zerolog.Logger) error {
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	app, err := New(config, logger)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	switch c := cmd.(type) {
	case *MigrateCommand:
		if err := app.Migrate(ctx, c); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}

	return nil
}
