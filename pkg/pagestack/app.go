package pagestack

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pagestack/pagestack/pkg/notes"
	"github.com/pagestack/pagestack/pkg/store"
	"github.com/pagestack/pagestack/pkg/store/postgres"
	"github.com/pagestack/pagestack/pkg/store/surrealdb"
)

// Config holds the application configuration shared by all commands.
type Config struct {
	// Database configuration
	PostgresDSN   string
	SurrealDBURL  string
	SurrealDBNS   string
	SurrealDBDB   string
	SurrealDBUser string
	SurrealDBPass string

	// UsePostgres selects the PostgreSQL backend instead of SurrealDB.
	UsePostgres bool

	// ReadOnly rejects all write operations when true.
	ReadOnly bool

	// Server configuration
	ServerPort string
}

// App wires the selected store, the hierarchy service, and the HTTP surface.
type App struct {
	store    store.Store
	service  *notes.Service
	config   *Config
	logger   zerolog.Logger
	readOnly bool
}

// New connects to the configured backend and builds the application.
// The store is wrapped with read-only protection; the wrapper consults
// App.IsReadOnly on every write so the mode can be toggled at runtime.
func New(config *Config, logger zerolog.Logger) (*App, error) {
	var (
		backing store.Store
		err     error
	)

	if config.UsePostgres {
		backing, err = postgres.NewPostgresStore(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		logger.Info().Msg("connected to PostgreSQL")
	} else {
		backing, err = surrealdb.NewSurrealStore(
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
		}
		logger.Info().Str("url", config.SurrealDBURL).Msg("connected to SurrealDB")
	}

	app := &App{
		config:   config,
		logger:   logger,
		readOnly: config.ReadOnly,
	}
	app.store = store.NewReadOnlyStore(backing, app.IsReadOnly)
	app.service = notes.NewService(app.store, logger)

	return app, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the wrapped store, useful for tests.
func (a *App) Store() store.Store {
	return a.store
}

// SetReadOnly toggles the runtime read-only mode. Reads keep working while
// writes are rejected, which is what a maintenance window needs.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly = readOnly
	a.logger.Info().Bool("read_only", readOnly).Msg("read-only mode changed")
}

// IsReadOnly reports the current read-only state. The store wrapper calls it
// on every write, so it must stay cheap.
func (a *App) IsReadOnly() bool {
	return a.readOnly
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
