package pagestack

// Command is a discrete application operation selected on the command line.
// Each implementation carries its own options; shared configuration lives in
// [Config]. The name is used for routing in [Main].
type Command interface {
	// Name returns the command identifier matching the CLI subcommand.
	Name() string
}

// RunCommand starts the HTTP server. All of its configuration currently
// comes from [Config].
type RunCommand struct{}

func (c *RunCommand) Name() string {
	return "run"
}

// MigrateCommand initializes or updates the database schema. It is a no-op
// on SurrealDB, where tables are created on first insert, and runs GORM
// AutoMigrate on PostgreSQL. Safe to run repeatedly.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}
