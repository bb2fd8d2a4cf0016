package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS design_store (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id VARCHAR(64) PRIMARY KEY,
		subject VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// MigrationStatements bring tables created by other systems up to date.
// The campaigns table may predate the designer, so its design columns are added separately.
var MigrationStatements = []string{
	`ALTER TABLE campaigns ADD COLUMN IF NOT EXISTS design JSONB`,
	`ALTER TABLE campaigns ADD COLUMN IF NOT EXISTS html TEXT`,
	`CREATE INDEX IF NOT EXISTS idx_design_store_updated_at ON design_store (updated_at)`,
}

// GetMigrationStatements returns migration statements for database schema setup
func GetMigrationStatements() []string {
	return MigrationStatements
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"design_store",
	"campaigns",
}
