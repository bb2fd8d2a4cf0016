package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableDefinitions(t *testing.T) {
	assert.Len(t, TableDefinitions, len(TableNames))

	for i, name := range TableNames {
		stmt := TableDefinitions[i]
		assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS "+name+" ("),
			"definition %d should create %s", i, name)
		assert.NotContains(t, strings.ToUpper(stmt), "REFERENCES")
		assert.NotContains(t, strings.ToUpper(stmt), "CHECK (")
	}
}

func TestMigrationStatements(t *testing.T) {
	stmts := GetMigrationStatements()
	assert.NotEmpty(t, stmts)

	for _, stmt := range stmts {
		upper := strings.ToUpper(stmt)
		assert.Contains(t, upper, "IF NOT EXISTS", "migrations must be idempotent: %s", stmt)
		assert.NotContains(t, upper, "DROP ")
	}

	all := strings.Join(stmts, " ")
	assert.Contains(t, all, "campaigns ADD COLUMN IF NOT EXISTS design JSONB")
	assert.Contains(t, all, "campaigns ADD COLUMN IF NOT EXISTS html TEXT")
}

func TestTableNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range TableNames {
		assert.Equal(t, strings.ToLower(name), name)
		assert.NotContains(t, name, "-")
		assert.False(t, seen[name], "duplicate table %s", name)
		seen[name] = true
	}
}
