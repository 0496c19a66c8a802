package integration

import (
	"strings"
	"testing"

	"github.com/propman/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// TestMigrations_UpDown runs the schema up and down on a scratch database in
// the shared container.
func TestMigrations_UpDown(t *testing.T) {
	tdb := NewSharedTestDB(t)

	require.NoError(t, tdb.DB.Exec(`DROP DATABASE IF EXISTS migration_check`).Error)
	require.NoError(t, tdb.DB.Exec(`CREATE DATABASE migration_check`).Error)
	t.Cleanup(func() { _ = tdb.DB.Exec(`DROP DATABASE IF EXISTS migration_check WITH (FORCE)`).Error })

	dsn := strings.Replace(tdb.DSN, "/propman_test?", "/migration_check?", 1)
	scratch, sqlDB := connectToDatabase(t, dsn)

	m, err := migration.New(sqlDB, findMigrationsPath(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(20240601090100), version)
	assert.False(t, dirty)

	var categories int64
	require.NoError(t, scratch.Raw(`SELECT COUNT(*) FROM expense_categories`).Scan(&categories).Error)
	assert.Equal(t, int64(13), categories)

	// Re-running is a no-op
	require.NoError(t, m.Up())

	require.NoError(t, m.Steps(-1))
	require.NoError(t, scratch.Raw(`SELECT COUNT(*) FROM expense_categories`).Scan(&categories).Error)
	assert.Zero(t, categories)

	require.NoError(t, m.Down())
	var tables int64
	require.NoError(t, scratch.Raw(
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name = 'properties'`,
	).Scan(&tables).Error)
	assert.Zero(t, tables)
}
