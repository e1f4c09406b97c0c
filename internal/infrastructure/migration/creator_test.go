package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "Add Cars Table")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.Contains(t, mf.UpPath, "add_cars_table.up.sql")
		assert.Contains(t, mf.DownPath, "add_cars_table.down.sql")

		content, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "-- Migration: Add Cars Table"))
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("collapses up and down files into one entry", func(t *testing.T) {
		dir := t.TempDir()

		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Len(t, migrations, 1)
		assert.Contains(t, migrations[0], "first")
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		migrations, err := ListMigrations("/nonexistent/path")

		assert.NoError(t, err)
		assert.Empty(t, migrations)
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_cars_table", sanitizeName("Add Cars Table"))
	assert.Equal(t, "fix_v2", sanitizeName("fix---v2!"))
	assert.Equal(t, "trailing", sanitizeName("trailing "))
}
