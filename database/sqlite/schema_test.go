package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sagarc03/galleria/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestValidateSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("migrated tables validate", func(t *testing.T) {
		db := setupTestDB(t)
		assert.NoError(t, db.Validate(ctx))
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		raw, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		raw.SetMaxOpenConns(1)
		defer func() { _ = raw.Close() }()

		tables := randomTables(t)
		require.NoError(t, sqlite.Migrate(ctx, raw, tables))
		require.NoError(t, sqlite.Migrate(ctx, raw, tables))
		assert.NoError(t, sqlite.ValidateSchema(ctx, raw, tables))
	})

	t.Run("missing tables", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.DropTables(ctx))

		err := db.Validate(ctx)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("missing column", func(t *testing.T) {
		raw, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		raw.SetMaxOpenConns(1)
		defer func() { _ = raw.Close() }()

		tables := randomTables(t)
		require.NoError(t, sqlite.Migrate(ctx, raw, tables))
		_, err = raw.ExecContext(ctx, `DROP TABLE "`+tables.Users+`"`)
		require.NoError(t, err)
		_, err = raw.ExecContext(ctx, `CREATE TABLE "`+tables.Users+`" (id TEXT NOT NULL PRIMARY KEY)`)
		require.NoError(t, err)

		err = sqlite.ValidateSchema(ctx, raw, tables)
		assert.ErrorContains(t, err, "missing columns")
		assert.ErrorContains(t, err, "identity_token")
	})
}
