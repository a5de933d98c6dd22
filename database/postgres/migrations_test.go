package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sagarc03/galleria/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()
	tables := randomTables(t)
	t.Cleanup(func() { _ = postgres.DropTables(ctx, pool, tables) })

	require.NoError(t, postgres.Migrate(ctx, pool, tables))
	require.NoError(t, postgres.Migrate(ctx, pool, tables), "migrate is idempotent")
	assert.NoError(t, postgres.ValidateSchema(ctx, pool, tables))
}

func TestDropTables(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()
	tables := randomTables(t)

	require.NoError(t, postgres.Migrate(ctx, pool, tables))
	require.NoError(t, postgres.DropTables(ctx, pool, tables))

	err := postgres.ValidateSchema(ctx, pool, tables)
	assert.ErrorContains(t, err, "does not exist")
}

func TestValidateSchema_MissingColumn(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()
	tables := randomTables(t)
	t.Cleanup(func() { _ = postgres.DropTables(ctx, pool, tables) })

	require.NoError(t, postgres.Migrate(ctx, pool, tables))

	_, err := pool.Exec(ctx, "ALTER TABLE "+pgx.Identifier{tables.Users}.Sanitize()+" DROP COLUMN identity_token")
	require.NoError(t, err)

	err = postgres.ValidateSchema(ctx, pool, tables)
	assert.ErrorContains(t, err, "missing columns: identity_token")
}
