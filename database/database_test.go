package database_test

import (
	"context"
	"testing"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func newTestConfig(prefix string) database.Config {
	return database.Config{
		Type: "sqlite",
		DSN:  ":memory:",
		Tables: galleria.Tables{
			Users:     prefix + "_users",
			Galleries: prefix + "_galleries",
			Pictures:  prefix + "_pictures",
		},
	}
}

func setupTestDB(t *testing.T, prefix string) database.Database {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(ctx, newTestConfig(prefix))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func setupTestDBWithMigration(t *testing.T, prefix string) database.Database {
	t.Helper()
	ctx := context.Background()

	db := setupTestDB(t, prefix)

	err := db.Migrate(ctx)
	require.NoError(t, err)

	return db
}

// Tests for Connect routing logic

func TestConnect_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDB(t, "connect")

	err := db.Ping(ctx)
	assert.NoError(t, err)
}

func TestConnect_InvalidType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := newTestConfig("invalid")
	cfg.Type = "mysql"

	_, err := database.Connect(ctx, cfg)
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestConnect_EmptyType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := newTestConfig("empty")
	cfg.Type = ""

	_, err := database.Connect(ctx, cfg)
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestConnect_InvalidTables(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := newTestConfig("tables")
	cfg.Tables.Pictures = "Bad-Name"

	_, err := database.Connect(ctx, cfg)
	assert.ErrorContains(t, err, "invalid pictures table name")
}

// Tests for Database interface methods

func TestDatabase_Validate_BeforeMigration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDB(t, "validate_before")

	err := db.Validate(ctx)
	assert.Error(t, err, "validate should fail without tables")
}

func TestDatabase_Validate_AfterMigration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBWithMigration(t, "validate_after")

	err := db.Validate(ctx)
	assert.NoError(t, err, "validate should pass after migration")
}

func TestDatabase_Migrate_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBWithMigration(t, "migrate_idem")

	err := db.Migrate(ctx)
	assert.NoError(t, err, "migrate should be idempotent")
}

func TestDatabase_Repos(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBWithMigration(t, "repos")

	user, err := db.Users().Create(ctx, galleria.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	g, err := db.Galleries().Create(ctx, galleria.Gallery{Name: "Trips", UserID: user.ID})
	require.NoError(t, err)

	pics, total, err := db.Pictures().ListByGallery(ctx, g.ID, galleria.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, pics)
	assert.Zero(t, total)
}

func TestDatabase_Close(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := database.Connect(ctx, newTestConfig("close"))
	require.NoError(t, err)

	err = db.Close()
	assert.NoError(t, err)

	err = db.Ping(ctx)
	assert.Error(t, err, "ping should fail after close")
}

// Postgres-specific tests are in the database/postgres package.
