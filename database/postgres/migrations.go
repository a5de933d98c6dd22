package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database/internal"
)

type TableMigration struct {
	TableName string
	Up        func(ctx context.Context, pool *pgxpool.Pool) error
	Down      func(ctx context.Context, pool *pgxpool.Pool) error
}

func getTableMigrations(tables galleria.Tables) []TableMigration {
	return []TableMigration{
		{TableName: tables.Users, Up: createUsersTable(tables.Users), Down: dropTable(tables.Users)},
		{TableName: tables.Galleries, Up: createGalleriesTable(tables.Galleries), Down: dropTable(tables.Galleries)},
		{TableName: tables.Pictures, Up: createPicturesTable(tables.Pictures), Down: dropTable(tables.Pictures)},
	}
}

func Migrate(ctx context.Context, pool *pgxpool.Pool, tables galleria.Tables) error {
	for _, migration := range getTableMigrations(tables) {
		if err := migration.Up(ctx, pool); err != nil {
			return fmt.Errorf("migrate up %s: %w", migration.TableName, err)
		}
	}
	return nil
}

func DropTables(ctx context.Context, pool *pgxpool.Pool, tables galleria.Tables) error {
	migrations := getTableMigrations(tables)

	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if err := migration.Down(ctx, pool); err != nil {
			return fmt.Errorf("migrate down %s: %w", migration.TableName, err)
		}
	}

	return nil
}

func uniqueConstraint(table, column string) string {
	return pgx.Identifier{internal.UniqueConstraintName(table, column)}.Sanitize()
}

func createUsersTable(tableName string) func(context.Context, *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		quotedTable := pgx.Identifier{tableName}.Sanitize()

		sql := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				username TEXT NOT NULL,
				email TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				identity_token TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %s UNIQUE (username),
				CONSTRAINT %s UNIQUE (email),
				CONSTRAINT %s UNIQUE (identity_token)
			);
		`,
			quotedTable,
			uniqueConstraint(tableName, galleria.FieldUsername),
			uniqueConstraint(tableName, galleria.FieldEmail),
			uniqueConstraint(tableName, galleria.FieldIdentityToken),
		)

		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("create users table: %w", err)
		}
		return nil
	}
}

func createGalleriesTable(tableName string) func(context.Context, *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		quotedTable := pgx.Identifier{tableName}.Sanitize()
		indexUserList := pgx.Identifier{fmt.Sprintf("idx_%s_user_list", tableName)}.Sanitize()

		sql := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				user_id UUID NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS %s
			ON %s (user_id, created_at DESC);
		`,
			quotedTable,
			indexUserList, quotedTable,
		)

		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("create galleries table: %w", err)
		}
		return nil
	}
}

func createPicturesTable(tableName string) func(context.Context, *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		quotedTable := pgx.Identifier{tableName}.Sanitize()
		indexGalleryList := pgx.Identifier{fmt.Sprintf("idx_%s_gallery_list", tableName)}.Sanitize()
		indexObjectKey := pgx.Identifier{fmt.Sprintf("idx_%s_object_key", tableName)}.Sanitize()

		sql := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				image_uri TEXT NOT NULL,
				object_key TEXT NOT NULL,
				content_type TEXT NOT NULL,
				size_bytes BIGINT NOT NULL,
				gallery_id UUID NOT NULL,
				user_id UUID NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT %s UNIQUE (image_uri)
			);

			CREATE INDEX IF NOT EXISTS %s
			ON %s (gallery_id, created_at DESC);

			CREATE INDEX IF NOT EXISTS %s
			ON %s (object_key);
		`,
			quotedTable,
			uniqueConstraint(tableName, galleria.FieldImageURI),
			indexGalleryList, quotedTable,
			indexObjectKey, quotedTable,
		)

		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("create pictures table: %w", err)
		}
		return nil
	}
}

func dropTable(tableName string) func(context.Context, *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		quotedTable := pgx.Identifier{tableName}.Sanitize()
		_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", quotedTable))
		return err
	}
}
