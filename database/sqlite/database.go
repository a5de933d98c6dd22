// Package sqlite implements the galleria repositories on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/galleria"

	_ "modernc.org/sqlite" // SQLite driver
)

// database provides SQLite database operations.
type database struct {
	db     *sql.DB
	tables galleria.Tables
}

// Connect opens a SQLite database. The pool is limited to a single
// connection so that ":memory:" databases are shared by every query.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables galleria.Tables) (*database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect sqlite: set busy timeout: %w", err)
	}

	return &database{
		db:     db,
		tables: tables,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate runs database migrations to create required tables.
func (d *database) Migrate(ctx context.Context) error {
	return Migrate(ctx, d.db, d.tables)
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.db, d.tables)
}

func (d *database) Users() galleria.UserRepo {
	return &userRepo{db: d.db, table: d.tables.Users}
}

func (d *database) Galleries() galleria.GalleryRepo {
	return &galleryRepo{db: d.db, table: d.tables.Galleries}
}

func (d *database) Pictures() galleria.PictureRepo {
	return &pictureRepo{db: d.db, table: d.tables.Pictures}
}

// DropTables removes every galleria table.
func (d *database) DropTables(ctx context.Context) error {
	return DropTables(ctx, d.db, d.tables)
}

// Close closes the database connection.
func (d *database) Close() error {
	return d.db.Close()
}
