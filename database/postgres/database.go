// Package postgres implements the galleria repositories on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/galleria"
)

type database struct {
	pool   *pgxpool.Pool
	tables galleria.Tables
}

// Connect establishes a connection to PostgreSQL.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables galleria.Tables) (*database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &database{
		pool:   pool,
		tables: tables,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Migrate runs database migrations to create required tables.
func (d *database) Migrate(ctx context.Context) error {
	return Migrate(ctx, d.pool, d.tables)
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.pool, d.tables)
}

func (d *database) Users() galleria.UserRepo {
	return &userRepo{pool: d.pool, table: d.tables.Users}
}

func (d *database) Galleries() galleria.GalleryRepo {
	return &galleryRepo{pool: d.pool, table: d.tables.Galleries}
}

func (d *database) Pictures() galleria.PictureRepo {
	return &pictureRepo{pool: d.pool, table: d.tables.Pictures}
}

// DropTables removes every galleria table.
func (d *database) DropTables(ctx context.Context) error {
	return DropTables(ctx, d.pool, d.tables)
}

// Close closes the database connection pool.
func (d *database) Close() error {
	d.pool.Close()
	return nil
}
