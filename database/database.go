package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database/postgres"
	"github.com/sagarc03/galleria/database/sqlite"
)

// Config holds the configuration for connecting to a database backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	// DSN is the data source name (connection string)
	DSN string `mapstructure:"dsn" validate:"required"`
	// Tables holds the table names
	Tables galleria.Tables `mapstructure:"tables"`
}

// Database is a connected backend that hands out the galleria repositories.
type Database interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Validate(ctx context.Context) error
	Users() galleria.UserRepo
	Galleries() galleria.GalleryRepo
	Pictures() galleria.PictureRepo
	Close() error
}

// Connect validates the table names and opens the configured backend.
// It does not migrate or validate the schema; callers decide when to do that.
func Connect(ctx context.Context, cfg Config) (Database, error) {
	if err := cfg.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	switch cfg.Type {
	case "sqlite":
		db, err := sqlite.Connect(ctx, cfg.DSN, cfg.Tables)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.DSN, cfg.Tables)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
