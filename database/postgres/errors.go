package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database/internal"
)

const uniqueViolation = "23505"

// translateError maps driver errors onto galleria errors.
func translateError(table string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return galleria.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		column := internal.ColumnFromPgDetail(pgErr.Detail)
		if column == "" {
			column = internal.ColumnFromConstraint(table, pgErr.ConstraintName)
		}
		return internal.DuplicateKey(column, err)
	}

	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
