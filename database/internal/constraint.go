// Package internal holds helpers shared by the SQL backends.
package internal

import (
	"regexp"
	"strings"

	"github.com/sagarc03/galleria"
)

var (
	sqliteUniqueRe = regexp.MustCompile(`UNIQUE constraint failed: [A-Za-z0-9_]+\.([A-Za-z0-9_]+)`)
	pgDetailRe     = regexp.MustCompile(`^Key \(([A-Za-z0-9_]+)`)
)

// ColumnFromSQLiteMessage extracts the first column named in a SQLite
// "UNIQUE constraint failed: table.column" message.
func ColumnFromSQLiteMessage(msg string) string {
	m := sqliteUniqueRe.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	return m[1]
}

// ColumnFromPgDetail extracts the first column from a PostgreSQL unique
// violation detail such as "Key (email)=(a@x.com) already exists.".
func ColumnFromPgDetail(detail string) string {
	m := pgDetailRe.FindStringSubmatch(detail)
	if m == nil {
		return ""
	}
	return m[1]
}

// UniqueConstraintName is the name given to a single-column unique
// constraint: <table>_<column>_key.
func UniqueConstraintName(table, column string) string {
	return table + "_" + column + "_key"
}

// ColumnFromConstraint reverses UniqueConstraintName.
func ColumnFromConstraint(table, constraint string) string {
	col, ok := strings.CutPrefix(constraint, table+"_")
	if !ok {
		return ""
	}
	col, ok = strings.CutSuffix(col, "_key")
	if !ok {
		return ""
	}
	return col
}

// DuplicateKey wraps a driver error as a *galleria.DuplicateKeyError for column.
func DuplicateKey(column string, err error) error {
	return &galleria.DuplicateKeyError{Field: column, Err: err}
}
