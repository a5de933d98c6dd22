package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database/internal"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeFormat is fixed width so that text ordering matches time ordering.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// translateError maps driver errors onto galleria errors.
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return galleria.ErrNotFound
	}

	var se *msqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return internal.DuplicateKey(internal.ColumnFromSQLiteMessage(se.Error()), err)
	}

	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func parseIDs(dst []*uuid.UUID, src []string) error {
	for i, s := range src {
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		*dst[i] = id
	}
	return nil
}
