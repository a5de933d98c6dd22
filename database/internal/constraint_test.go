package internal_test

import (
	"errors"
	"testing"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database/internal"
	"github.com/stretchr/testify/assert"
)

func TestColumnFromSQLiteMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		want string
	}{
		{"username", "constraint failed: UNIQUE constraint failed: users.username (2067)", "username"},
		{"identity token", "UNIQUE constraint failed: test_users_ab12.identity_token", "identity_token"},
		{"multiple columns takes first", "UNIQUE constraint failed: t.email, t.username", "email"},
		{"not null", "NOT NULL constraint failed: users.email", ""},
		{"unrelated", "database is locked", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, internal.ColumnFromSQLiteMessage(tt.msg))
		})
	}
}

func TestColumnFromPgDetail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email", internal.ColumnFromPgDetail("Key (email)=(a@x.com) already exists."))
	assert.Equal(t, "identity_token", internal.ColumnFromPgDetail("Key (identity_token)=(ab12) already exists."))
	assert.Equal(t, "a", internal.ColumnFromPgDetail("Key (a, b)=(1, 2) already exists."))
	assert.Equal(t, "", internal.ColumnFromPgDetail("Failing row contains (...)."))
}

func TestColumnFromConstraint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "users_email_key", internal.UniqueConstraintName("users", "email"))
	assert.Equal(t, "email", internal.ColumnFromConstraint("users", "users_email_key"))
	assert.Equal(t, "identity_token", internal.ColumnFromConstraint("app_users", internal.UniqueConstraintName("app_users", "identity_token")))
	assert.Equal(t, "", internal.ColumnFromConstraint("users", "galleries_name_key"))
	assert.Equal(t, "", internal.ColumnFromConstraint("users", "users_pkey"))
}

func TestDuplicateKey(t *testing.T) {
	t.Parallel()

	cause := errors.New("driver error")
	err := internal.DuplicateKey(galleria.FieldUsername, cause)

	assert.ErrorIs(t, err, galleria.ErrDuplicateKey)
	assert.ErrorIs(t, err, cause)
	assert.True(t, galleria.IsDuplicateField(err, galleria.FieldUsername))
}
