package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
)

type userRepo struct {
	db    *sql.DB
	table string
}

const userColumns = `id, username, email, password_hash, identity_token, created_at, updated_at`

func scanUser(row scanner) (galleria.User, error) {
	var u galleria.User
	var id, createdAt, updatedAt string
	var token sql.NullString

	if err := row.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &token, &createdAt, &updatedAt); err != nil {
		return galleria.User{}, translateError(err)
	}

	var err error
	if u.ID, err = uuid.Parse(id); err != nil {
		return galleria.User{}, fmt.Errorf("parse uuid: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return galleria.User{}, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return galleria.User{}, fmt.Errorf("parse updated_at: %w", err)
	}
	u.IdentityToken = token.String

	return u, nil
}

func (r *userRepo) Create(ctx context.Context, user galleria.User) (galleria.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`, quoteIdentifier(r.table))

	_, err := r.db.ExecContext(ctx, query,
		user.ID.String(), user.Username, user.Email, user.PasswordHash,
		nullString(user.IdentityToken), formatTime(now), formatTime(now),
	)
	if err != nil {
		return galleria.User{}, fmt.Errorf("create user: %w", translateError(err))
	}

	user.CreatedAt, _ = parseTime(formatTime(now))
	user.UpdatedAt = user.CreatedAt

	return user, nil
}

func (r *userRepo) FindOneByUsername(ctx context.Context, username string) (galleria.User, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+userColumns+` FROM %s WHERE username = ?`, quoteIdentifier(r.table))

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return galleria.User{}, fmt.Errorf("find user by username: %w", err)
	}

	return u, nil
}

func (r *userRepo) FindOneByIdentityToken(ctx context.Context, token string) (galleria.User, error) {
	if token == "" {
		return galleria.User{}, fmt.Errorf("find user by identity token: %w", galleria.ErrNotFound)
	}

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+userColumns+` FROM %s WHERE identity_token = ?`, quoteIdentifier(r.table))

	u, err := scanUser(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return galleria.User{}, fmt.Errorf("find user by identity token: %w", err)
	}

	return u, nil
}

func (r *userRepo) Save(ctx context.Context, user galleria.User) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`UPDATE %s SET password_hash = ?, identity_token = ?, updated_at = ? WHERE id = ?`, quoteIdentifier(r.table))

	res, err := r.db.ExecContext(ctx, query,
		user.PasswordHash, nullString(user.IdentityToken), formatTime(time.Now()), user.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("save user: %w", translateError(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save user: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save user %s: %w", user.ID, galleria.ErrNotFound)
	}

	return nil
}
