package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/galleria"
)

type userRepo struct {
	pool  *pgxpool.Pool
	table string
}

const userColumns = `id, username, email, password_hash, identity_token, created_at, updated_at`

func scanUser(row pgx.Row) (galleria.User, error) {
	var u galleria.User
	var token *string

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &token, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return galleria.User{}, err
	}
	if token != nil {
		u.IdentityToken = *token
	}

	return u, nil
}

func (r *userRepo) Create(ctx context.Context, user galleria.User) (galleria.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, email, password_hash, identity_token)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns, pgx.Identifier{r.table}.Sanitize())

	u, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, nullable(user.IdentityToken)))
	if err != nil {
		return galleria.User{}, fmt.Errorf("create user: %w", translateError(r.table, err))
	}

	return u, nil
}

func (r *userRepo) FindOneByUsername(ctx context.Context, username string) (galleria.User, error) {
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM %s WHERE username = $1`, pgx.Identifier{r.table}.Sanitize())

	u, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		return galleria.User{}, fmt.Errorf("find user by username: %w", translateError(r.table, err))
	}

	return u, nil
}

func (r *userRepo) FindOneByIdentityToken(ctx context.Context, token string) (galleria.User, error) {
	if token == "" {
		return galleria.User{}, fmt.Errorf("find user by identity token: %w", galleria.ErrNotFound)
	}

	query := fmt.Sprintf(`SELECT `+userColumns+` FROM %s WHERE identity_token = $1`, pgx.Identifier{r.table}.Sanitize())

	u, err := scanUser(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		return galleria.User{}, fmt.Errorf("find user by identity token: %w", translateError(r.table, err))
	}

	return u, nil
}

func (r *userRepo) Save(ctx context.Context, user galleria.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET password_hash = $1, identity_token = $2, updated_at = NOW()
		WHERE id = $3
	`, pgx.Identifier{r.table}.Sanitize())

	tag, err := r.pool.Exec(ctx, query, user.PasswordHash, nullable(user.IdentityToken), user.ID)
	if err != nil {
		return fmt.Errorf("save user: %w", translateError(r.table, err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save user %s: %w", user.ID, galleria.ErrNotFound)
	}

	return nil
}
