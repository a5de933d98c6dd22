package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/galleria"
)

type galleryRepo struct {
	pool  *pgxpool.Pool
	table string
}

// Column order matches the field order of galleria.Gallery.
const galleryColumns = `id, name, description, user_id, created_at, updated_at`

func (r *galleryRepo) Create(ctx context.Context, g galleria.Gallery) (galleria.Gallery, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+galleryColumns, pgx.Identifier{r.table}.Sanitize())

	rows, _ := r.pool.Query(ctx, query, g.Name, g.Description, g.UserID)
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[galleria.Gallery])
	if err != nil {
		return galleria.Gallery{}, fmt.Errorf("create gallery: %w", translateError(r.table, err))
	}

	return created, nil
}

func (r *galleryRepo) Get(ctx context.Context, id uuid.UUID) (galleria.Gallery, error) {
	query := fmt.Sprintf(`SELECT `+galleryColumns+` FROM %s WHERE id = $1`, pgx.Identifier{r.table}.Sanitize())

	rows, _ := r.pool.Query(ctx, query, id)
	g, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[galleria.Gallery])
	if err != nil {
		return galleria.Gallery{}, fmt.Errorf("get gallery: %w", translateError(r.table, err))
	}

	return g, nil
}

func (r *galleryRepo) Update(ctx context.Context, g galleria.Gallery) (galleria.Gallery, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+galleryColumns, pgx.Identifier{r.table}.Sanitize())

	rows, _ := r.pool.Query(ctx, query, g.Name, g.Description, g.ID)
	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[galleria.Gallery])
	if err != nil {
		return galleria.Gallery{}, fmt.Errorf("update gallery %s: %w", g.ID, translateError(r.table, err))
	}

	return updated, nil
}

func (r *galleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pgx.Identifier{r.table}.Sanitize())

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete gallery %s: %w", id, galleria.ErrNotFound)
	}

	return nil
}

func (r *galleryRepo) ListByUser(ctx context.Context, userID uuid.UUID, page galleria.Page) ([]galleria.Gallery, int, error) {
	table := pgx.Identifier{r.table}.Sanitize()

	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, table), userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list galleries: count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+galleryColumns+`
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, table)

	rows, _ := r.pool.Query(ctx, query, userID, page.PageSize, page.Offset())
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[galleria.Gallery])
	if err != nil {
		return nil, 0, fmt.Errorf("list galleries: %w", err)
	}

	return items, total, nil
}
