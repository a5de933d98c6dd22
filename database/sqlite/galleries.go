package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
)

type galleryRepo struct {
	db    *sql.DB
	table string
}

const galleryColumns = `id, name, description, user_id, created_at, updated_at`

func scanGallery(row scanner) (galleria.Gallery, error) {
	var g galleria.Gallery
	var id, userID, createdAt, updatedAt string

	if err := row.Scan(&id, &g.Name, &g.Description, &userID, &createdAt, &updatedAt); err != nil {
		return galleria.Gallery{}, translateError(err)
	}

	if err := parseIDs([]*uuid.UUID{&g.ID, &g.UserID}, []string{id, userID}); err != nil {
		return galleria.Gallery{}, fmt.Errorf("parse uuid: %w", err)
	}

	var err error
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return galleria.Gallery{}, fmt.Errorf("parse created_at: %w", err)
	}
	if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return galleria.Gallery{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return g, nil
}

func (r *galleryRepo) Create(ctx context.Context, g galleria.Gallery) (galleria.Gallery, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	now := formatTime(time.Now())

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (`+galleryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`, quoteIdentifier(r.table))

	if _, err := r.db.ExecContext(ctx, query,
		g.ID.String(), g.Name, g.Description, g.UserID.String(), now, now,
	); err != nil {
		return galleria.Gallery{}, fmt.Errorf("create gallery: %w", translateError(err))
	}

	g.CreatedAt, _ = parseTime(now)
	g.UpdatedAt = g.CreatedAt

	return g, nil
}

func (r *galleryRepo) Get(ctx context.Context, id uuid.UUID) (galleria.Gallery, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+galleryColumns+` FROM %s WHERE id = ?`, quoteIdentifier(r.table))

	g, err := scanGallery(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		return galleria.Gallery{}, fmt.Errorf("get gallery: %w", err)
	}

	return g, nil
}

func (r *galleryRepo) Update(ctx context.Context, g galleria.Gallery) (galleria.Gallery, error) {
	now := formatTime(time.Now())

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`UPDATE %s SET name = ?, description = ?, updated_at = ? WHERE id = ?`, quoteIdentifier(r.table))

	res, err := r.db.ExecContext(ctx, query, g.Name, g.Description, now, g.ID.String())
	if err != nil {
		return galleria.Gallery{}, fmt.Errorf("update gallery: %w", translateError(err))
	}

	if err := requireRow(res); err != nil {
		return galleria.Gallery{}, fmt.Errorf("update gallery %s: %w", g.ID, err)
	}

	return r.Get(ctx, g.ID)
}

func (r *galleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, quoteIdentifier(r.table)) //nolint:gosec // table name is validated

	res, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}

	if err := requireRow(res); err != nil {
		return fmt.Errorf("delete gallery %s: %w", id, err)
	}

	return nil
}

func (r *galleryRepo) ListByUser(ctx context.Context, userID uuid.UUID, page galleria.Page) ([]galleria.Gallery, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = ?`, quoteIdentifier(r.table)) //nolint:gosec // table name is validated
	if err := r.db.QueryRowContext(ctx, countQuery, userID.String()).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list galleries: count: %w", err)
	}

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+galleryColumns+` FROM %s
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, quoteIdentifier(r.table))

	rows, err := r.db.QueryContext(ctx, query, userID.String(), page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list galleries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []galleria.Gallery{}
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list galleries: scan: %w", err)
		}
		items = append(items, g)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list galleries: rows error: %w", err)
	}

	return items, total, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return galleria.ErrNotFound
	}
	return nil
}
