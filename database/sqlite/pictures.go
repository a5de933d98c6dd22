package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
)

type pictureRepo struct {
	db    *sql.DB
	table string
}

const pictureColumns = `id, name, description, image_uri, object_key, content_type, size_bytes, gallery_id, user_id, created_at`

func scanPicture(row scanner) (galleria.Picture, error) {
	var p galleria.Picture
	var id, galleryID, userID, createdAt string

	if err := row.Scan(&id, &p.Name, &p.Description, &p.ImageURI, &p.ObjectKey, &p.ContentType,
		&p.SizeBytes, &galleryID, &userID, &createdAt); err != nil {
		return galleria.Picture{}, translateError(err)
	}

	if err := parseIDs([]*uuid.UUID{&p.ID, &p.GalleryID, &p.UserID}, []string{id, galleryID, userID}); err != nil {
		return galleria.Picture{}, fmt.Errorf("parse uuid: %w", err)
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return galleria.Picture{}, fmt.Errorf("parse created_at: %w", err)
	}

	return p, nil
}

func (r *pictureRepo) Create(ctx context.Context, p galleria.Picture) (galleria.Picture, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := formatTime(time.Now())

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (`+pictureColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, quoteIdentifier(r.table))

	if _, err := r.db.ExecContext(ctx, query,
		p.ID.String(), p.Name, p.Description, p.ImageURI, p.ObjectKey, p.ContentType,
		p.SizeBytes, p.GalleryID.String(), p.UserID.String(), now,
	); err != nil {
		return galleria.Picture{}, fmt.Errorf("create picture: %w", translateError(err))
	}

	p.CreatedAt, _ = parseTime(now)

	return p, nil
}

func (r *pictureRepo) Get(ctx context.Context, id uuid.UUID) (galleria.Picture, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+pictureColumns+` FROM %s WHERE id = ?`, quoteIdentifier(r.table))

	p, err := scanPicture(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		return galleria.Picture{}, fmt.Errorf("get picture: %w", err)
	}

	return p, nil
}

func (r *pictureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, quoteIdentifier(r.table)) //nolint:gosec // table name is validated

	res, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}

	if err := requireRow(res); err != nil {
		return fmt.Errorf("delete picture %s: %w", id, err)
	}

	return nil
}

func (r *pictureRepo) ListByGallery(ctx context.Context, galleryID uuid.UUID, page galleria.Page) ([]galleria.Picture, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE gallery_id = ?`, quoteIdentifier(r.table)) //nolint:gosec // table name is validated
	if err := r.db.QueryRowContext(ctx, countQuery, galleryID.String()).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list pictures: count: %w", err)
	}

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+pictureColumns+` FROM %s
		WHERE gallery_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, quoteIdentifier(r.table))

	items, err := r.query(ctx, query, galleryID.String(), page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list pictures: %w", err)
	}

	return items, total, nil
}

func (r *pictureRepo) AllByGallery(ctx context.Context, galleryID uuid.UUID) ([]galleria.Picture, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT `+pictureColumns+` FROM %s WHERE gallery_id = ? ORDER BY created_at`, quoteIdentifier(r.table))

	items, err := r.query(ctx, query, galleryID.String())
	if err != nil {
		return nil, fmt.Errorf("all pictures by gallery: %w", err)
	}

	return items, nil
}

func (r *pictureRepo) DeleteByGallery(ctx context.Context, galleryID uuid.UUID) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE gallery_id = ?`, quoteIdentifier(r.table)) //nolint:gosec // table name is validated

	res, err := r.db.ExecContext(ctx, query, galleryID.String())
	if err != nil {
		return 0, fmt.Errorf("delete pictures by gallery: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete pictures by gallery: rows affected: %w", err)
	}

	return n, nil
}

func (r *pictureRepo) ExistsByObjectKey(ctx context.Context, key string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE object_key = ?)`, quoteIdentifier(r.table)) //nolint:gosec // table name is validated

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("picture exists by object key: %w", err)
	}

	return exists, nil
}

func (r *pictureRepo) query(ctx context.Context, query string, args ...any) ([]galleria.Picture, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []galleria.Picture{}
	for rows.Next() {
		p, err := scanPicture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}
