package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/galleria"
)

type pictureRepo struct {
	pool  *pgxpool.Pool
	table string
}

// Column order matches the field order of galleria.Picture.
const pictureColumns = `id, name, description, image_uri, object_key, content_type, size_bytes, gallery_id, user_id, created_at`

func (r *pictureRepo) Create(ctx context.Context, p galleria.Picture) (galleria.Picture, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, image_uri, object_key, content_type, size_bytes, gallery_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+pictureColumns, pgx.Identifier{r.table}.Sanitize())

	rows, _ := r.pool.Query(ctx, query,
		p.ID, p.Name, p.Description, p.ImageURI, p.ObjectKey, p.ContentType, p.SizeBytes, p.GalleryID, p.UserID)
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[galleria.Picture])
	if err != nil {
		return galleria.Picture{}, fmt.Errorf("create picture: %w", translateError(r.table, err))
	}

	return created, nil
}

func (r *pictureRepo) Get(ctx context.Context, id uuid.UUID) (galleria.Picture, error) {
	query := fmt.Sprintf(`SELECT `+pictureColumns+` FROM %s WHERE id = $1`, pgx.Identifier{r.table}.Sanitize())

	rows, _ := r.pool.Query(ctx, query, id)
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[galleria.Picture])
	if err != nil {
		return galleria.Picture{}, fmt.Errorf("get picture: %w", translateError(r.table, err))
	}

	return p, nil
}

func (r *pictureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pgx.Identifier{r.table}.Sanitize())

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete picture %s: %w", id, galleria.ErrNotFound)
	}

	return nil
}

func (r *pictureRepo) ListByGallery(ctx context.Context, galleryID uuid.UUID, page galleria.Page) ([]galleria.Picture, int, error) {
	table := pgx.Identifier{r.table}.Sanitize()

	var total int
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE gallery_id = $1`, table), galleryID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list pictures: count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+pictureColumns+`
		FROM %s
		WHERE gallery_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, table)

	rows, _ := r.pool.Query(ctx, query, galleryID, page.PageSize, page.Offset())
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[galleria.Picture])
	if err != nil {
		return nil, 0, fmt.Errorf("list pictures: %w", err)
	}

	return items, total, nil
}

func (r *pictureRepo) AllByGallery(ctx context.Context, galleryID uuid.UUID) ([]galleria.Picture, error) {
	query := fmt.Sprintf(`SELECT `+pictureColumns+` FROM %s WHERE gallery_id = $1 ORDER BY created_at`, pgx.Identifier{r.table}.Sanitize())

	rows, _ := r.pool.Query(ctx, query, galleryID)
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[galleria.Picture])
	if err != nil {
		return nil, fmt.Errorf("all pictures by gallery: %w", err)
	}

	return items, nil
}

func (r *pictureRepo) DeleteByGallery(ctx context.Context, galleryID uuid.UUID) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE gallery_id = $1`, pgx.Identifier{r.table}.Sanitize())

	tag, err := r.pool.Exec(ctx, query, galleryID)
	if err != nil {
		return 0, fmt.Errorf("delete pictures by gallery: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *pictureRepo) ExistsByObjectKey(ctx context.Context, key string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE object_key = $1)`, pgx.Identifier{r.table}.Sanitize())

	var exists bool
	if err := r.pool.QueryRow(ctx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("picture exists by object key: %w", err)
	}

	return exists, nil
}
