package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPicture(galleryID, userID uuid.UUID, name string) galleria.Picture {
	id := uuid.New()
	key := galleryID.String() + "/" + id.String() + ".png"
	return galleria.Picture{
		ID:          id,
		Name:        name,
		ImageURI:    "http://localhost/images/" + key,
		ObjectKey:   key,
		ContentType: "image/png",
		SizeBytes:   42,
		GalleryID:   galleryID,
		UserID:      userID,
	}
}

func TestPictureRepo_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Pictures()
	ctx := context.Background()
	galleryID, userID := uuid.New(), uuid.New()

	p := newPicture(galleryID, userID, "cat")
	created, err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, created.ID)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ImageURI, got.ImageURI)
	assert.Equal(t, p.ObjectKey, got.ObjectKey)
	assert.Equal(t, int64(42), got.SizeBytes)
	assert.Equal(t, galleryID, got.GalleryID)
	assert.Equal(t, userID, got.UserID)

	exists, err := repo.ExistsByObjectKey(ctx, p.ObjectKey)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByObjectKey(ctx, "missing/key.png")
	require.NoError(t, err)
	assert.False(t, exists)

	t.Run("duplicate image uri", func(t *testing.T) {
		dup := newPicture(galleryID, userID, "dup")
		dup.ImageURI = p.ImageURI
		_, err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, galleria.ErrDuplicateKey)
		assert.True(t, galleria.IsDuplicateField(err, galleria.FieldImageURI))
	})

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, galleria.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), galleria.ErrNotFound)
}

func TestPictureRepo_ByGallery(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Pictures()
	ctx := context.Background()
	g1, g2, userID := uuid.New(), uuid.New(), uuid.New()

	for i := range 3 {
		_, err := repo.Create(ctx, newPicture(g1, userID, fmt.Sprintf("p%d", i)))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newPicture(g2, userID, "other"))
	require.NoError(t, err)

	page, total, err := repo.ListByGallery(ctx, g1, galleria.Page{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "p2", page[0].Name)

	all, err := repo.AllByGallery(ctx, g1)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.DeleteByGallery(ctx, g1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err = repo.AllByGallery(ctx, g1)
	require.NoError(t, err)
	assert.Empty(t, all)

	remaining, err := repo.AllByGallery(ctx, g2)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
