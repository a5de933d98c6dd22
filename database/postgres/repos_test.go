package postgres_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	alice, err := repo.Create(ctx, galleria.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, alice.ID)
	assert.Empty(t, alice.IdentityToken)

	bob, err := repo.Create(ctx, galleria.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	t.Run("find by username", func(t *testing.T) {
		got, err := repo.FindOneByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = repo.FindOneByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, galleria.ErrNotFound)
	})

	t.Run("duplicate username and email", func(t *testing.T) {
		_, err := repo.Create(ctx, galleria.User{Username: "alice", Email: "x@example.com", PasswordHash: "h"})
		assert.True(t, galleria.IsDuplicateField(err, galleria.FieldUsername), "got %v", err)

		_, err = repo.Create(ctx, galleria.User{Username: "x", Email: "alice@example.com", PasswordHash: "h"})
		assert.True(t, galleria.IsDuplicateField(err, galleria.FieldEmail), "got %v", err)
	})

	t.Run("identity token save, lookup and collision", func(t *testing.T) {
		token := strings.Repeat("c3", 32)
		alice.IdentityToken = token
		require.NoError(t, repo.Save(ctx, alice))

		got, err := repo.FindOneByIdentityToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		bob.IdentityToken = token
		err = repo.Save(ctx, bob)
		assert.ErrorIs(t, err, galleria.ErrDuplicateKey)
		assert.True(t, galleria.IsDuplicateField(err, galleria.FieldIdentityToken), "got %v", err)

		err = repo.Save(ctx, galleria.User{ID: uuid.New(), PasswordHash: "h"})
		assert.ErrorIs(t, err, galleria.ErrNotFound)
	})
}

func TestGalleryRepo(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := db.Galleries()
	ctx := context.Background()
	owner := uuid.New()

	for i := range 3 {
		_, err := repo.Create(ctx, galleria.Gallery{Name: fmt.Sprintf("g%d", i), UserID: owner})
		require.NoError(t, err)
	}

	items, total, err := repo.ListByUser(ctx, owner, galleria.Page{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)

	g := items[0]
	g.Description = "updated"
	updated, err := repo.Update(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)

	require.NoError(t, repo.Delete(ctx, g.ID))
	_, err = repo.Get(ctx, g.ID)
	assert.ErrorIs(t, err, galleria.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, g.ID), galleria.ErrNotFound)

	_, err = repo.Update(ctx, g)
	assert.ErrorIs(t, err, galleria.ErrNotFound)
}

func TestPictureRepo(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := db.Pictures()
	ctx := context.Background()
	galleryID, userID := uuid.New(), uuid.New()

	var first galleria.Picture
	for i := range 3 {
		key := fmt.Sprintf("%s/%d.png", galleryID, i)
		p, err := repo.Create(ctx, galleria.Picture{
			Name: fmt.Sprintf("p%d", i), ImageURI: "http://cdn/" + key, ObjectKey: key,
			ContentType: "image/png", SizeBytes: 10, GalleryID: galleryID, UserID: userID,
		})
		require.NoError(t, err)
		if i == 0 {
			first = p
		}
	}

	_, err := repo.Create(ctx, galleria.Picture{
		Name: "dup", ImageURI: first.ImageURI, ObjectKey: "x", ContentType: "image/png",
		GalleryID: galleryID, UserID: userID,
	})
	assert.True(t, galleria.IsDuplicateField(err, galleria.FieldImageURI), "got %v", err)

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ObjectKey, got.ObjectKey)

	exists, err := repo.ExistsByObjectKey(ctx, first.ObjectKey)
	require.NoError(t, err)
	assert.True(t, exists)

	page, total, err := repo.ListByGallery(ctx, galleryID, galleria.Page{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	n, err := repo.DeleteByGallery(ctx, galleryID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := repo.AllByGallery(ctx, galleryID)
	require.NoError(t, err)
	assert.Empty(t, all)
}
