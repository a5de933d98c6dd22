package galleria_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestGalleryService_Create(t *testing.T) {
	owner := galleria.User{ID: uuid.New(), Username: "alice"}

	t.Run("success", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()

		want := galleria.Gallery{ID: uuid.New(), Name: "Trips", Description: "2024", UserID: owner.ID}
		galleries.On("Create", ctx, galleria.Gallery{Name: "Trips", Description: "2024", UserID: owner.ID}).Return(want, nil).Once()

		got, err := service.Create(ctx, owner, galleria.GalleryInput{Name: "  Trips ", Description: "2024"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
		galleries.AssertExpectations(t)
	})

	t.Run("name required", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)

		_, err := service.Create(context.Background(), owner, galleria.GalleryInput{Name: "   "})
		assert.ErrorIs(t, err, galleria.ErrInvalidInput)
		galleries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGalleryService_Get(t *testing.T) {
	alice := galleria.User{ID: uuid.New()}
	bob := galleria.User{ID: uuid.New()}
	g := galleria.Gallery{ID: uuid.New(), Name: "Trips", UserID: alice.ID}

	t.Run("owner sees gallery", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()
		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()

		got, err := service.Get(ctx, alice, g.ID)
		require.NoError(t, err)
		assert.Equal(t, g, got)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()
		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()

		_, err := service.Get(ctx, bob, g.ID)
		assert.ErrorIs(t, err, galleria.ErrNotFound)
	})

	t.Run("missing gallery", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()
		id := uuid.New()
		galleries.On("Get", ctx, id).Return(galleria.Gallery{}, galleria.ErrNotFound).Once()

		_, err := service.Get(ctx, alice, id)
		assert.ErrorIs(t, err, galleria.ErrNotFound)
	})
}

func TestGalleryService_Update(t *testing.T) {
	alice := galleria.User{ID: uuid.New()}
	g := galleria.Gallery{ID: uuid.New(), Name: "Trips", Description: "old", UserID: alice.ID}

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()

		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()
		expected := g
		expected.Description = "new"
		galleries.On("Update", ctx, expected).Return(expected, nil).Once()

		got, err := service.Update(ctx, alice, g.ID, galleria.GalleryPatch{Description: strPtr("new")})
		require.NoError(t, err)
		assert.Equal(t, "Trips", got.Name)
		assert.Equal(t, "new", got.Description)
		galleries.AssertExpectations(t)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()
		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()

		_, err := service.Update(ctx, alice, g.ID, galleria.GalleryPatch{Name: strPtr("")})
		assert.ErrorIs(t, err, galleria.ErrInvalidInput)
		galleries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("other user cannot update", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()
		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()

		_, err := service.Update(ctx, galleria.User{ID: uuid.New()}, g.ID, galleria.GalleryPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, galleria.ErrNotFound)
		galleries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	alice := galleria.User{ID: uuid.New()}
	g := galleria.Gallery{ID: uuid.New(), Name: "Trips", UserID: alice.ID}
	pics := []galleria.Picture{
		{ID: uuid.New(), ObjectKey: g.ID.String() + "/a.png", GalleryID: g.ID},
		{ID: uuid.New(), ObjectKey: g.ID.String() + "/b.png", GalleryID: g.ID},
	}

	t.Run("removes objects, rows then gallery", func(t *testing.T) {
		service, galleries, pictures, storage := NewGalleryService(t)
		ctx := context.Background()

		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()
		pictures.On("AllByGallery", ctx, g.ID).Return(pics, nil).Once()
		storage.On("Delete", ctx, pics[0].ObjectKey).Return(nil).Once()
		storage.On("Delete", ctx, pics[1].ObjectKey).Return(galleria.ErrNotFound).Once()
		pictures.On("DeleteByGallery", ctx, g.ID).Return(int64(2), nil).Once()
		galleries.On("Delete", ctx, g.ID).Return(nil).Once()

		require.NoError(t, service.Delete(ctx, alice, g.ID))

		galleries.AssertExpectations(t)
		pictures.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("storage failure aborts before rows", func(t *testing.T) {
		service, galleries, pictures, storage := NewGalleryService(t)
		ctx := context.Background()

		storageErr := errors.New("s3 unavailable")
		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()
		pictures.On("AllByGallery", ctx, g.ID).Return(pics, nil).Once()
		storage.On("Delete", ctx, pics[0].ObjectKey).Return(storageErr).Once()

		err := service.Delete(ctx, alice, g.ID)
		assert.ErrorIs(t, err, storageErr)
		pictures.AssertNotCalled(t, "DeleteByGallery", mock.Anything, mock.Anything)
		galleries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		service, galleries, pictures, _ := NewGalleryService(t)
		ctx := context.Background()
		galleries.On("Get", ctx, g.ID).Return(g, nil).Once()

		err := service.Delete(ctx, galleria.User{ID: uuid.New()}, g.ID)
		assert.ErrorIs(t, err, galleria.ErrNotFound)
		pictures.AssertNotCalled(t, "AllByGallery", mock.Anything, mock.Anything)
	})
}

func TestGalleryService_List(t *testing.T) {
	alice := galleria.User{ID: uuid.New()}

	t.Run("normalizes page and reports total", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()

		items := []galleria.Gallery{{ID: uuid.New(), UserID: alice.ID}}
		galleries.On("ListByUser", ctx, alice.ID, galleria.Page{Page: 1, PageSize: 100}).Return(items, 101, nil).Once()

		got, err := service.List(ctx, alice, galleria.Page{Page: 0, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, items, got.Items)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 100, got.PageSize)
		assert.Equal(t, 101, got.Total)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		service, galleries, _, _ := NewGalleryService(t)
		ctx := context.Background()

		galleries.On("ListByUser", ctx, alice.ID, galleria.Page{Page: 2, PageSize: 20}).Return([]galleria.Gallery(nil), 0, nil).Once()

		got, err := service.List(ctx, alice, galleria.Page{Page: 2})
		require.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
	})
}
