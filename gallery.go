package galleria

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GalleryService provides owner-scoped gallery operations.
type GalleryService struct {
	galleries GalleryRepo
	pictures  PictureRepo
	storage   ImageStorage
}

func NewGalleryService(galleries GalleryRepo, pictures PictureRepo, storage ImageStorage) (*GalleryService, error) {
	if galleries == nil || pictures == nil || storage == nil {
		return nil, errors.New("new gallery service: repos and storage are required")
	}
	return &GalleryService{
		galleries: galleries,
		pictures:  pictures,
		storage:   storage,
	}, nil
}

func (s *GalleryService) Create(ctx context.Context, user User, in GalleryInput) (Gallery, error) {
	if err := ctx.Err(); err != nil {
		return Gallery{}, fmt.Errorf("create gallery: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Gallery{}, fmt.Errorf("create gallery: %w", InvalidInput("name is required"))
	}

	g, err := s.galleries.Create(ctx, Gallery{
		Name:        name,
		Description: in.Description,
		UserID:      user.ID,
	})
	if err != nil {
		return Gallery{}, fmt.Errorf("create gallery: %w", err)
	}

	return g, nil
}

// Get returns a gallery owned by user. A gallery owned by someone else is
// reported as ErrNotFound.
func (s *GalleryService) Get(ctx context.Context, user User, id uuid.UUID) (Gallery, error) {
	if err := ctx.Err(); err != nil {
		return Gallery{}, fmt.Errorf("get gallery: %w", err)
	}

	g, err := ownedGallery(ctx, s.galleries, user, id)
	if err != nil {
		return Gallery{}, fmt.Errorf("get gallery: %w", err)
	}

	return g, nil
}

// Update applies a partial update. Nil patch fields keep their value.
func (s *GalleryService) Update(ctx context.Context, user User, id uuid.UUID, patch GalleryPatch) (Gallery, error) {
	if err := ctx.Err(); err != nil {
		return Gallery{}, fmt.Errorf("update gallery: %w", err)
	}

	g, err := ownedGallery(ctx, s.galleries, user, id)
	if err != nil {
		return Gallery{}, fmt.Errorf("update gallery: %w", err)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return Gallery{}, fmt.Errorf("update gallery: %w", InvalidInput("name cannot be empty"))
		}
		g.Name = name
	}

	if patch.Description != nil {
		g.Description = *patch.Description
	}

	updated, err := s.galleries.Update(ctx, g)
	if err != nil {
		return Gallery{}, fmt.Errorf("update gallery: %w", err)
	}

	return updated, nil
}

// Delete removes a gallery together with its pictures.
//
// Stored objects go first; an object that is already missing is skipped and
// any other storage failure aborts before rows are touched. Picture rows are
// removed next, then the gallery row.
func (s *GalleryService) Delete(ctx context.Context, user User, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}

	g, err := ownedGallery(ctx, s.galleries, user, id)
	if err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}

	pics, err := s.pictures.AllByGallery(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("delete gallery %s: list pictures: %w", g.ID, err)
	}

	for _, p := range pics {
		if err := s.storage.Delete(ctx, p.ObjectKey); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete gallery %s: delete object %s: %w", g.ID, p.ObjectKey, err)
		}
	}

	if _, err := s.pictures.DeleteByGallery(ctx, g.ID); err != nil {
		return fmt.Errorf("delete gallery %s: delete pictures: %w", g.ID, err)
	}

	if err := s.galleries.Delete(ctx, g.ID); err != nil {
		return fmt.Errorf("delete gallery %s: %w", g.ID, err)
	}

	return nil
}

// List returns one page of the user's galleries, newest first.
func (s *GalleryService) List(ctx context.Context, user User, page Page) (Paged[Gallery], error) {
	if err := ctx.Err(); err != nil {
		return Paged[Gallery]{}, fmt.Errorf("list galleries: %w", err)
	}

	page = page.Normalize()

	items, total, err := s.galleries.ListByUser(ctx, user.ID, page)
	if err != nil {
		return Paged[Gallery]{}, fmt.Errorf("list galleries: %w", err)
	}

	if items == nil {
		items = []Gallery{}
	}

	return Paged[Gallery]{
		Items:    items,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    total,
	}, nil
}

func ownedGallery(ctx context.Context, repo GalleryRepo, user User, id uuid.UUID) (Gallery, error) {
	g, err := repo.Get(ctx, id)
	if err != nil {
		return Gallery{}, err
	}

	if g.UserID != user.ID {
		return Gallery{}, ErrNotFound
	}

	return g, nil
}
