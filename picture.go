package galleria

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxUploadSize is the upload limit used when none is configured.
const DefaultMaxUploadSize int64 = 10 << 20

// PictureConfig holds configuration options for PictureService.
type PictureConfig struct {
	CleanupTimeout time.Duration // Timeout for cleanup operations (default: 30s)
	MaxUploadSize  int64         // Largest accepted image in bytes (default: 10 MiB)
}

// PictureService stores images and their picture rows.
type PictureService struct {
	galleries      GalleryRepo
	pictures       PictureRepo
	storage        ImageStorage
	cleanupTimeout time.Duration
	maxUploadSize  int64
}

func NewPictureService(galleries GalleryRepo, pictures PictureRepo, storage ImageStorage, cfg PictureConfig) (*PictureService, error) {
	if galleries == nil || pictures == nil || storage == nil {
		return nil, errors.New("new picture service: repos and storage are required")
	}
	cleanupTimeout := cfg.CleanupTimeout
	if cleanupTimeout <= 0 {
		cleanupTimeout = 30 * time.Second
	}
	maxUploadSize := cfg.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &PictureService{
		galleries:      galleries,
		pictures:       pictures,
		storage:        storage,
		cleanupTimeout: cleanupTimeout,
		maxUploadSize:  maxUploadSize,
	}, nil
}

// MaxUploadSize returns the configured upload limit in bytes.
func (s *PictureService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// Upload stores an image in a gallery owned by user and records its picture row.
//
// The method performs the following steps:
//  1. Validates input (name, file presence)
//  2. Checks the gallery exists and belongs to user
//  3. Writes the bytes to storage under <galleryID>/<uuid><ext>
//  4. Inserts the picture row
//  5. On insert failure, deletes the stored object
//
// Error types returned:
//   - ErrInvalidInput: Missing name or missing file ("no file found")
//   - ErrNotFound: Gallery missing or owned by someone else
//   - ErrPayloadTooLarge: Image exceeds the configured limit
//   - Wrapped storage or repository errors
//
// Cleanup uses a background context with the configured cleanup timeout so it
// completes even if ctx is cancelled.
func (s *PictureService) Upload(ctx context.Context, user User, galleryID uuid.UUID, in PictureInput, file *ImageFile) (Picture, error) {
	if err := ctx.Err(); err != nil {
		return Picture{}, fmt.Errorf("upload picture: %w", err)
	}

	if file == nil || file.Reader == nil {
		return Picture{}, fmt.Errorf("upload picture: %w", InvalidInput("no file found"))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Picture{}, fmt.Errorf("upload picture: %w", InvalidInput("name is required"))
	}

	g, err := ownedGallery(ctx, s.galleries, user, galleryID)
	if err != nil {
		return Picture{}, fmt.Errorf("upload picture: %w", err)
	}

	id := uuid.New()
	key := ImageKey(g.ID, id, file.Filename)
	contentType := ResolveContentType(file.ContentType, file.Filename)

	limited := &limitReader{r: file.Reader, remaining: s.maxUploadSize}
	stored, err := s.storage.Put(ctx, key, contentType, limited)
	if limited.exceeded {
		return Picture{}, fmt.Errorf("upload picture: %w: image exceeds %d bytes", ErrPayloadTooLarge, s.maxUploadSize)
	}
	if err != nil {
		return Picture{}, fmt.Errorf("upload picture %s: write failed: %w", key, err)
	}

	pic, createErr := s.pictures.Create(ctx, Picture{
		ID:          id,
		Name:        name,
		Description: in.Description,
		ImageURI:    stored.URI,
		ObjectKey:   stored.Key,
		ContentType: contentType,
		SizeBytes:   stored.Size,
		GalleryID:   g.ID,
		UserID:      user.ID,
	})
	if createErr != nil {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), s.cleanupTimeout)
		defer cancel()

		if delErr := s.storage.Delete(cleanupCtx, stored.Key); delErr != nil {
			return Picture{}, fmt.Errorf("upload picture %s: insert failed (%w) and cleanup failed: %w", key, createErr, delErr)
		}
		return Picture{}, fmt.Errorf("upload picture %s: insert failed: %w", key, createErr)
	}

	return pic, nil
}

func (s *PictureService) Get(ctx context.Context, user User, galleryID, picID uuid.UUID) (Picture, error) {
	if err := ctx.Err(); err != nil {
		return Picture{}, fmt.Errorf("get picture: %w", err)
	}

	p, err := s.ownedPicture(ctx, user, galleryID, picID)
	if err != nil {
		return Picture{}, fmt.Errorf("get picture: %w", err)
	}

	return p, nil
}

func (s *PictureService) List(ctx context.Context, user User, galleryID uuid.UUID, page Page) (Paged[Picture], error) {
	if err := ctx.Err(); err != nil {
		return Paged[Picture]{}, fmt.Errorf("list pictures: %w", err)
	}

	if _, err := ownedGallery(ctx, s.galleries, user, galleryID); err != nil {
		return Paged[Picture]{}, fmt.Errorf("list pictures: %w", err)
	}

	page = page.Normalize()

	items, total, err := s.pictures.ListByGallery(ctx, galleryID, page)
	if err != nil {
		return Paged[Picture]{}, fmt.Errorf("list pictures: %w", err)
	}

	if items == nil {
		items = []Picture{}
	}

	return Paged[Picture]{
		Items:    items,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    total,
	}, nil
}

// Delete removes the stored object and then the picture row.
// An object that is already gone does not block removing the row.
func (s *PictureService) Delete(ctx context.Context, user User, galleryID, picID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}

	p, err := s.ownedPicture(ctx, user, galleryID, picID)
	if err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}

	if err := s.storage.Delete(ctx, p.ObjectKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete picture %s: delete object: %w", p.ID, err)
	}

	if err := s.pictures.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete picture %s: %w", p.ID, err)
	}

	return nil
}

// Open streams a stored image by key. The caller closes the reader.
func (s *PictureService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	if !IsValidKey(key) {
		return nil, fmt.Errorf("open image %q: %w", key, ErrNotFound)
	}

	rc, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", key, err)
	}

	return rc, nil
}

// Prune removes stored objects under prefix that no picture row references.
// These are left behind when an upload crashes between the storage write and
// the row insert. With dryRun set nothing is deleted.
//
// Returns the orphaned keys that were found.
func (s *PictureService) Prune(ctx context.Context, prefix string, dryRun bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}

	lister, ok := s.storage.(ImageLister)
	if !ok {
		return nil, errors.New("prune: storage backend cannot list objects")
	}

	keys, err := lister.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}

	orphans := []string{}
	for _, key := range keys {
		exists, err := s.pictures.ExistsByObjectKey(ctx, key)
		if err != nil {
			return orphans, fmt.Errorf("prune '%s': %w", key, err)
		}
		if exists {
			continue
		}

		orphans = append(orphans, key)
		if dryRun {
			continue
		}

		if err := s.storage.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return orphans, fmt.Errorf("prune '%s': %w", key, err)
		}
	}

	return orphans, nil
}

func (s *PictureService) ownedPicture(ctx context.Context, user User, galleryID, picID uuid.UUID) (Picture, error) {
	if _, err := ownedGallery(ctx, s.galleries, user, galleryID); err != nil {
		return Picture{}, err
	}

	p, err := s.pictures.Get(ctx, picID)
	if err != nil {
		return Picture{}, err
	}

	if p.GalleryID != galleryID {
		return Picture{}, ErrNotFound
	}

	return p, nil
}

// limitReader fails with ErrPayloadTooLarge once more than remaining bytes are read.
type limitReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, ErrPayloadTooLarge
	}

	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}

	n, err := l.r.Read(p)
	if int64(n) > l.remaining {
		l.exceeded = true
		return int(l.remaining), ErrPayloadTooLarge
	}
	l.remaining -= int64(n)

	return n, err
}
