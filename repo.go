package galleria

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// UserRepo persists identity records.
// Implementations enforce unique indexes on username, email and identity
// token and report violations as *DuplicateKeyError naming the field.
//
// All methods accept a context for cancellation and timeout control.
type UserRepo interface {
	// Create inserts a new user and returns it with ID and timestamps assigned.
	//
	// Returns:
	//   - User: The stored user
	//   - error: *DuplicateKeyError for username or email, or other database errors
	Create(ctx context.Context, user User) (User, error)

	// FindOneByUsername looks a user up by exact username.
	//
	// Returns:
	//   - error: ErrNotFound if no user has that username
	FindOneByUsername(ctx context.Context, username string) (User, error)

	// FindOneByIdentityToken looks a user up by its current identity token.
	//
	// Returns:
	//   - error: ErrNotFound if no user holds that token
	FindOneByIdentityToken(ctx context.Context, token string) (User, error)

	// Save writes the mutable fields of an existing user (password hash and
	// identity token) and bumps updated_at. An empty identity token is stored
	// as NULL.
	//
	// Returns:
	//   - error: *DuplicateKeyError for identity_token on collision,
	//     ErrNotFound if the user does not exist, or other database errors
	Save(ctx context.Context, user User) error
}

// GalleryRepo persists galleries.
type GalleryRepo interface {
	Create(ctx context.Context, gallery Gallery) (Gallery, error)
	// Get returns ErrNotFound when the gallery does not exist.
	Get(ctx context.Context, id uuid.UUID) (Gallery, error)
	// Update writes name and description and bumps updated_at.
	Update(ctx context.Context, gallery Gallery) (Gallery, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns one page of a user's galleries, newest first, and the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]Gallery, int, error)
}

// PictureRepo persists picture rows. Image bytes live in ImageStorage.
type PictureRepo interface {
	// Create inserts a picture row. A reused image URI is a *DuplicateKeyError.
	Create(ctx context.Context, picture Picture) (Picture, error)
	Get(ctx context.Context, id uuid.UUID) (Picture, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByGallery returns one page of a gallery's pictures, newest first, and the total count.
	ListByGallery(ctx context.Context, galleryID uuid.UUID, page Page) ([]Picture, int, error)
	// AllByGallery returns every picture of a gallery.
	AllByGallery(ctx context.Context, galleryID uuid.UUID) ([]Picture, error)
	// DeleteByGallery removes every picture row of a gallery and returns how many were removed.
	DeleteByGallery(ctx context.Context, galleryID uuid.UUID) (int64, error)
	// ExistsByObjectKey reports whether a picture row references the storage key.
	ExistsByObjectKey(ctx context.Context, key string) (bool, error)
}

// ImageStorage defines the interface for image object storage.
// Implementations can use the local filesystem, S3, or any compatible backend.
//
// All methods accept a context for cancellation and timeout control.
type ImageStorage interface {
	// Put stores content under key, overwriting any existing object.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - key: Destination key, validated with IsValidKey
	//   - contentType: MIME type recorded with the object
	//   - content: io.Reader providing the image bytes
	//
	// Returns:
	//   - StoredImage: The key, its public URI and the number of bytes written
	//   - error: ErrInvalidInput for a bad key, or any storage error
	Put(ctx context.Context, key, contentType string, content io.Reader) (StoredImage, error)

	// Get opens a stored object for reading. The caller closes the reader.
	//
	// Returns:
	//   - error: ErrNotFound if the object doesn't exist, or other storage errors
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored object.
	//
	// Returns:
	//   - error: ErrNotFound if the object doesn't exist, or other storage errors
	Delete(ctx context.Context, key string) error
}

// ImageLister is implemented by storage backends that can enumerate keys.
// It is used to find orphaned objects.
type ImageLister interface {
	// List returns every key that starts with prefix. An empty prefix lists all keys.
	List(ctx context.Context, prefix string) ([]string, error)
}
