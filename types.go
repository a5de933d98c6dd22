package galleria

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// User is the identity record behind every credential.
// IdentityToken is empty until the first signed token is issued.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	IdentityToken string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Gallery struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Picture struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURI    string    `json:"image_uri"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	GalleryID   uuid.UUID `json:"gallery_id"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page selects a window of a list. Zero values mean defaults.
type Page struct {
	Page     int
	PageSize int
}

// Normalize clamps the page to >= 1 and the page size to [1, MaxPageSize].
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	p.PageSize = min(p.PageSize, MaxPageSize)
	return p
}

// Offset returns the number of rows to skip. Call on a normalized page.
func (p Page) Offset() int {
	return p.PageSize * (p.Page - 1)
}

type Paged[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GalleryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GalleryPatch is a partial update. Nil fields are left unchanged.
type GalleryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type PictureInput struct {
	Name        string
	Description string
}

// ImageFile is an uploaded image as received from the client.
type ImageFile struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// StoredImage describes an object written to image storage.
type StoredImage struct {
	Key  string
	URI  string
	Size int64
}

type StorageType string

const (
	StorageFilesystem StorageType = "filesystem"
	StorageS3         StorageType = "s3"
)

func (s StorageType) IsValid() bool {
	switch s {
	case StorageFilesystem, StorageS3:
		return true
	default:
		return false
	}
}

func ParseStorageType(s string) (StorageType, error) {
	st := StorageType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid storage type: %s (valid types: filesystem, s3)", s)
	}
	return st, nil
}

// Tables holds configurable table names.
// This allows several deployments to share one database.
type Tables struct {
	Users     string `mapstructure:"users"`
	Galleries string `mapstructure:"galleries"`
	Pictures  string `mapstructure:"pictures"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all required table names are set, valid and distinct.
func (t Tables) Validate() error {
	names := []struct {
		kind  string
		value string
	}{
		{"users", t.Users},
		{"galleries", t.Galleries},
		{"pictures", t.Pictures},
	}

	seen := make(map[string]string, len(names))
	for _, n := range names {
		if n.value == "" {
			return fmt.Errorf("validate tables: %s table name cannot be empty", n.kind)
		}
		if !IsValidTableName(n.value) {
			return fmt.Errorf("validate tables: invalid %s table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", n.kind, n.value)
		}
		if other, ok := seen[n.value]; ok {
			return fmt.Errorf("validate tables: %s and %s share table name %s", other, n.kind, n.value)
		}
		seen[n.value] = n.kind
	}

	return nil
}
