package clientcli

import (
	"time"

	"github.com/google/uuid"
)

// Gallery mirrors the server's gallery JSON.
type Gallery struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Picture mirrors the server's picture JSON.
type Picture struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURI    string    `json:"image_uri"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size_bytes"`
	GalleryID   uuid.UUID `json:"gallery_id"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Page is one page of a server list response.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// HasMore reports whether items exist past this page.
func (p *Page[T]) HasMore() bool {
	return p.Page*p.PageSize < p.Total
}

type (
	GalleryList = Page[Gallery]
	PictureList = Page[Picture]
)

// ListOptions configures a list operation.
type ListOptions struct {
	Page     int
	PageSize int
	All      bool // auto-paginate through all results
}

// GalleryUpdate is a partial update. Nil fields are left unchanged.
type GalleryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UploadOptions configures a picture upload.
type UploadOptions struct {
	LocalPath   string
	Name        string // defaults to the file's base name
	Description string
	ContentType string // optional, auto-detect if empty
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath string   `json:"local_path"`
	Picture   *Picture `json:"picture,omitempty"`
	Err       error    `json:"-"` // nil on success
}

// DeleteResult represents the result of deleting a single resource.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Err     error  `json:"-"` // nil on success
}

// HasDeleteErrors returns true if any delete operation failed.
func HasDeleteErrors(results []DeleteResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type galleryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
