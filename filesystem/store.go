// Package filesystem provides a local image storage backend for galleria.
// Writes are atomic (temp file then rename) and every path is resolved
// inside an os.Root so keys cannot escape the storage directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
)

const tmpPrefix = ".t"

// Store provides image storage on the local file system.
type Store struct {
	root    *os.Root
	baseURL string
}

// NewFileStorage creates a new Store with the given root directory.
// Public URIs are built as <publicBaseURL>/images/<key>.
func NewFileStorage(root *os.Root, publicBaseURL string) *Store {
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// URI returns the public address of key.
func (s *Store) URI(key string) string {
	return s.baseURL + "/images/" + key
}

// Get opens an image for reading. Returns galleria.ErrNotFound if the file does not exist.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !galleria.IsValidKey(key) {
		return nil, galleria.ErrNotFound
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, galleria.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, galleria.ErrNotFound
	}

	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Put atomically writes content to key using a temp file and rename.
// Intermediate directories are created as needed. The content type is not
// persisted; it is recorded on the picture row instead.
func (s *Store) Put(ctx context.Context, key, contentType string, content io.Reader) (galleria.StoredImage, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return galleria.StoredImage{}, ctxErr
	}

	if !galleria.IsValidKey(key) {
		return galleria.StoredImage{}, fmt.Errorf("put %q: %w", key, galleria.ErrInvalidInput)
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return galleria.StoredImage{}, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	size, err := io.Copy(t, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return galleria.StoredImage{}, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return galleria.StoredImage{}, fmt.Errorf("could not sync written file: %w", err)
	}

	destDir := path.Dir(key)
	if destDir != "." {
		if err := s.root.MkdirAll(destDir, 0o755); err != nil {
			return galleria.StoredImage{}, fmt.Errorf("could not create intermediate directories: %w", err)
		}
	}

	if renameErr := s.root.Rename(tmpFile, key); renameErr != nil {
		return galleria.StoredImage{}, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	slog.Debug("stored image", "key", key, "content_type", contentType, "size", size)

	return galleria.StoredImage{Key: key, URI: s.URI(key), Size: size}, nil
}

// Delete removes an image. Returns galleria.ErrNotFound if the file does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !galleria.IsValidKey(key) {
		return galleria.ErrNotFound
	}

	err := s.root.Remove(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return galleria.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

// List recursively walks the storage directory and returns every key that
// starts with prefix. In-flight temp files are skipped.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := []string{}

	err := s.walkDir(ctx, ".", prefix, &keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return keys, nil
}

func (s *Store) walkDir(ctx context.Context, dir, prefix string, keys *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := filepath.ToSlash(filepath.Join(dir, entry.Name()))

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, prefix, keys); err != nil {
				return err
			}
			continue
		}

		if strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}

		if strings.HasPrefix(entryPath, prefix) {
			*keys = append(*keys, entryPath)
		}
	}

	return nil
}

func tmpFileName() string {
	return fmt.Sprintf("%s%s", tmpPrefix, uuid.New().String())
}
