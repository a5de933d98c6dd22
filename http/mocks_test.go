package http_test

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/mock"
)

// MockAuth is a mock implementation of http.AuthService
type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Signup(ctx context.Context, req galleria.SignupRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuth) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuth) ResolveSignedToken(ctx context.Context, signed string) (galleria.User, error) {
	args := m.Called(ctx, signed)
	return args.Get(0).(galleria.User), args.Error(1)
}

// MockGalleries is a mock implementation of http.GalleryService
type MockGalleries struct {
	mock.Mock
}

func (m *MockGalleries) Create(ctx context.Context, user galleria.User, in galleria.GalleryInput) (galleria.Gallery, error) {
	args := m.Called(ctx, user, in)
	return args.Get(0).(galleria.Gallery), args.Error(1)
}

func (m *MockGalleries) Get(ctx context.Context, user galleria.User, id uuid.UUID) (galleria.Gallery, error) {
	args := m.Called(ctx, user, id)
	return args.Get(0).(galleria.Gallery), args.Error(1)
}

func (m *MockGalleries) Update(ctx context.Context, user galleria.User, id uuid.UUID, patch galleria.GalleryPatch) (galleria.Gallery, error) {
	args := m.Called(ctx, user, id, patch)
	return args.Get(0).(galleria.Gallery), args.Error(1)
}

func (m *MockGalleries) Delete(ctx context.Context, user galleria.User, id uuid.UUID) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}

func (m *MockGalleries) List(ctx context.Context, user galleria.User, page galleria.Page) (galleria.Paged[galleria.Gallery], error) {
	args := m.Called(ctx, user, page)
	return args.Get(0).(galleria.Paged[galleria.Gallery]), args.Error(1)
}

// MockPictures is a mock implementation of http.PictureService
type MockPictures struct {
	mock.Mock
	maxUpload int64
}

func (m *MockPictures) Upload(ctx context.Context, user galleria.User, galleryID uuid.UUID, in galleria.PictureInput, file *galleria.ImageFile) (galleria.Picture, error) {
	var content []byte
	if file != nil {
		content, _ = io.ReadAll(file.Reader)
	}
	args := m.Called(ctx, user, galleryID, in, file, content)
	return args.Get(0).(galleria.Picture), args.Error(1)
}

func (m *MockPictures) Get(ctx context.Context, user galleria.User, galleryID, picID uuid.UUID) (galleria.Picture, error) {
	args := m.Called(ctx, user, galleryID, picID)
	return args.Get(0).(galleria.Picture), args.Error(1)
}

func (m *MockPictures) List(ctx context.Context, user galleria.User, galleryID uuid.UUID, page galleria.Page) (galleria.Paged[galleria.Picture], error) {
	args := m.Called(ctx, user, galleryID, page)
	return args.Get(0).(galleria.Paged[galleria.Picture]), args.Error(1)
}

func (m *MockPictures) Delete(ctx context.Context, user galleria.User, galleryID, picID uuid.UUID) error {
	args := m.Called(ctx, user, galleryID, picID)
	return args.Error(0)
}

func (m *MockPictures) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockPictures) MaxUploadSize() int64 {
	if m.maxUpload == 0 {
		return galleria.DefaultMaxUploadSize
	}
	return m.maxUpload
}
