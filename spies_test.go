package galleria_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/galleria"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type SpyUserRepo struct {
	mock.Mock
}

func (s *SpyUserRepo) Create(ctx context.Context, user galleria.User) (galleria.User, error) {
	args := s.Called(ctx, user)
	return args.Get(0).(galleria.User), args.Error(1)
}

func (s *SpyUserRepo) FindOneByUsername(ctx context.Context, username string) (galleria.User, error) {
	args := s.Called(ctx, username)
	return args.Get(0).(galleria.User), args.Error(1)
}

func (s *SpyUserRepo) FindOneByIdentityToken(ctx context.Context, token string) (galleria.User, error) {
	args := s.Called(ctx, token)
	return args.Get(0).(galleria.User), args.Error(1)
}

func (s *SpyUserRepo) Save(ctx context.Context, user galleria.User) error {
	args := s.Called(ctx, user)
	return args.Error(0)
}

type SpyGalleryRepo struct {
	mock.Mock
}

func (s *SpyGalleryRepo) Create(ctx context.Context, g galleria.Gallery) (galleria.Gallery, error) {
	args := s.Called(ctx, g)
	return args.Get(0).(galleria.Gallery), args.Error(1)
}

func (s *SpyGalleryRepo) Get(ctx context.Context, id uuid.UUID) (galleria.Gallery, error) {
	args := s.Called(ctx, id)
	return args.Get(0).(galleria.Gallery), args.Error(1)
}

func (s *SpyGalleryRepo) Update(ctx context.Context, g galleria.Gallery) (galleria.Gallery, error) {
	args := s.Called(ctx, g)
	return args.Get(0).(galleria.Gallery), args.Error(1)
}

func (s *SpyGalleryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *SpyGalleryRepo) ListByUser(ctx context.Context, userID uuid.UUID, page galleria.Page) ([]galleria.Gallery, int, error) {
	args := s.Called(ctx, userID, page)
	return args.Get(0).([]galleria.Gallery), args.Int(1), args.Error(2)
}

type SpyPictureRepo struct {
	mock.Mock
}

func (s *SpyPictureRepo) Create(ctx context.Context, p galleria.Picture) (galleria.Picture, error) {
	args := s.Called(ctx, p)
	return args.Get(0).(galleria.Picture), args.Error(1)
}

func (s *SpyPictureRepo) Get(ctx context.Context, id uuid.UUID) (galleria.Picture, error) {
	args := s.Called(ctx, id)
	return args.Get(0).(galleria.Picture), args.Error(1)
}

func (s *SpyPictureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *SpyPictureRepo) ListByGallery(ctx context.Context, galleryID uuid.UUID, page galleria.Page) ([]galleria.Picture, int, error) {
	args := s.Called(ctx, galleryID, page)
	return args.Get(0).([]galleria.Picture), args.Int(1), args.Error(2)
}

func (s *SpyPictureRepo) AllByGallery(ctx context.Context, galleryID uuid.UUID) ([]galleria.Picture, error) {
	args := s.Called(ctx, galleryID)
	return args.Get(0).([]galleria.Picture), args.Error(1)
}

func (s *SpyPictureRepo) DeleteByGallery(ctx context.Context, galleryID uuid.UUID) (int64, error) {
	args := s.Called(ctx, galleryID)
	return args.Get(0).(int64), args.Error(1)
}

func (s *SpyPictureRepo) ExistsByObjectKey(ctx context.Context, key string) (bool, error) {
	args := s.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type SpyImageStorage struct {
	mock.Mock
}

func (s *SpyImageStorage) Put(ctx context.Context, key, contentType string, content io.Reader) (galleria.StoredImage, error) {
	args := s.Called(ctx, key, contentType, content)
	return args.Get(0).(galleria.StoredImage), args.Error(1)
}

func (s *SpyImageStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := s.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (s *SpyImageStorage) Delete(ctx context.Context, key string) error {
	args := s.Called(ctx, key)
	return args.Error(0)
}

// SpyListingStorage adds ImageLister to SpyImageStorage.
type SpyListingStorage struct {
	SpyImageStorage
}

func (s *SpyListingStorage) List(ctx context.Context, prefix string) ([]string, error) {
	args := s.Called(ctx, prefix)
	return args.Get(0).([]string), args.Error(1)
}

func NewCredentialStore(t *testing.T) (*galleria.CredentialStore, *SpyUserRepo) {
	t.Helper()
	users := new(SpyUserRepo)
	s, err := galleria.NewCredentialStore(users, galleria.CredentialConfig{Secret: testSecret})
	require.NoError(t, err, "new credential store")
	return s, users
}

func NewGalleryService(t *testing.T) (*galleria.GalleryService, *SpyGalleryRepo, *SpyPictureRepo, *SpyImageStorage) {
	t.Helper()
	galleries := new(SpyGalleryRepo)
	pictures := new(SpyPictureRepo)
	storage := new(SpyImageStorage)
	s, err := galleria.NewGalleryService(galleries, pictures, storage)
	require.NoError(t, err, "new gallery service")
	return s, galleries, pictures, storage
}

func NewPictureService(t *testing.T, cfg galleria.PictureConfig) (*galleria.PictureService, *SpyGalleryRepo, *SpyPictureRepo, *SpyListingStorage) {
	t.Helper()
	galleries := new(SpyGalleryRepo)
	pictures := new(SpyPictureRepo)
	storage := new(SpyListingStorage)
	s, err := galleria.NewPictureService(galleries, pictures, storage, cfg)
	require.NoError(t, err, "new picture service")
	return s, galleries, pictures, storage
}
