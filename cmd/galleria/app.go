package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/config"
	"github.com/sagarc03/galleria/database"
	"github.com/sagarc03/galleria/filesystem"
	"github.com/sagarc03/galleria/s3store"
)

// openDatabase connects and pings the configured database.
func openDatabase(ctx context.Context, cfg *config.Config) (database.Database, error) {
	db, err := database.Connect(ctx, cfg.Database.Config)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("connected to database", "type", cfg.Database.Type)
	return db, nil
}

// imageStore is the storage backend plus what the server needs to know about it.
type imageStore struct {
	galleria.ImageStorage
	// local is true when images are served by this process under /images/.
	local bool
	close func() error
}

// openStorage builds the configured image storage backend.
func openStorage(ctx context.Context, cfg *config.Config) (*imageStore, error) {
	storageType, err := galleria.ParseStorageType(cfg.Storage.Type)
	if err != nil {
		return nil, err
	}

	switch storageType {
	case galleria.StorageS3:
		s3cfg := cfg.Storage.S3
		store, err := s3store.New(ctx, s3store.Config{
			Bucket:        s3cfg.Bucket,
			Region:        s3cfg.Region,
			Endpoint:      s3cfg.Endpoint,
			AccessKey:     s3cfg.AccessKey,
			SecretKey:     s3cfg.SecretKey,
			PathStyle:     s3cfg.PathStyle,
			PublicRead:    s3cfg.PublicRead,
			PublicBaseURL: s3cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("using s3 image storage", "bucket", s3cfg.Bucket, "endpoint", s3cfg.Endpoint)
		return &imageStore{ImageStorage: store, close: func() error { return nil }}, nil

	default:
		if err := os.MkdirAll(cfg.Storage.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}

		root, err := os.OpenRoot(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open storage root: %w", err)
		}

		slog.Info("using filesystem image storage", "path", cfg.Storage.Path)
		return &imageStore{
			ImageStorage: filesystem.NewFileStorage(root, cfg.Server.PublicBaseURL),
			local:        true,
			close:        root.Close,
		}, nil
	}
}

// List forwards to the backend when it can enumerate keys.
func (s *imageStore) List(ctx context.Context, prefix string) ([]string, error) {
	lister, ok := s.ImageStorage.(galleria.ImageLister)
	if !ok {
		return nil, fmt.Errorf("storage backend cannot list objects")
	}
	return lister.List(ctx, prefix)
}

func (s *imageStore) Close() error {
	return s.close()
}

// services bundles everything a command needs to talk to the domain layer.
type services struct {
	db          database.Database
	storage     *imageStore
	credentials *galleria.CredentialStore
	galleries   *galleria.GalleryService
	pictures    *galleria.PictureService
}

// openServices connects the database and storage. With migrate set the
// schema is created first. The schema is always validated. A nil secret
// leaves credentials unset for commands that never touch users.
func openServices(ctx context.Context, cfg *config.Config, migrate bool, secret []byte) (*services, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		slog.Info("database migration complete")
	}

	if err := db.Validate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("validate database schema: %w", err)
	}

	storage, err := openStorage(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &services{db: db, storage: storage}

	if secret != nil {
		s.credentials, err = galleria.NewCredentialStore(db.Users(), galleria.CredentialConfig{Secret: secret})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("create credential store: %w", err)
		}
	}

	s.galleries, err = galleria.NewGalleryService(db.Galleries(), db.Pictures(), storage)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create gallery service: %w", err)
	}

	s.pictures, err = galleria.NewPictureService(db.Galleries(), db.Pictures(), storage, galleria.PictureConfig{
		CleanupTimeout: cfg.Service.CleanupTimeoutDuration(),
		MaxUploadSize:  cfg.Server.MaxUploadSize,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create picture service: %w", err)
	}

	return s, nil
}

func (s *services) Close() {
	if err := s.storage.Close(); err != nil {
		slog.Warn("close storage", "err", err)
	}
	if err := s.db.Close(); err != nil {
		slog.Warn("close database", "err", err)
	}
}
