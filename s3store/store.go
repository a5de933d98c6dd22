// Package s3store provides an image storage backend on Amazon S3 or any
// S3-compatible service such as MinIO.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/sagarc03/galleria"
)

const defaultRegion = "us-east-1"

// Config describes the bucket and how to reach it.
type Config struct {
	Bucket string
	Region string
	// Endpoint overrides the AWS endpoint, e.g. http://localhost:9000 for MinIO.
	Endpoint  string
	AccessKey string
	SecretKey string
	// PathStyle addresses objects as <endpoint>/<bucket>/<key>.
	PathStyle bool
	// PublicRead uploads objects with the public-read canned ACL.
	PublicRead bool
	// PublicBaseURL is the prefix of returned image URIs. When empty the
	// virtual-hosted AWS address of the bucket is used.
	PublicBaseURL string
}

// Store is an ImageStorage backed by one S3 bucket.
type Store struct {
	client     *s3.Client
	bucket     string
	publicRead bool
	baseURL    string
}

// New builds an S3 client from cfg. Static credentials are used when an
// access key is configured; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 store: bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 store: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
		// S3-compatible services do not all accept the default CRC checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}

	return &Store{
		client:     client,
		bucket:     cfg.Bucket,
		publicRead: cfg.PublicRead,
		baseURL:    baseURL,
	}, nil
}

// URI returns the public address of key.
func (s *Store) URI(key string) string {
	return s.baseURL + "/" + key
}

// Put uploads content to key. The body is buffered so the request can be
// signed and retried.
func (s *Store) Put(ctx context.Context, key, contentType string, content io.Reader) (galleria.StoredImage, error) {
	if err := ctx.Err(); err != nil {
		return galleria.StoredImage{}, err
	}

	if !galleria.IsValidKey(key) {
		return galleria.StoredImage{}, fmt.Errorf("put %q: %w", key, galleria.ErrInvalidInput)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return galleria.StoredImage{}, fmt.Errorf("put %q: read content: %w", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if s.publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return galleria.StoredImage{}, fmt.Errorf("put %q: %w", key, err)
	}

	return galleria.StoredImage{Key: key, URI: s.URI(key), Size: int64(len(data))}, nil
}

// Get opens the object at key. Returns galleria.ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if !galleria.IsValidKey(key) {
		return nil, galleria.ErrNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, galleria.ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	return out.Body, nil
}

// Delete removes the object at key. S3 deletes are idempotent, so the object
// is checked first to report galleria.ErrNotFound for missing keys.
func (s *Store) Delete(ctx context.Context, key string) error {
	if !galleria.IsValidKey(key) {
		return galleria.ErrNotFound
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return galleria.ErrNotFound
		}
		return fmt.Errorf("delete %q: %w", key, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// List returns every key in the bucket that starts with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	keys := []string{}
	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
