// Package storage provides object storage implementations for backup archives.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/garage/backend/internal/application/backup"
	infraconfig "github.com/garage/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ backup.ArchiveStorage = (*S3ArchiveStorage)(nil)

// S3ArchiveStorage implements backup.ArchiveStorage using AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, etc.)
type S3ArchiveStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3ArchiveStorageOption is a functional option for configuring S3ArchiveStorage
type S3ArchiveStorageOption func(*S3ArchiveStorage)

// WithLogger sets a custom logger for S3ArchiveStorage
func WithLogger(logger *zap.Logger) S3ArchiveStorageOption {
	return func(s *S3ArchiveStorage) {
		s.logger = logger
	}
}

// NewS3ArchiveStorage creates a new S3ArchiveStorage from configuration
func NewS3ArchiveStorage(cfg *infraconfig.BackupConfig, opts ...S3ArchiveStorageOption) (*S3ArchiveStorage, error) {
	if cfg == nil {
		return nil, errors.New("backup configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("backup bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("backup access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("backup secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
			// S3-compatible stores generally need path-style addressing
			o.UsePathStyle = true
		}
	})

	storage := &S3ArchiveStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// Upload writes a backup archive to the bucket
func (s *S3ArchiveStorage) Upload(ctx context.Context, key string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload archive %s: %w", key, err)
	}

	s.logger.Info("backup archive uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key))
	return nil
}

// Download reads a backup archive from the bucket. The caller closes the body.
func (s *S3ArchiveStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download archive %s: %w", key, err)
	}
	return out.Body, nil
}
