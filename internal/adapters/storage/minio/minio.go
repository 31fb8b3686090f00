package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"webapp/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter, creating the bucket when it does not exist yet
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("bucket created", slog.String("bucket", cfg.BucketName))
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// PutObject stores body under fileKey
func (a *Adapter) PutObject(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, a.config.BucketName, fileKey, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	a.logger.Debug("object stored",
		slog.String("fileKey", fileKey),
		slog.String("bucket", a.config.BucketName),
		slog.Int64("size", size))
	return nil
}

// DeleteObject removes fileKey; removing a missing key is not an error
func (a *Adapter) DeleteObject(ctx context.Context, fileKey string) error {
	if err := a.client.RemoveObject(ctx, a.config.BucketName, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("fileKey", fileKey),
		slog.String("bucket", a.config.BucketName))
	return nil
}

// Bucket returns the bucket every key lives in
func (a *Adapter) Bucket() string {
	return a.config.BucketName
}
