package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"webapp/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Adapter is an adapter for S3 compatible object stores
type Adapter struct {
	client *s3.Client
	config config.S3Config
	logger *slog.Logger
}

// NewAdapter returns Adapter. Static credentials are used when configured,
// otherwise the default AWS credential chain applies.
func NewAdapter(ctx context.Context, cfg config.S3Config, logger *slog.Logger) (*Adapter, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	adapter := &Adapter{client: client, config: cfg, logger: logger}
	if err := adapter.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return adapter, nil
}

func (a *Adapter) ensureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.config.BucketName)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(a.config.BucketName)}
	// us-east-1 rejects an explicit location constraint
	if a.config.Region != "" && a.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(a.config.Region),
		}
	}
	if _, err := a.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	a.logger.Info("bucket created", slog.String("bucket", a.config.BucketName))
	return nil
}

// PutObject stores body under fileKey
func (a *Adapter) PutObject(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.config.BucketName),
		Key:           aws.String(fileKey),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
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

// DeleteObject removes fileKey; S3 treats a missing key as success
func (a *Adapter) DeleteObject(ctx context.Context, fileKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
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
