// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// PhotoStore implements ports.PhotoStorage on S3. Photos are keyed under
// photos/<article-code>/<uuid><ext> so a depositor's items group by prefix.
type PhotoStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	logger   *slog.Logger
}

// Statically assert that *PhotoStore implements the port.
var _ ports.PhotoStorage = (*PhotoStore)(nil)

// Config holds S3 connection settings.
type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
}

// NewPhotoStore creates a new S3-backed photo store and ensures the bucket
// exists.
func NewPhotoStore(ctx context.Context, cfg *Config, logger *slog.Logger) (*PhotoStore, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	store := &PhotoStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		logger:   logger.With(slog.String("storage", "s3")),
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	logger.Info("photo storage initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region))

	return store, nil
}

func buildAWSConfig(ctx context.Context, cfg *Config) (aws.Config, error) {
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
}

func (p *PhotoStore) ensureBucket(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(p.bucket),
	})
	if err == nil {
		return nil
	}

	_, createErr := p.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(p.bucket),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(p.region),
		},
	})
	if createErr != nil {
		return fmt.Errorf("bucket %s does not exist and could not be created: %w", p.bucket, createErr)
	}

	p.logger.Info("created S3 bucket", slog.String("bucket", p.bucket))
	return nil
}

// Upload stores a photo under the article's prefix and returns its key.
func (p *PhotoStore) Upload(ctx context.Context, articleCode string, data io.Reader, contentType string) (string, error) {
	ext := extensionFor(contentType)
	key := fmt.Sprintf("photos/%s/%s%s", articleCode, uuid.New().String(), ext)

	result, err := p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"article-code": articleCode,
			"uploaded-at":  time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	p.logger.InfoContext(ctx, "photo uploaded",
		slog.String("key", key),
		slog.String("location", result.Location))

	return key, nil
}

// PresignedURL generates a short-lived direct download URL.
func (p *PhotoStore) PresignedURL(ctx context.Context, key string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(p.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = duration
	})
	if err != nil {
		return "", fmt.Errorf("failed to create presigned URL: %w", err)
	}

	return request.URL, nil
}

// Delete removes a stored photo.
func (p *PhotoStore) Delete(ctx context.Context, key string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	p.logger.InfoContext(ctx, "photo deleted", slog.String("key", key))
	return nil
}

// Exists checks whether a photo key is present.
func (p *PhotoStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check photo existence: %w", err)
	}
	return true, nil
}

// extensionFor maps a content type to a file extension, defaulting to .bin.
func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
