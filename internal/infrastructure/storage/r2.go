// Package storage provides blob storage for scanned page images.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"polydoc-api/internal/config"
	"polydoc-api/pkg/metrics"
)

var tracer = otel.Tracer("storage.r2")

// R2Store is a BlobStore on Cloudflare R2 through the S3 API.
type R2Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Store builds an R2-backed blob store from configuration.
func NewR2Store(ctx context.Context, cfg *config.R2Config) (*R2Store, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("r2 storage is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load r2 credentials: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &endpoint
	})

	return &R2Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Put uploads the blob under key and returns its public URL.
func (s *R2Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	ctx, span := tracer.Start(ctx, "r2.Put",
		trace.WithAttributes(attribute.String("blob.key", key)))
	defer span.End()

	data, err := io.ReadAll(body)
	if err != nil {
		span.RecordError(err)
		metrics.BlobOperationsTotal.WithLabelValues("put", "error").Inc()
		return "", fmt.Errorf("failed to read blob body: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		span.RecordError(err)
		metrics.BlobOperationsTotal.WithLabelValues("put", "error").Inc()
		return "", fmt.Errorf("failed to put blob %s: %w", key, err)
	}

	metrics.BlobOperationsTotal.WithLabelValues("put", "ok").Inc()
	metrics.BlobUploadBytes.Observe(float64(len(data)))

	return s.URL(key), nil
}

// Delete removes the blob. S3 deletes are idempotent, so an absent key
// does not error.
func (s *R2Store) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "r2.Delete",
		trace.WithAttributes(attribute.String("blob.key", key)))
	defer span.End()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		span.RecordError(err)
		metrics.BlobOperationsTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}

	metrics.BlobOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

// URL returns the public URL for a key.
func (s *R2Store) URL(key string) string {
	if s.publicURL == "" {
		return fmt.Sprintf("https://%s/%s", s.bucket, key)
	}
	return s.publicURL + "/" + key
}

// HealthCheck verifies the bucket is reachable.
func (s *R2Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &s.bucket})
	if err != nil {
		return fmt.Errorf("r2 health check failed: %w", err)
	}
	return nil
}

// BlobKey derives a storage key for a page image from the page group file
// name, the upload time and the original file extension.
func BlobKey(fileName, originalName string, now time.Time) string {
	ext := ""
	if idx := strings.LastIndex(originalName, "."); idx >= 0 {
		ext = strings.ToLower(originalName[idx:])
	}
	return fmt.Sprintf("pages/%s-%d%s", fileName, now.UnixNano(), ext)
}
