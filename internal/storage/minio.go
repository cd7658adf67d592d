package storage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"helloapi/internal/config"
)

// BucketProbe is a health.Checker that verifies an S3-compatible bucket
// (MinIO, AWS S3, etc.) is reachable and exists.
// It is safe for concurrent use by multiple goroutines.
type BucketProbe struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a bucket probe backed by the MinIO client. Outbound requests
// go through an otelhttp transport so probe calls show up in traces.
// No network call is made here; connectivity is checked by Check.
func NewMinIO(cfg config.MinIOConfig) (*BucketProbe, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &BucketProbe{client: cli, bucket: cfg.Bucket}, nil
}

// Name implements health.Checker.
func (b *BucketProbe) Name() string { return "minio" }

// Check implements health.Checker.
func (b *BucketProbe) Check(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", b.bucket)
	}
	return nil
}
