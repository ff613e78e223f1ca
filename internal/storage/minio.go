package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore is a write-once blob sink for QR images. It satisfies the
// qr.ImageStore interface.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore creates the client and ensures the bucket exists.
func NewMinIOStore(cfg *MinIOConfig) (*MinIOStore, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOStore{client: mc, bucket: cfg.Bucket}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// Put uploads a rendered PNG under the given object name.
func (s *MinIOStore) Put(ctx context.Context, name string, png []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(png), int64(len(png)),
		minio.PutObjectOptions{ContentType: "image/png"})
	return err
}
