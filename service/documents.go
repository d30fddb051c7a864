package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DocumentVault stores supporting clinical documents (clinical notes, imaging
// results, therapy records) in object storage. Successful uploads are what
// drive a request's received-documents set forward.
type DocumentVault struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewDocumentVault(cfg *config.MinioConfig) (*DocumentVault, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &DocumentVault{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (v *DocumentVault) EnsureBucket(ctx context.Context) error {
	exists, err := v.client.BucketExists(ctx, v.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = v.client.MakeBucket(ctx, v.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ObjectName builds the storage key for a document attached to a request
func (v *DocumentVault) ObjectName(requestID, docType, filename string) string {
	return fmt.Sprintf("%s/%s/%s", requestID, docType, filename)
}

// Store uploads a document to the vault
func (v *DocumentVault) Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := v.client.PutObject(ctx, v.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	return nil
}

// PresignedURL generates a time-limited download URL for a stored document
func (v *DocumentVault) PresignedURL(ctx context.Context, objectName string) (string, error) {
	expiry := time.Duration(v.config.ExpireDays) * 24 * time.Hour
	url, err := v.client.PresignedGetObject(ctx, v.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// Remove deletes a document from the vault
func (v *DocumentVault) Remove(ctx context.Context, objectName string) error {
	err := v.client.RemoveObject(ctx, v.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	return nil
}
