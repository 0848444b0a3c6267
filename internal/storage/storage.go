// Package storage abstracts the remote object stores media bytes live in.
// Exactly one Backend is constructed at process start from configuration;
// the media service never knows which provider it is talking to.
package storage

import (
	"context"
	"fmt"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/config"
)

// Backend is the capability set every provider has to offer. Delete is
// idempotent: removing an object that is already gone is not an error.
// URLFor is pure and performs no I/O.
type Backend interface {
	Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, fileName string) error
	URLFor(fileName string) string
}

// NewBackend constructs the backend named by cfg.StorageProvider. This is
// a startup-time decision: an unknown or empty provider fails with
// ErrUnsupportedProvider and the process should not come up.
func NewBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StorageProvider {
	case "cloudinary":
		return NewCloudinaryBackend(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "azure":
		return NewAzureBackend(cfg.AzureStorageConnectionString, cfg.AzureStorageContainer)
	case "s3":
		return NewS3Backend(ctx, S3Options{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedProvider, cfg.StorageProvider)
	}
}
