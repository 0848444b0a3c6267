package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/config"
)

func TestNewBackendUnsupportedProvider(t *testing.T) {
	t.Parallel()

	_, err := NewBackend(context.Background(), &config.Config{StorageProvider: "ftp"})
	require.ErrorIs(t, err, common.ErrUnsupportedProvider)
}

func TestNewBackendUnconfiguredProvider(t *testing.T) {
	t.Parallel()

	_, err := NewBackend(context.Background(), &config.Config{})
	require.ErrorIs(t, err, common.ErrUnsupportedProvider)
}

func TestNewBackendCloudinary(t *testing.T) {
	t.Parallel()

	backend, err := NewBackend(context.Background(), &config.Config{
		StorageProvider:     "cloudinary",
		CloudinaryName:      "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	})
	require.NoError(t, err)
	require.IsType(t, &CloudinaryBackend{}, backend)
	require.Contains(t, backend.URLFor("cat.jpg"), "demo")
	require.Contains(t, backend.URLFor("cat.jpg"), "cat.jpg")
}

func TestS3BackendURLFor(t *testing.T) {
	t.Parallel()

	withEndpoint, err := NewS3Backend(context.Background(), S3Options{
		Region:    "us-east-1",
		Bucket:    "media",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000/",
	})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/media/cat.jpg", withEndpoint.URLFor("cat.jpg"))

	plain, err := NewS3Backend(context.Background(), S3Options{
		Region:    "eu-west-1",
		Bucket:    "media",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/cat.jpg", plain.URLFor("cat.jpg"))
}
