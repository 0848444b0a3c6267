package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryBackend struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

func NewCloudinaryBackend(cloudName, apiKey, apiSecret string) (*CloudinaryBackend, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryBackend{cld: cld, cloudName: cloudName}, nil
}

func (b *CloudinaryBackend) Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	uploadResult, err := b.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		PublicID:     fileName,
		ResourceType: "auto", // Automatically detect image, video, or raw
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// Delete destroys the asset by public ID. Cloudinary reports a missing
// asset in the result body, not as an error, so deleting twice is fine.
func (b *CloudinaryBackend) Delete(ctx context.Context, fileName string) error {
	_, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: fileName})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	return nil
}

func (b *CloudinaryBackend) URLFor(fileName string) string {
	if img, err := b.cld.Image(fileName); err == nil {
		if url, err := img.String(); err == nil && url != "" {
			return url
		}
	}
	// Asset building only fails on bad configuration; fall back to the
	// canonical delivery URL shape.
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", b.cloudName, fileName)
}
