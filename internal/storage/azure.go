package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

type AzureBackend struct {
	client    *azblob.Client
	container string
}

func NewAzureBackend(connectionString, container string) (*AzureBackend, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Azure Blob storage: %w", err)
	}

	return &AzureBackend{client: client, container: container}, nil
}

func (b *AzureBackend) Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	_, err := b.client.UploadBuffer(ctx, b.container, fileName, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Azure Blob storage: %w", err)
	}
	return b.URLFor(fileName), nil
}

func (b *AzureBackend) Delete(ctx context.Context, fileName string) error {
	_, err := b.client.DeleteBlob(ctx, b.container, fileName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete from Azure Blob storage: %w", err)
	}
	return nil
}

func (b *AzureBackend) URLFor(fileName string) string {
	return strings.TrimSuffix(b.client.URL(), "/") + "/" + b.container + "/" + fileName
}
