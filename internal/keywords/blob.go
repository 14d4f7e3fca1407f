package keywords

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/sirupsen/logrus"
)

// BlobStore loads keywords from a CSV file in Azure Blob Storage
type BlobStore struct {
	client    *azblob.Client
	container string
	blob      string
}

var _ Store = (*BlobStore)(nil)

// NewBlobStore creates a blob-backed keyword store using managed identity
func NewBlobStore(accountName, containerName, blobName string) (*BlobStore, error) {
	if accountName == "" {
		return nil, fmt.Errorf("storage account name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	return &BlobStore{
		client:    client,
		container: containerName,
		blob:      blobName,
	}, nil
}

func (s *BlobStore) Load(ctx context.Context) ([]string, error) {
	response, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %s: %w", s.blob, err)
	}
	defer response.Body.Close()

	keywords, err := ParseCSV(response.Body)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Loaded %d keywords from blob %s/%s", len(keywords), s.container, s.blob)
	return keywords, nil
}
