package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *CloudStorageClient) UploadProfilePicture(ctx context.Context, userID string, file io.Reader, contentType string) (string, error) {
	return c.upload(ctx, fmt.Sprintf("profilePictures/%s", userID), file, contentType)
}

func (c *CloudStorageClient) DeleteProfilePicture(ctx context.Context, userID string) error {
	return c.delete(ctx, fmt.Sprintf("profilePictures/%s", userID))
}

func (c *CloudStorageClient) UploadProofDocument(ctx context.Context, userID, docID, fileName string, file io.Reader, contentType string) (string, error) {
	return c.upload(ctx, fmt.Sprintf("distributorProofDocuments/%s/%s", userID, docID), file, contentType)
}

func (c *CloudStorageClient) DeleteProofDocument(ctx context.Context, userID, docID string) error {
	return c.delete(ctx, fmt.Sprintf("distributorProofDocuments/%s/%s", userID, docID))
}

func (c *CloudStorageClient) upload(ctx context.Context, objectName string, file io.Reader, contentType string) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName), nil
}

// delete treats a missing object as success: the contract is "the blob
// is gone", not "the blob was there".
func (c *CloudStorageClient) delete(ctx context.Context, objectName string) error {
	err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("failed to delete object: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
