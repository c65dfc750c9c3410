package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSClient struct {
	client     *storage.Client
	bucketName string
}

func NewGCSClient(projectID, bucketName, credentialsFile string) (*GCSClient, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}

	return &GCSClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *GCSClient) UploadBytes(data []byte, contentType, key string) (*UploadResult, error) {
	ctx := context.Background()
	obj := c.client.Bucket(c.bucketName).Object(key)

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return &UploadResult{
		ObjectURL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, key),
		ObjectKey: key,
	}, nil
}

func (c *GCSClient) Delete(key string) error {
	ctx := context.Background()
	return c.client.Bucket(c.bucketName).Object(key).Delete(ctx)
}
