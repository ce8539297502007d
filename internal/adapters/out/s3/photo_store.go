// Package s3 stores pickup photos in an S3 bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"washday/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = time.Hour

// Config holds the credentials and bucket for the photo store.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// PhotoStore implements ports.PhotoStore on top of an S3 bucket. Photos are
// private; reads go through presigned URLs.
type PhotoStore struct {
	client *s3.Client
	bucket string
}

// NewPhotoStore creates a photo store from static credentials.
func NewPhotoStore(ctx context.Context, cfg Config) (*PhotoStore, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &PhotoStore{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.Bucket,
	}, nil
}

var _ ports.PhotoStore = (*PhotoStore)(nil)

// Upload stores a pickup photo and returns its key. Keys are scoped per order
// and timestamped, so a retaken photo never overwrites the first one.
func (s *PhotoStore) Upload(
	ctx context.Context, orderID string, contentType string, body io.Reader,
) (string, error) {
	key := fmt.Sprintf("pickups/%s/%d.jpg", orderID, time.Now().UTC().UnixNano())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return key, nil
}

// PresignedURL returns a download URL valid for one hour.
func (s *PhotoStore) PresignedURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}
