package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

// s3Store stores blobs in an S3 (or S3-compatible) bucket.
type s3Store struct {
	client *s3.Client
	config *config.S3Config
	logger logger.Logger
}

// NewS3Store creates the cloud object store.
func NewS3Store(cfg *config.S3Config, log logger.Logger) (ObjectStore, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Default credential chain: environment, IAM role, etc.
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var options []func(*s3.Options)

	// Custom endpoint for S3-compatible services such as MinIO.
	if cfg.Endpoint != "" {
		options = append(options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return &s3Store{
		client: s3.NewFromConfig(awsCfg, options...),
		config: cfg,
		logger: log,
	}, nil
}

// Put uploads the blob to the bucket.
func (s *s3Store) Put(ctx context.Context, key string, contentType string, content io.Reader) (*PutResult, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"error":  err.Error(),
			"bucket": s.config.Bucket,
			"key":    key,
		}).Error("Failed to upload object to S3")
		return nil, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	url := s.objectURL(key)

	s.logger.WithFields(map[string]interface{}{
		"key": key,
		"url": url,
	}).Info("Object uploaded to S3")

	return &PutResult{
		Key:      key,
		URL:      url,
		MimeType: contentType,
	}, nil
}

// Delete removes the blob from the bucket.
func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"error":  err.Error(),
			"bucket": s.config.Bucket,
			"key":    key,
		}).Error("Failed to delete object from S3")
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// objectURL builds the public URL for a key, honoring custom endpoints.
func (s *s3Store) objectURL(key string) string {
	if s.config.Endpoint != "" {
		if s.config.UsePathStyle {
			return fmt.Sprintf("%s/%s/%s", s.config.Endpoint, s.config.Bucket, key)
		}
		return fmt.Sprintf("%s/%s", s.config.Endpoint, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key)
}
