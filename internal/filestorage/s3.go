// File: internal/filestorage/s3.go
package filestorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "school_portal_backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Storage stores uploads in AWS S3 or a MinIO-compatible endpoint.
type S3Storage struct {
	client         *s3.Client
	bucket         string
	region         string
	endpoint       string
	publicEndpoint string
	useSSL         bool
	logger         *zap.Logger
}

// NewS3Storage creates an S3 storage backend from application config.
func NewS3Storage(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*S3Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required for the s3 storage backend")
	}

	var awsCfg aws.Config
	var err error
	if cfg.S3Endpoint != "" {
		// MinIO / LocalStack style endpoint with static credentials.
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(withScheme(cfg.S3Endpoint, cfg.S3UseSSL))
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:         client,
		bucket:         cfg.S3Bucket,
		region:         cfg.S3Region,
		endpoint:       cfg.S3Endpoint,
		publicEndpoint: cfg.S3PublicEndpoint,
		useSSL:         cfg.S3UseSSL,
		logger:         logger.Named("S3Storage"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	s.logger.Debug("File stored in S3", zap.String("key", key))

	if s.publicEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.publicEndpoint, s.useSSL), s.bucket, key), nil
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", withScheme(s.endpoint, s.useSSL), s.bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func withScheme(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
