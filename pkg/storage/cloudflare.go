package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/sefazor/crowdfunding-backend/internal/config"
	"go.uber.org/zap"
)

type CloudflareStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewCloudflareStorage connects to the R2 receipt bucket. It returns a nil
// service when no bucket is configured.
func NewCloudflareStorage(cfg *internalConfig.Config, logger *zap.Logger) (StorageService, error) {
	if !cfg.R2.Enabled() {
		logger.Info("R2 receipt archive disabled")
		return nil, nil
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID))
	})

	return &CloudflareStorage{
		client: client,
		bucket: cfg.R2.Bucket,
		logger: logger.Named("r2"),
	}, nil
}

// Upload puts the object into the bucket. R2 needs the content length up front.
func (s *CloudflareStorage) Upload(ctx context.Context, key, contentType string, src io.Reader) error {
	buf, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read object %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(buf))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to R2: %w", key, err)
	}

	s.logger.Debug("object uploaded", zap.String("key", key), zap.Int("bytes", len(buf)))
	return nil
}
