package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage uploads report images to Amazon S3 (or compatible APIs).
type S3Storage struct {
	uploader *manager.Uploader
	bucket   string
	urlBase  string
}

// NewS3Storage builds an uploader from the default AWS credential chain.
// An endpoint override supports S3-compatible stores like MinIO.
func NewS3Storage(ctx context.Context, bucket, region, endpoint string) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	urlBase := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	if endpoint != "" {
		urlBase = fmt.Sprintf("%s/%s", endpoint, bucket)
	}

	return &S3Storage{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		urlBase:  urlBase,
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ValidateContentType(contentType); err != nil {
		return "", err
	}
	name, err := objectName(filename)
	if err != nil {
		return "", err
	}
	key := "uploads/" + name

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return s.urlBase + "/" + key, nil
}
