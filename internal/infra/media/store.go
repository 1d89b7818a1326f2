package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var (
	ErrUnsupportedImage = httperr.Validation("unsupported_image", "Upload a JPEG, PNG or WebP image.")
	ErrTooLarge         = httperr.Validation("image_too_large", "Images must be 10 MB or smaller.")
	ErrStorageDisabled  = httperr.New(httperr.KindUnavailable, "storage_disabled", "Image storage is not configured.")
)

// Store persists an encoded image and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store works against AWS or any S3-compatible endpoint. A custom
// endpoint switches to path-style addressing.
func NewS3Store(o S3Options) *S3Store {
	opts := s3.Options{
		Region: o.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		),
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
		opts.UsePathStyle = true
	}

	base := strings.TrimRight(o.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.Bucket, o.Region)
	}

	return &S3Store{
		client:  s3.New(opts),
		bucket:  o.Bucket,
		baseURL: base,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

// Key builds an object key such as barbers/5/<uuid>.webp.
func Key(kind string, id uint) string {
	return fmt.Sprintf("%s/%d/%s.webp", kind, id, uuid.NewString())
}

// Disabled stands in when no bucket is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, []byte, string) (string, error) {
	return "", ErrStorageDisabled
}
