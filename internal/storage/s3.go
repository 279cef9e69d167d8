package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/strollapp/stroll-backend/internal/config"
)

// ErrStorageUnavailable signals that presigned URL issuance failed. Callers
// treat it as retryable and must not write any record that depends on the URL.
var ErrStorageUnavailable = errors.New("object storage unavailable")

// Upload is a short-lived capability to PUT one object.
type Upload struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

// Presigner issues time-limited upload/download URLs for private objects.
// Only the opaque key is ever persisted; permanent public URLs do not exist.
type Presigner interface {
	PresignUpload(ctx context.Context, contentType string, ttl time.Duration) (*Upload, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// S3Presigner issues presigned PUT/GET URLs against a private S3 bucket.
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

func NewS3Presigner(ctx context.Context, cfg *config.Config) (*S3Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		now:     time.Now,
	}, nil
}

// PresignUpload generates a fresh object key and a presigned PUT URL for it.
// No ACL is attached, so the uploaded object stays private.
func (p *S3Presigner) PresignUpload(ctx context.Context, contentType string, ttl time.Duration) (*Upload, error) {
	now := p.now()
	key := objectKey(contentType, now)

	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		slog.Error("presigned PUT URL generation failed", "error", err)
		return nil, ErrStorageUnavailable
	}

	return &Upload{URL: req.URL, Key: key, ExpiresAt: now.Add(ttl)}, nil
}

// PresignDownload returns a time-limited GET URL for a stored key.
func (p *S3Presigner) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", nil
	}

	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		slog.Error("presigned GET URL generation failed", "error", err)
		return "", ErrStorageUnavailable
	}

	return req.URL, nil
}

// objectKey builds a namespaced key like "walks/1733000000_a1b2c3....jpg".
func objectKey(contentType string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("walks/%d_%s.%s", now.Unix(), random, extensionFor(contentType))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
