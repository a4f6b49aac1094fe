package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"futur-backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// designFolder holds uploaded back designs inside the bucket.
const designFolder = "designs"

var extensionByType = map[string]string{
	"image/webp": ".webp",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ObjectPutter is the subset of *s3.Client uploads need.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Storage stores processed back designs. Objects are named after the hash
// of their bytes, so uploading the same artwork twice yields the same URL and
// therefore the same jacket fingerprint in the cart.
type R2Storage struct {
	client        ObjectPutter
	bucket        string
	publicURL     string
	uploadTimeout time.Duration
}

// NewR2Client builds an S3 client pointed at a Cloudflare R2 account. It serves
// both design uploads and the s3 storage driver.
func NewR2Client(ctx context.Context, accountID, accessKey, secretKey string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
		o.UsePathStyle = true
	}), nil
}

func NewR2Storage(client ObjectPutter, bucket, publicURL string, uploadTimeout time.Duration) *R2Storage {
	return &R2Storage{
		client:        client,
		bucket:        bucket,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
		uploadTimeout: uploadTimeout,
	}
}

// DesignKey is the object key for an encoded design.
func DesignKey(data []byte, contentType string) string {
	sum := sha256.Sum256(data)
	ext, ok := extensionByType[contentType]
	if !ok {
		ext = ".bin"
	}
	return designFolder + "/" + hex.EncodeToString(sum[:16]) + ext
}

// UploadBuffer stores an encoded design and returns its public URL.
func (s *R2Storage) UploadBuffer(ctx context.Context, data []byte, contentType string) (string, error) {
	key := DesignKey(data, contentType)

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	start := time.Now()
	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	logger.StorageOp("r2", "put", key, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("upload design %s: %w", key, err)
	}

	return s.publicURL + "/" + key, nil
}
