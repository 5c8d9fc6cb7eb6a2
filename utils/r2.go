// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxImageBytes caps icon and gym photo uploads.
const MaxImageBytes = 5 * 1024 * 1024

var ErrUploadsDisabled = errors.New("image uploads are not configured")

var allowedImageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true}

// ImageStore puts user icons and gym photos into an R2 bucket.
type ImageStore struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

// NewImageStoreFromEnv builds an ImageStore from the R2 environment keys.
// It returns ErrUploadsDisabled when they are not set.
func NewImageStoreFromEnv(ctx context.Context) (*ImageStore, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	bucket := os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || accessKeyID == "" || accessKeySecret == "" || bucket == "" {
		return nil, ErrUploadsDisabled
	}
	cdnBaseURL := os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com/%s", accountID, bucket)
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
	})
	return &ImageStore{client: client, bucket: bucket, cdnBaseURL: strings.TrimRight(cdnBaseURL, "/")}, nil
}

// ImageKey returns the object key for an upload under prefix ("icons", "gyms").
func ImageKey(prefix, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	return prefix + "/" + uuid.NewString() + ext, nil
}

// UploadImage stores the file under prefix and returns its public URL.
func (s *ImageStore) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, prefix string) (string, error) {
	if s == nil {
		return "", ErrUploadsDisabled
	}
	if fileHeader.Size > MaxImageBytes {
		return "", fmt.Errorf("image too large (max %d bytes)", MaxImageBytes)
	}
	key, err := ImageKey(prefix, fileHeader.Filename)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.cdnBaseURL, key), nil
}
