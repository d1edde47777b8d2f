package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"movie-catalog/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// PresignedUpload is a short lived upload slot in object storage.
type PresignedUpload struct {
	UploadURL string    `json:"presigned_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ObjectStorage holds uploaded avatars and images.
type ObjectStorage interface {
	PresignUpload(ctx context.Context, filename string) (*PresignedUpload, error)
	// Owns reports whether url points into this storage.
	Owns(url string) bool
	Delete(ctx context.Context, url string) error
}

type MinIOService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	expiry    time.Duration
	logger    *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	service := &MinIOService{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: publicBase(cfg.PublicURL, endpoint, cfg.UseSSL),
		expiry:    expiry,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := service.ensureBucket(ctx, cfg.Region); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

// publicBase returns scheme://host of the public object URLs.
func publicBase(publicURL, endpoint string, useSSL bool) string {
	protocol := "http://"
	if useSSL || strings.HasPrefix(publicURL, "https://") {
		protocol = "https://"
	}

	host := strings.TrimPrefix(strings.TrimPrefix(publicURL, "https://"), "http://")
	if host == "" {
		host = endpoint
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	return protocol + host
}

func (s *MinIOService) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}

func (s *MinIOService) PresignUpload(ctx context.Context, filename string) (*PresignedUpload, error) {
	objectName := uniqueObjectName(filename)

	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, s.expiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectName": objectName,
		"expiry":     s.expiry,
	}).Info("Generated presigned URL")

	return &PresignedUpload{
		UploadURL: presigned.String(),
		PublicURL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName),
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}

func (s *MinIOService) Owns(url string) bool {
	return strings.HasPrefix(url, s.publicURL+"/"+s.bucket+"/")
}

func (s *MinIOService) Delete(ctx context.Context, url string) error {
	objectName := objectNameOf(url, s.bucket)

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		s.logger.WithError(err).WithField("objectName", objectName).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectName", objectName).Info("File deleted successfully from MinIO")
	return nil
}

// uniqueObjectName keeps the file's base name and extension and inserts a
// short random suffix.
func uniqueObjectName(filename string) string {
	filename = filepath.Base(filename)
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s_%s%s", name, uuid.New().String()[:8], ext)
}

func objectNameOf(url, bucket string) string {
	if idx := strings.Index(url, "?"); idx != -1 {
		url = url[:idx]
	}
	if idx := strings.Index(url, "/"+bucket+"/"); idx != -1 {
		return url[idx+len(bucket)+2:]
	}
	return url[strings.LastIndex(url, "/")+1:]
}
