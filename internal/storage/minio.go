package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"voca-app-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioAvatarStore はMinIO（S3互換）にアバターを保存する実装です
type MinioAvatarStore struct {
	client *minio.Client
	bucket string
	folder string
	useSSL bool
}

func NewMinioAvatarStore(ctx context.Context, cfg *config.Config) (*MinioAvatarStore, error) {
	mc := cfg.Storage.Minio
	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, mc.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, mc.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		// アバターはURL直アクセスさせるため読み取り公開にする
		policy := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/%s/*"]
    }
  ]
}`, mc.Bucket, mc.AvatarFolder)
		if err := client.SetBucketPolicy(ctx, mc.Bucket, policy); err != nil {
			return nil, fmt.Errorf("minio set bucket policy: %w", err)
		}
	}

	return &MinioAvatarStore{
		client: client,
		bucket: mc.Bucket,
		folder: mc.AvatarFolder,
		useSSL: mc.UseSSL,
	}, nil
}

func (s *MinioAvatarStore) Save(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%d_%s%s", s.folder, userID, uuid.New().String(), ExtensionFor(contentType))
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio put object: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key), nil
}

func (s *MinioAvatarStore) Remove(ctx context.Context, publicURL string) error {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return nil
	}
	key := publicURL[idx+len(marker):]
	if key == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioAvatarStore) MaxSize() int64 {
	return config.MaxAvatarSizeMinio
}
