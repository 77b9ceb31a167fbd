package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voca-app-backend/internal/config"

	"github.com/google/uuid"
)

// AvatarStore はアバター画像の保存先を抽象化します。
// Save は公開URLを返す。Remove は以前のURLを受け取って対応するオブジェクトを消す。
type AvatarStore interface {
	Save(ctx context.Context, userID int64, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, publicURL string) error
	MaxSize() int64
}

// NewAvatarStore は設定に応じてローカル保存かMinIO保存を返します
func NewAvatarStore(ctx context.Context, cfg *config.Config) (AvatarStore, error) {
	switch cfg.Storage.Driver {
	case "minio":
		return NewMinioAvatarStore(ctx, cfg)
	default:
		return NewLocalAvatarStore(cfg)
	}
}

// --- ローカルファイルシステム実装 ---

type LocalAvatarStore struct {
	uploadDir string
	publicURL string
}

func NewLocalAvatarStore(cfg *config.Config) (*LocalAvatarStore, error) {
	dir := filepath.Join(cfg.Storage.UploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalAvatarStore{
		uploadDir: dir,
		publicURL: strings.TrimRight(cfg.Storage.PublicURL, "/"),
	}, nil
}

func (s *LocalAvatarStore) Save(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	filename := fmt.Sprintf("%d_%s%s", userID, uuid.New().String(), ExtensionFor(contentType))
	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	return s.publicURL + "/uploads/avatars/" + filename, nil
}

func (s *LocalAvatarStore) Remove(ctx context.Context, publicURL string) error {
	idx := strings.LastIndex(publicURL, "/uploads/avatars/")
	if idx < 0 {
		return nil
	}
	filename := filepath.Base(publicURL[idx:])
	path := filepath.Join(s.uploadDir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalAvatarStore) MaxSize() int64 {
	return config.MaxAvatarSizeLocal
}
