// internal/service/user_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDBUser() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

func strPtr(s string) *string { return &s }

// fakeAvatarStore は保存・削除の呼び出しを記録するテスト用実装
type fakeAvatarStore struct {
	saveErr error
	saved   []string
	removed []string
	maxSize int64
}

func (f *fakeAvatarStore) Save(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	url := fmt.Sprintf("http://localhost:8080/uploads/avatars/%d_new.png", userID)
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeAvatarStore) Remove(ctx context.Context, publicURL string) error {
	f.removed = append(f.removed, publicURL)
	return nil
}

func (f *fakeAvatarStore) MaxSize() int64 {
	if f.maxSize > 0 {
		return f.maxSize
	}
	return 2 << 20
}

// 各形式のマジックバイトを持つ最小データ
var (
	pngData  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	jpegData = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01}
)

// --- Test UpdateProfile ---
func Test_userService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBUser()

	existing := &model.User{ID: 1, Username: "alice", Email: "alice@example.com", StudyGoal: 20}

	tests := []struct {
		name      string
		req       *model.UpdateProfileRequest
		setupMock func(userRepo *mocks.UserRepository)
		wantErr   error
	}{
		{
			name: "正常系: ユーザー名を変更",
			req:  &model.UpdateProfileRequest{Username: strPtr("alice2")},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
					Return(existing, nil).Once()
				userRepo.On("UsernameExists", ctx, mock.AnythingOfType("*gorm.DB"), "alice2", int64(1)).
					Return(false, nil).Once()
				userRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), int64(1),
					map[string]interface{}{"username": "alice2"}).
					Return(nil).Once()
				userRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
					Return(&model.User{ID: 1, Username: "alice2", Email: "alice@example.com"}, nil).Once()
			},
		},
		{
			name: "異常系: ユーザー名が使用中",
			req:  &model.UpdateProfileRequest{Username: strPtr("taken")},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
					Return(existing, nil).Once()
				userRepo.On("UsernameExists", ctx, mock.AnythingOfType("*gorm.DB"), "taken", int64(1)).
					Return(true, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "異常系: ユーザーが存在しない",
			req:  &model.UpdateProfileRequest{Username: strPtr("ghost")},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			tt.setupMock(mockUserRepo)
			svc := NewUserService(db, mockUserRepo, new(mocks.UserWordListRepository), &fakeAvatarStore{})

			updated, err := svc.UpdateProfile(ctx, 1, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected error %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, updated)
				assert.Equal(t, "alice2", updated.Username)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

// --- Test GetStats ---
func Test_userService_GetStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBUser()

	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
		Return(&model.User{ID: 1, StudyGoal: 30}, nil).Once()
	mockUserListRepo := new(mocks.UserWordListRepository)
	mockUserListRepo.On("CountByUser", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
		Return(int64(2), nil).Once()
	mockUserListRepo.On("SumLearnedByUser", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
		Return(int64(50), nil).Once()
	mockUserListRepo.On("SumTotalWordsByUser", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
		Return(int64(200), nil).Once()

	svc := NewUserService(db, mockUserRepo, mockUserListRepo, &fakeAvatarStore{})
	stats, err := svc.GetStats(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(200), stats.TotalWords)
	assert.Equal(t, int64(50), stats.LearnedWords)
	assert.Equal(t, int64(2), stats.ListCount)
	assert.Equal(t, 30, stats.StudyGoal)
	assert.InDelta(t, 0.25, stats.Progress, 0.001)
	mockUserRepo.AssertExpectations(t)
	mockUserListRepo.AssertExpectations(t)
}

// --- Test UploadAvatar ---
func Test_userService_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBUser()

	oldAvatar := "http://localhost:8080/uploads/avatars/1_old.png"

	t.Run("正常系: アップロード成功と旧アバターの後始末", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(&model.User{ID: 1, UserAvatar: &oldAvatar}, nil).Once()
		mockUserRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), int64(1),
			mock.MatchedBy(func(updates map[string]interface{}) bool {
				url, ok := updates["user_avatar"].(string)
				return ok && url != ""
			})).Return(nil).Once()

		store := &fakeAvatarStore{}
		svc := NewUserService(db, mockUserRepo, new(mocks.UserWordListRepository), store)

		url, err := svc.UploadAvatar(ctx, 1, pngData, "image/png")
		require.NoError(t, err)
		assert.NotEmpty(t, url)
		assert.Len(t, store.saved, 1)
		// 旧アバターが削除されている
		assert.Equal(t, []string{oldAvatar}, store.removed)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("異常系: 宣言されたContent-Typeと実データの形式が不一致", func(t *testing.T) {
		store := &fakeAvatarStore{}
		svc := NewUserService(db, new(mocks.UserRepository), new(mocks.UserWordListRepository), store)

		// JPEGの実データをimage/pngと偽って送る
		url, err := svc.UploadAvatar(ctx, 1, jpegData, "image/png")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
		assert.Empty(t, url)
		assert.Empty(t, store.saved)
	})

	t.Run("異常系: 対応していない形式", func(t *testing.T) {
		svc := NewUserService(db, new(mocks.UserRepository), new(mocks.UserWordListRepository), &fakeAvatarStore{})

		_, err := svc.UploadAvatar(ctx, 1, []byte("%PDF-1.7 not an image"), "image/png")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: サイズ超過", func(t *testing.T) {
		svc := NewUserService(db, new(mocks.UserRepository), new(mocks.UserWordListRepository), &fakeAvatarStore{maxSize: 4})

		_, err := svc.UploadAvatar(ctx, 1, pngData, "image/png")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})

	t.Run("異常系: DB更新失敗時は保存済みオブジェクトを回収する", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(&model.User{ID: 1}, nil).Once()
		mockUserRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), int64(1), mock.Anything).
			Return(errors.New("db down")).Once()

		store := &fakeAvatarStore{}
		svc := NewUserService(db, mockUserRepo, new(mocks.UserWordListRepository), store)

		_, err := svc.UploadAvatar(ctx, 1, pngData, "image/png")
		require.Error(t, err)
		require.Len(t, store.saved, 1)
		assert.Equal(t, store.saved, store.removed) // 孤児オブジェクトの回収
		mockUserRepo.AssertExpectations(t)
	})
}

// --- Test DeleteAvatar ---
func Test_userService_DeleteAvatar(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBUser()

	t.Run("異常系: アバター未設定", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(&model.User{ID: 1}, nil).Once()

		svc := NewUserService(db, mockUserRepo, new(mocks.UserWordListRepository), &fakeAvatarStore{})
		err := svc.DeleteAvatar(ctx, 1)

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrBusiness))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("正常系: アバター削除", func(t *testing.T) {
		avatar := "http://localhost:8080/uploads/avatars/1_a.png"
		mockUserRepo := new(mocks.UserRepository)
		mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(&model.User{ID: 1, UserAvatar: &avatar}, nil).Once()
		mockUserRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), int64(1),
			map[string]interface{}{"user_avatar": nil}).
			Return(nil).Once()

		store := &fakeAvatarStore{}
		svc := NewUserService(db, mockUserRepo, new(mocks.UserWordListRepository), store)
		err := svc.DeleteAvatar(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, []string{avatar}, store.removed)
		mockUserRepo.AssertExpectations(t)
	})
}
