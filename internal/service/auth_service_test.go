// internal/service/auth_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository/mocks"
	"voca-app-backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDBAuth() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "development"
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.RefreshSecretKey = "test-refresh-secret"
	cfg.JWT.AccessTokenTTL = time.Hour
	cfg.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	cfg.JWT.Issuer = "voca-app"
	cfg.JWT.Audience = "voca-users"
	return cfg
}

func newTestAuthService(db *gorm.DB, userRepo *mocks.UserRepository, kvStore *mocks.KVStore) AuthService {
	cfg := testAuthConfig()
	return NewAuthService(db, userRepo, kvStore, token.NewManager(cfg), &LogMailer{}, cfg)
}

// --- Test Register ---
func Test_authService_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAuth()

	tests := []struct {
		name      string
		req       *model.RegisterRequest
		setupMock func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore)
		wantErr   error
		wantResp  bool
	}{
		{
			name: "正常系: ユーザー登録成功",
			req: &model.RegisterRequest{
				Email:           "alice@example.com",
				Password:        "secret123",
				ConfirmPassword: "secret123",
				Code:            "123456",
			},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:alice@example.com").Return("123456", nil).Once()
				kvStore.On("Delete", ctx, "verify_code:alice@example.com").Return(nil).Once()
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "alice@example.com").
					Return(nil, model.ErrNotFound).Once()
				userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						user := args.Get(2).(*model.User)
						// ユーザー名未指定ならメールのローカル部が使われる
						assert.Equal(t, "alice", user.Username)
						assert.Equal(t, "alice@example.com", user.Email)
						assert.Equal(t, model.RoleUser, user.Role)
						assert.NotEqual(t, "secret123", user.Password) // ハッシュ化される
						user.ID = 1
					}).Return(nil).Once()
			},
			wantErr:  nil,
			wantResp: true,
		},
		{
			name: "異常系: パスワードと確認パスワードが不一致",
			req: &model.RegisterRequest{
				Email:           "alice@example.com",
				Password:        "secret123",
				ConfirmPassword: "secret999",
				Code:            "123456",
			},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				// KVストアもリポジトリも呼ばれないはず
			},
			wantErr:  model.ErrBusiness,
			wantResp: false,
		},
		{
			name: "異常系: 検証コードが不一致",
			req: &model.RegisterRequest{
				Email:           "alice@example.com",
				Password:        "secret123",
				ConfirmPassword: "secret123",
				Code:            "000000",
			},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:alice@example.com").Return("123456", nil).Once()
				// 照合に失敗してもコードは消費される
				kvStore.On("Delete", ctx, "verify_code:alice@example.com").Return(nil).Once()
			},
			wantErr:  model.ErrBusiness,
			wantResp: false,
		},
		{
			name: "異常系: 検証コードが存在しない（期限切れ）",
			req: &model.RegisterRequest{
				Email:           "alice@example.com",
				Password:        "secret123",
				ConfirmPassword: "secret123",
				Code:            "123456",
			},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:alice@example.com").Return("", model.ErrNotFound).Once()
			},
			wantErr:  model.ErrBusiness,
			wantResp: false,
		},
		{
			name: "異常系: メールアドレスが登録済み",
			req: &model.RegisterRequest{
				Email:           "alice@example.com",
				Password:        "secret123",
				ConfirmPassword: "secret123",
				Code:            "123456",
			},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:alice@example.com").Return("123456", nil).Once()
				kvStore.On("Delete", ctx, "verify_code:alice@example.com").Return(nil).Once()
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "alice@example.com").
					Return(&model.User{ID: 1, Email: "alice@example.com"}, nil).Once()
			},
			wantErr:  model.ErrConflict,
			wantResp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			mockKVStore := new(mocks.KVStore)
			tt.setupMock(mockUserRepo, mockKVStore)
			authService := newTestAuthService(db, mockUserRepo, mockKVStore)

			resp, err := authService.Register(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected error %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			if tt.wantResp {
				require.NotNil(t, resp)
				assert.Equal(t, int64(1), resp.UserID)
				assert.NotEmpty(t, resp.Token)
				assert.NotEmpty(t, resp.RefreshToken)
			} else {
				assert.Nil(t, resp)
			}
			mockUserRepo.AssertExpectations(t)
			mockKVStore.AssertExpectations(t)
		})
	}
}

// --- Test Login ---
func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAuth()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	activeUser := &model.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	bannedUser := &model.User{
		ID:       2,
		Username: "bob",
		Email:    "bob@example.com",
		Password: string(hashed),
		Role:     model.RoleUser,
		IsBan:    true,
	}

	tests := []struct {
		name        string
		req         *model.LoginRequest
		setupMock   func(userRepo *mocks.UserRepository)
		wantErr     error
		wantMessage string
		wantResp    bool
	}{
		{
			name: "正常系: ログイン成功",
			req:  &model.LoginRequest{Email: "alice@example.com", Password: "secret123"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmailOrUsername", ctx, mock.AnythingOfType("*gorm.DB"), "alice@example.com").
					Return(activeUser, nil).Once()
			},
			wantErr:  nil,
			wantResp: true,
		},
		{
			name: "異常系: ユーザーが存在しない",
			req:  &model.LoginRequest{Email: "nobody@example.com", Password: "secret123"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmailOrUsername", ctx, mock.AnythingOfType("*gorm.DB"), "nobody@example.com").
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr:     model.ErrUnauthenticated,
			wantMessage: "用户不存在或密码错误",
		},
		{
			name: "異常系: パスワード誤り",
			req:  &model.LoginRequest{Email: "alice@example.com", Password: "wrongpass"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmailOrUsername", ctx, mock.AnythingOfType("*gorm.DB"), "alice@example.com").
					Return(activeUser, nil).Once()
			},
			// アカウント列挙を防ぐため、未登録時とまったく同じメッセージを返す
			wantErr:     model.ErrUnauthenticated,
			wantMessage: "用户不存在或密码错误",
		},
		{
			name: "異常系: BANされたアカウント",
			req:  &model.LoginRequest{Email: "bob@example.com", Password: "secret123"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmailOrUsername", ctx, mock.AnythingOfType("*gorm.DB"), "bob@example.com").
					Return(bannedUser, nil).Once()
			},
			wantErr:     model.ErrUnauthenticated,
			wantMessage: "账户已被禁用",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			tt.setupMock(mockUserRepo)
			authService := newTestAuthService(db, mockUserRepo, new(mocks.KVStore))

			resp, err := authService.Login(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected error %v, got %v", tt.wantErr, err)
				var appErr *model.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantMessage, appErr.Message)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, activeUser.ID, resp.UserID)
				assert.NotEmpty(t, resp.Token)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

// --- Test SendVerificationCode ---
func Test_authService_SendVerificationCode(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAuth()

	t.Run("正常系: コード生成・保存・送信", func(t *testing.T) {
		mockKVStore := new(mocks.KVStore)
		var savedCode string
		mockKVStore.On("Set", ctx, "verify_code:alice@example.com", mock.AnythingOfType("string"), config.VerificationCodeTTL).
			Run(func(args mock.Arguments) {
				savedCode = args.Get(2).(string)
			}).Return(nil).Once()

		authService := newTestAuthService(db, new(mocks.UserRepository), mockKVStore)

		resp, err := authService.SendVerificationCode(ctx, &model.SendCodeRequest{Email: "alice@example.com"})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.Len(t, savedCode, config.VerificationCodeLength)
		// 開発環境ではレスポンスにコードが含まれる
		assert.Equal(t, savedCode, resp.VerificationCode)
		mockKVStore.AssertExpectations(t)
	})

	t.Run("正常系: 本番環境ではコードを返さない", func(t *testing.T) {
		mockKVStore := new(mocks.KVStore)
		mockKVStore.On("Set", ctx, "verify_code:alice@example.com", mock.AnythingOfType("string"), config.VerificationCodeTTL).
			Return(nil).Once()

		cfg := testAuthConfig()
		cfg.App.Env = "production"
		authService := NewAuthService(db, new(mocks.UserRepository), mockKVStore, token.NewManager(cfg), &LogMailer{}, cfg)

		resp, err := authService.SendVerificationCode(ctx, &model.SendCodeRequest{Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Empty(t, resp.VerificationCode)
		mockKVStore.AssertExpectations(t)
	})

	t.Run("異常系: KVストアへの保存失敗", func(t *testing.T) {
		mockKVStore := new(mocks.KVStore)
		mockKVStore.On("Set", ctx, "verify_code:alice@example.com", mock.AnythingOfType("string"), config.VerificationCodeTTL).
			Return(errors.New("kv down")).Once()

		authService := newTestAuthService(db, new(mocks.UserRepository), mockKVStore)

		resp, err := authService.SendVerificationCode(ctx, &model.SendCodeRequest{Email: "alice@example.com"})
		require.Error(t, err)
		assert.Nil(t, resp)
		mockKVStore.AssertExpectations(t)
	})
}

// --- Test ResetPassword ---
func Test_authService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAuth()

	tests := []struct {
		name      string
		req       *model.ForgotPasswordRequest
		setupMock func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore)
		wantErr   error
	}{
		{
			name: "正常系: パスワード再設定成功",
			req:  &model.ForgotPasswordRequest{Email: "alice@example.com", Code: "123456", NewPassword: "newsecret"},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:alice@example.com").Return("123456", nil).Once()
				kvStore.On("Delete", ctx, "verify_code:alice@example.com").Return(nil).Once()
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "alice@example.com").
					Return(&model.User{ID: 1, Email: "alice@example.com"}, nil).Once()
				userRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), int64(1), mock.MatchedBy(func(updates map[string]interface{}) bool {
					hash, ok := updates["password"].(string)
					return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")) == nil
				})).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: 未登録のメールアドレス",
			req:  &model.ForgotPasswordRequest{Email: "nobody@example.com", Code: "123456", NewPassword: "newsecret"},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:nobody@example.com").Return("123456", nil).Once()
				kvStore.On("Delete", ctx, "verify_code:nobody@example.com").Return(nil).Once()
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "nobody@example.com").
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: 検証コードが不一致",
			req:  &model.ForgotPasswordRequest{Email: "alice@example.com", Code: "999999", NewPassword: "newsecret"},
			setupMock: func(userRepo *mocks.UserRepository, kvStore *mocks.KVStore) {
				kvStore.On("Get", ctx, "verify_code:alice@example.com").Return("123456", nil).Once()
				kvStore.On("Delete", ctx, "verify_code:alice@example.com").Return(nil).Once()
			},
			wantErr: model.ErrBusiness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			mockKVStore := new(mocks.KVStore)
			tt.setupMock(mockUserRepo, mockKVStore)
			authService := newTestAuthService(db, mockUserRepo, mockKVStore)

			err := authService.ResetPassword(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected error %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			mockUserRepo.AssertExpectations(t)
			mockKVStore.AssertExpectations(t)
		})
	}
}
