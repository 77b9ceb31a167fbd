package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository"
	"voca-app-backend/internal/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService は登録・ログイン・トークン更新・パスワード再設定を担います
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	RefreshToken(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenPairResponse, error)
	SendVerificationCode(ctx context.Context, req *model.SendCodeRequest) (*model.SendCodeResponse, error)
	ResetPassword(ctx context.Context, req *model.ForgotPasswordRequest) error
	Logout(ctx context.Context, userID int64) error
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	kvStore  repository.KVStore
	tokenMgr *token.Manager
	mailer   Mailer
	cfg      *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, kvStore repository.KVStore, tokenMgr *token.Manager, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		kvStore:  kvStore,
		tokenMgr: tokenMgr,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// verifyCodeKey は検証コードのKVキー。再送信時は同一キーを上書きする
func verifyCodeKey(email string) string {
	return "verify_code:" + email
}

// Register は検証コードを確認したうえで新しいユーザーを登録します
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	if req.Password != req.ConfirmPassword {
		return nil, model.NewAppError("PASSWORD_MISMATCH", "密码和确认密码不匹配", "confirmPassword", model.ErrBusiness)
	}

	// 検証コードの照合。結果にかかわらず一度使ったコードは消費する
	if err := s.consumeVerificationCode(ctx, req.Email, req.Code); err != nil {
		return nil, err
	}

	var newUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Emailでの重複チェック
		_, err := s.userRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "该邮箱已被注册", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}

		// ユーザー名未指定の場合はメールのローカル部を使う
		username := req.Username
		if username == "" {
			username = req.Email[:strings.Index(req.Email, "@")]
		}

		// パスワードのハッシュ化
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "密码处理失败", "", err)
		}

		user := &model.User{
			Username:  username,
			Email:     req.Email,
			Password:  string(hashedPassword),
			StudyGoal: 20,
			Role:      model.RoleUser,
		}

		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			// レースコンディションでユニーク制約に当たった場合
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)", "email", req.Email)
				return model.NewAppError("DUPLICATE_EMAIL", "该邮箱已被注册", "email", model.ErrConflict)
			}
			logger.Error("Failed to create user in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "用户创建失败", "", err)
		}
		newUser = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.buildAuthResponse(ctx, newUser)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", newUser.ID, "email", newUser.Email)
	return resp, nil
}

// Login はメールアドレスまたはユーザー名とパスワードで認証します。
// アカウント列挙を防ぐため、未登録とパスワード誤りは同じメッセージで返す。
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByEmailOrUsername(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", "用户不存在或密码错误", "", model.ErrUnauthenticated)
		}
		logger.Error("Login failed: db error on FindByEmailOrUsername", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.ID)
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "用户不存在或密码错误", "", model.ErrUnauthenticated)
	}

	if user.IsBan {
		logger.Warn("Login failed: account banned", "user_id", user.ID)
		return nil, model.NewAppError("ACCOUNT_BANNED", "账户已被禁用", "", model.ErrUnauthenticated)
	}

	resp, err := s.buildAuthResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("Login successful", "user_id", user.ID)
	return resp, nil
}

// RefreshToken はリフレッシュトークンを検証し、新しいトークンペアを発行します
func (s *authService) RefreshToken(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenPairResponse, error) {
	logger := middleware.GetLogger(ctx)

	claims, err := s.tokenMgr.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		logger.Warn("Refresh failed: invalid refresh token", "error", err)
		return nil, err
	}

	// 失効・BANされたユーザーには発行しない
	user, err := s.userRepo.FindByID(ctx, s.db, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("TOKEN_INVALID", "Token 无效", "", model.ErrUnauthenticated)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	if user.IsBan {
		return nil, model.NewAppError("ACCOUNT_BANNED", "账户已被禁用", "", model.ErrUnauthenticated)
	}

	accessToken, err := s.tokenMgr.IssueAccessToken(user)
	if err != nil {
		logger.Error("Failed to issue access token", "error", err, "user_id", user.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Token 生成失败", "", err)
	}
	refreshToken, err := s.tokenMgr.IssueRefreshToken(user.ID)
	if err != nil {
		logger.Error("Failed to issue refresh token", "error", err, "user_id", user.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Token 生成失败", "", err)
	}

	logger.Info("Token refreshed", "user_id", user.ID)
	return &model.TokenPairResponse{Token: accessToken, RefreshToken: refreshToken}, nil
}

// SendVerificationCode は6桁の検証コードを生成・保存し、メールで送信します。
// 非production環境ではレスポンスにコードをそのまま載せる。
func (s *authService) SendVerificationCode(ctx context.Context, req *model.SendCodeRequest) (*model.SendCodeResponse, error) {
	logger := middleware.GetLogger(ctx)

	code, err := generateNumericCode(config.VerificationCodeLength)
	if err != nil {
		logger.Error("Failed to generate verification code", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "验证码生成失败", "", err)
	}

	if err := s.kvStore.Set(ctx, verifyCodeKey(req.Email), code, config.VerificationCodeTTL); err != nil {
		logger.Error("Failed to store verification code", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "验证码保存失败", "", err)
	}

	subject := "【Voca】邮箱验证码"
	body := fmt.Sprintf("您的验证码是：%s\n\n验证码10分钟内有效，请勿泄露给他人。", code)
	if err := s.mailer.Send(ctx, req.Email, subject, body); err != nil {
		return nil, model.NewAppError("EMAIL_SEND_FAILED", "验证码发送失败，请稍后重试", "", err)
	}

	resp := &model.SendCodeResponse{Email: req.Email}
	if !s.cfg.IsProduction() {
		resp.VerificationCode = code
	}

	logger.Info("Verification code sent", "email", req.Email)
	return resp, nil
}

// ResetPassword は検証コードを確認してパスワードを再設定します
func (s *authService) ResetPassword(ctx context.Context, req *model.ForgotPasswordRequest) error {
	logger := middleware.GetLogger(ctx)

	if err := s.consumeVerificationCode(ctx, req.Email, req.Code); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByEmail(ctx, tx, req.Email)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "该邮箱未注册", "email", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "密码处理失败", "", err)
		}

		if err := s.userRepo.Update(ctx, tx, user.ID, map[string]interface{}{"password": string(hashedPassword)}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "密码更新失败", "", err)
		}

		logger.Info("Password reset successfully", "user_id", user.ID)
		return nil
	})
}

// Logout はステートレスJWTのためサーバー側では破棄処理を持ちません。
// 監査ログだけ残してクライアント側の破棄に任せる。
func (s *authService) Logout(ctx context.Context, userID int64) error {
	middleware.GetLogger(ctx).Info("User logged out", "user_id", userID)
	return nil
}

// --- ヘルパー関数 ---

// consumeVerificationCode はコードを照合し、結果にかかわらず消費します
func (s *authService) consumeVerificationCode(ctx context.Context, email, code string) error {
	logger := middleware.GetLogger(ctx)

	stored, err := s.kvStore.Get(ctx, verifyCodeKey(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Verification code not found or expired", "email", email)
			return model.NewAppError("INVALID_CODE", "验证码错误或已过期", "code", model.ErrBusiness)
		}
		logger.Error("Failed to load verification code", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	// 総当たりを防ぐため、照合に使ったコードは成否を問わず削除する
	_ = s.kvStore.Delete(ctx, verifyCodeKey(email))

	if stored != code {
		logger.Warn("Verification code mismatch", "email", email)
		return model.NewAppError("INVALID_CODE", "验证码错误或已过期", "code", model.ErrBusiness)
	}
	return nil
}

func (s *authService) buildAuthResponse(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	logger := middleware.GetLogger(ctx)

	accessToken, err := s.tokenMgr.IssueAccessToken(user)
	if err != nil {
		logger.Error("Failed to issue access token", "error", err, "user_id", user.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Token 生成失败", "", err)
	}
	refreshToken, err := s.tokenMgr.IssueRefreshToken(user.ID)
	if err != nil {
		logger.Error("Failed to issue refresh token", "error", err, "user_id", user.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Token 生成失败", "", err)
	}

	return &model.AuthResponse{
		UserID:            user.ID,
		Username:          user.Username,
		Email:             user.Email,
		UserAvatar:        user.UserAvatar,
		UserProfile:       user.UserProfile,
		StudyGoal:         user.StudyGoal,
		Role:              user.Role,
		CurrentWordListID: user.CurrentWordListID,
		Token:             accessToken,
		RefreshToken:      refreshToken,
	}, nil
}

// generateNumericCode は暗号学的乱数でn桁の数字列を生成します
func generateNumericCode(n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteString(digit.String())
	}
	return sb.String(), nil
}
