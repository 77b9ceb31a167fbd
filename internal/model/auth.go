package model

type ContextKey string

const (
	// AuthUserKey はリクエストコンテキストに認証済みユーザーを格納するキー
	AuthUserKey ContextKey = "authUser"
)

// AuthUser は認証ミドルウェアがコンテキストに載せるリクエスト主体
type AuthUser struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest は新規登録APIのリクエストボディ (DTO)
type RegisterRequest struct {
	Username        string `json:"username" validate:"omitempty,min=1,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Code            string `json:"code" validate:"required,len=6,numeric"`
}

// LoginRequest のEmail欄はメールアドレスまたはユーザー名を受け付ける
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// AuthResponse は登録・ログイン成功時のレスポンス
type AuthResponse struct {
	UserID            int64   `json:"userId"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	UserAvatar        *string `json:"userAvatar"`
	UserProfile       *string `json:"userProfile,omitempty"`
	StudyGoal         int     `json:"studyGoal"`
	Role              string  `json:"role"`
	CurrentWordListID *int64  `json:"currentWordListId,omitempty"`
	Token             string  `json:"token"`
	RefreshToken      string  `json:"refreshToken"`
}

type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// SendCodeResponse の VerificationCode は非production環境のみ設定される
type SendCodeResponse struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode,omitempty"`
}
