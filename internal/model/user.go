package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User はアプリケーション利用者を表します
type User struct {
	ID                int64          `gorm:"primaryKey;autoIncrement" json:"userId"`
	Username          string         `gorm:"size:50;not null;index" json:"username"`
	Email             string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password          string         `gorm:"size:255" json:"-"` // bcryptハッシュ。レスポンスには絶対に含めない
	UserAvatar        *string        `gorm:"size:255" json:"userAvatar"`
	UserProfile       *string        `gorm:"type:text" json:"userProfile"`
	StudyGoal         int            `gorm:"default:20" json:"studyGoal"` // 1日の新出単語目標数
	Role              string         `gorm:"size:20;default:user" json:"role"`
	IsBan             bool           `gorm:"default:false" json:"isBan"`
	CurrentWordListID *int64         `json:"currentWordListId"`
	CreatedAt         time.Time      `json:"createTime"`
	UpdatedAt         time.Time      `json:"updateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "user"
}

// IsAdmin は管理者権限を持つかを返します
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// プロフィール更新リクエストDTO（更新可能フィールドのみ）
type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	UserProfile *string `json:"userProfile,omitempty" validate:"omitempty,max=500"`
	StudyGoal   *int    `json:"studyGoal,omitempty" validate:"omitempty,min=1,max=100"`
}

type UpdateStudyGoalRequest struct {
	StudyGoal int `json:"studyGoal" validate:"required,min=1,max=100"`
}

// UserStatsResponse は学習統計のレスポンスDTO。
// learned/list 系は user_wordlist の集計値。日次系はセッション完了時の更新に基づく。
type UserStatsResponse struct {
	UserID       int64   `json:"userId"`
	TotalWords   int64   `json:"totalWords"`   // 参加中の全词单の単語総数
	LearnedWords int64   `json:"learnedWords"` // 学習済み単語数の合計
	ListCount    int64   `json:"listCount"`    // 参加中の词单数
	StudyGoal    int     `json:"studyGoal"`
	Progress     float64 `json:"progress"` // 全体進捗（0.0-1.0）
}
