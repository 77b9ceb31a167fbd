// internal/model/user_wordlist.go
package model

import "time"

// UserWordList は「ユーザーがこの词单を学習対象に追加した」ことを表す関連。
// (userId, wordListId) で一意。ユーザーごとの進捗をこの行が持つ。
type UserWordList struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID        int64      `gorm:"not null;uniqueIndex:uk_user_wordlist" json:"userId"`
	WordListID    int64      `gorm:"not null;uniqueIndex:uk_user_wordlist" json:"wordListId"`
	Progress      int        `gorm:"default:0" json:"progress"` // パーセント 0-100
	LearnedCount  int        `gorm:"default:0" json:"learnedCount"`
	IsCurrent     bool       `gorm:"default:false" json:"isCurrent"`
	StartTime     *time.Time `json:"startTime"`
	LastStudyTime *time.Time `json:"lastStudyTime"`
	CreatedAt     time.Time  `json:"createTime"`
	UpdatedAt     time.Time  `json:"updateTime"`

	// Preload用
	WordList *WordList `gorm:"foreignKey:WordListID;references:ID" json:"-"`
}

func (UserWordList) TableName() string {
	return "user_wordlist"
}

// MyWordListResponse は「マイ词单」一覧の1件分。词单情報に個人進捗を重ねたもの。
type MyWordListResponse struct {
	WordListID    int64      `json:"wordListId"`
	Name          string     `json:"wordListName"`
	Category      string     `json:"category"`
	Description   string     `json:"description"`
	WordCount     int64      `json:"wordCount"`
	IsSystem      bool       `json:"isSystem"`
	Progress      int        `json:"progress"`
	LearnedCount  int        `json:"learnedCount"`
	IsCurrent     bool       `json:"isCurrent"`
	StartTime     *time.Time `json:"startTime"`
	LastStudyTime *time.Time `json:"lastStudyTime"`
}

type MyWordListPageResponse struct {
	WordLists  []*MyWordListResponse `json:"wordLists"`
	Pagination Pagination            `json:"pagination"`
}
