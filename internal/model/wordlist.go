// internal/model/wordlist.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// 词单一覧の type クエリパラメータ
const (
	WordListTypeAll    = "all"
	WordListTypeSystem = "system"
	WordListTypeCustom = "custom"
)

// WordList は単語帳（词单）を表します。
// システム内蔵（seed投入・CreatorIDなし）とユーザー作成のカスタム词单の2種類がある。
type WordList struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"wordListId"`
	Name        string         `gorm:"column:word_list_name;size:100;not null" json:"wordListName"`
	Category    string         `gorm:"size:50" json:"category"` // cet4, toefl など
	Description string         `gorm:"type:text" json:"description"`
	IsSystem    bool           `gorm:"default:false;index" json:"isSystem"`
	CreatorID   *int64         `gorm:"index" json:"creatorId"`
	WordCount   int64          `gorm:"default:0" json:"wordCount"` // 非正規化。関連変更のたびに再計算して保存する
	CreatedAt   time.Time      `json:"createTime"`
	UpdatedAt   time.Time      `json:"updateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WordList) TableName() string {
	return "wordlist"
}

// OwnedBy はこの词单が指定ユーザーの編集対象かを返します。
// システム词单はだれのものでもない。
func (wl *WordList) OwnedBy(userID int64) bool {
	return !wl.IsSystem && wl.CreatorID != nil && *wl.CreatorID == userID
}

// WordListWord は词单と単語の多対多関連。(wordListId, wordId) で一意。
type WordListWord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	WordListID int64     `gorm:"not null;uniqueIndex:uk_wordlist_word"`
	WordID     int64     `gorm:"not null;uniqueIndex:uk_wordlist_word"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (WordListWord) TableName() string {
	return "word_list_word"
}

type CreateWordListRequest struct {
	Name        string `json:"wordListName" validate:"required,min=1,max=100"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Description string `json:"description" validate:"omitempty,max=500"`
	// 管理者のみ指定可。一般ユーザーが true を送っても無視される
	IsSystem bool `json:"isSystem"`
}

type UpdateWordListRequest struct {
	Name        *string `json:"wordListName,omitempty" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type AddWordsRequest struct {
	WordIDs []int64 `json:"wordIds" validate:"required,min=1,dive,gt=0"`
}

type AddUserWordListRequest struct {
	WordListID int64 `json:"wordListId" validate:"required,gt=0"`
}

// WordListQuery は一覧取得の検索条件（クエリ文字列から組み立てる）
type WordListQuery struct {
	Page   int
	Limit  int
	Type   string // all / system / custom
	Search string
}

// WordListResponse は一覧・詳細共通のレスポンス。
// Joined はリクエストユーザーが既に追加済みかどうか（未認証時は常に false）。
// WordCount は word_list_word の実数をグループ集計したもの。
type WordListResponse struct {
	WordListID  int64     `json:"wordListId"`
	Name        string    `json:"wordListName"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	WordCount   int64     `json:"wordCount"`
	IsSystem    bool      `json:"isSystem"`
	CreatorID   *int64    `json:"creatorId"`
	Joined      bool      `json:"joined"`
	CreatedAt   time.Time `json:"createTime"`
	UpdatedAt   time.Time `json:"updateTime"`
}

type WordListPageResponse struct {
	WordLists  []*WordListResponse `json:"wordLists"`
	Pagination Pagination          `json:"pagination"`
}

// WordListWordsResponse は词单内の単語一覧
type WordListWordsResponse struct {
	WordListID int64           `json:"wordListId"`
	Name       string          `json:"wordListName"`
	Words      []*WordResponse `json:"words"`
	Pagination Pagination      `json:"pagination"`
}

type AddWordsResponse struct {
	AddedCount int64 `json:"addedCount"`
	WordCount  int64 `json:"wordCount"`
}

type RemoveWordResponse struct {
	WordCount int64 `json:"wordCount"`
}
