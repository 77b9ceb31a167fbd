// internal/model/word.go
package model

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Word は語彙エントリを表します。所有者は持たず、全词单から共有される。
type Word struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"wordId"`
	Word            string         `gorm:"size:100;uniqueIndex;not null" json:"word"` // 単語の綴り
	Phonetic        string         `gorm:"size:100" json:"phonetic"`
	Definition      string         `gorm:"type:text;not null" json:"definition"`
	ExampleSentence string         `gorm:"type:text" json:"exampleSentence"`
	Affixes         string         `gorm:"type:text" json:"affixes"` // JSON配列または旧形式の「/」区切り文字列
	AudioURL        string         `gorm:"size:255" json:"audioUrl"`
	Difficulty      int            `gorm:"default:1" json:"difficulty"` // 1-5
	CreatedAt       time.Time      `json:"createTime"`
	UpdatedAt       time.Time      `json:"updateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Word) TableName() string {
	return "word"
}

// AffixList は affixes 列を正規化して返します。
// JSON配列として保存された新形式と「/」区切りの旧形式の両方を受け付ける。
func (w *Word) AffixList() []string {
	if w.Affixes == "" {
		return nil
	}
	var parts []string
	if err := json.Unmarshal([]byte(w.Affixes), &parts); err == nil {
		return parts
	}
	raw := strings.Split(w.Affixes, "/")
	parts = parts[:0]
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// 単語作成リクエストDTO
type CreateWordRequest struct {
	Word            string   `json:"word" validate:"required,min=1,max=100"`
	Phonetic        string   `json:"phonetic" validate:"omitempty,max=100"`
	Definition      string   `json:"definition" validate:"required"`
	ExampleSentence string   `json:"exampleSentence" validate:"omitempty"`
	Affixes         []string `json:"affixes" validate:"omitempty,dive,min=1"`
	AudioURL        string   `json:"audioUrl" validate:"omitempty,url,max=255"`
	Difficulty      int      `json:"difficulty" validate:"omitempty,min=1,max=5"`
}

// 単語更新（部分）リクエストDTO
type UpdateWordRequest struct {
	Phonetic        *string   `json:"phonetic,omitempty" validate:"omitempty,max=100"`
	Definition      *string   `json:"definition,omitempty" validate:"omitempty,min=1"`
	ExampleSentence *string   `json:"exampleSentence,omitempty"`
	Affixes         *[]string `json:"affixes,omitempty" validate:"omitempty,dive,min=1"`
	AudioURL        *string   `json:"audioUrl,omitempty" validate:"omitempty,url,max=255"`
	Difficulty      *int      `json:"difficulty,omitempty" validate:"omitempty,min=1,max=5"`
}

// WordResponse は词单内の単語一覧などで返す形
type WordResponse struct {
	WordID          int64    `json:"wordId"`
	Word            string   `json:"word"`
	Phonetic        string   `json:"phonetic"`
	Definition      string   `json:"definition"`
	ExampleSentence string   `json:"exampleSentence"`
	Affixes         []string `json:"affixes,omitempty"`
	AudioURL        string   `json:"audioUrl,omitempty"`
	Difficulty      int      `json:"difficulty"`
}

// NewWordResponse はエンティティからレスポンスDTOを組み立てます
func NewWordResponse(w *Word) *WordResponse {
	return &WordResponse{
		WordID:          w.ID,
		Word:            w.Word,
		Phonetic:        w.Phonetic,
		Definition:      w.Definition,
		ExampleSentence: w.ExampleSentence,
		Affixes:         w.AffixList(),
		AudioURL:        w.AudioURL,
		Difficulty:      w.Difficulty,
	}
}
