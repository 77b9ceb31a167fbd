// internal/model/learning.go
package model

import "time"

// 学習モード識別子
const (
	LearningModeWordMeaning = "word_meaning"
	LearningModeMeaningWord = "meaning_word"
	LearningModeSpelling    = "spelling"
	LearningModeListening   = "listening"
)

// LearningMode は学習モードのメタ情報
type LearningMode struct {
	ModeID      string `json:"modeId"`
	ModeName    string `json:"modeName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type LearningModesResponse struct {
	Modes       []LearningMode `json:"modes"`
	CurrentMode string         `json:"currentMode"`
}

// LearningSession はKVストアにJSONで保持するセッション状態。
// サーバ再起動や複数インスタンス構成ではRedis実装を使う。
type LearningSession struct {
	SessionID  string         `json:"sessionId"`
	UserID     int64          `json:"userId"`
	WordListID int64          `json:"wordListId"`
	Mode       string         `json:"mode"`
	WordIDs    []int64        `json:"wordIds"`
	Answers    map[int64]bool `json:"answers"` // wordId -> 正誤
	StartTime  time.Time      `json:"startTime"`
}

type StartSessionRequest struct {
	WordListID int64  `json:"wordListId" validate:"required,gt=0"`
	Mode       string `json:"mode" validate:"omitempty,oneof=word_meaning meaning_word spelling listening"`
	WordCount  int    `json:"wordCount" validate:"omitempty,min=1,max=50"`
}

type StartSessionResponse struct {
	SessionID  string          `json:"sessionId"`
	Mode       string          `json:"mode"`
	WordListID int64           `json:"wordListId"`
	TotalWords int             `json:"totalWords"`
	Words      []*WordResponse `json:"words"`
	StartTime  time.Time       `json:"startTime"`
}

type SubmitAnswerRequest struct {
	WordID    int64 `json:"wordId" validate:"required,gt=0"`
	IsCorrect *bool `json:"isCorrect" validate:"required"`
}

type SubmitAnswerResponse struct {
	SessionID string `json:"sessionId"`
	Answered  int    `json:"answered"`
	Remaining int    `json:"remaining"`
}

// CompleteSessionResponse はセッション完了時の集計
type CompleteSessionResponse struct {
	SessionID     string    `json:"sessionId"`
	WordListID    int64     `json:"wordListId"`
	TotalWords    int       `json:"totalWords"`
	AnsweredWords int       `json:"answeredWords"`
	CorrectWords  int       `json:"correctWords"`
	Accuracy      float64   `json:"accuracy"`
	LearnedCount  int       `json:"learnedCount"` // 完了後の词单累計
	Progress      int       `json:"progress"`     // 完了後の词单進捗（%）
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
}
