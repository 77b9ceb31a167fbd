package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// availableModes は提供中の学習モード一覧
var availableModes = []model.LearningMode{
	{ModeID: model.LearningModeWordMeaning, ModeName: "看词选义", Description: "根据单词选择正确的释义", Icon: "book"},
	{ModeID: model.LearningModeMeaningWord, ModeName: "看义选词", Description: "根据释义选择正确的单词", Icon: "bulb"},
	{ModeID: model.LearningModeSpelling, ModeName: "拼写练习", Description: "根据释义拼写单词", Icon: "edit"},
	{ModeID: model.LearningModeListening, ModeName: "听力练习", Description: "根据发音选择正确的单词", Icon: "sound"},
}

// LearningService は学習セッションのライフサイクルを担います。
// セッション状態はKVストアにJSONで置き、完了時にだけDBへ反映する。
type LearningService interface {
	GetModes(ctx context.Context, userID int64) (*model.LearningModesResponse, error)
	StartSession(ctx context.Context, userID int64, req *model.StartSessionRequest) (*model.StartSessionResponse, error)
	SubmitAnswer(ctx context.Context, userID int64, sessionID string, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error)
	CompleteSession(ctx context.Context, userID int64, sessionID string) (*model.CompleteSessionResponse, error)
}

type learningService struct {
	db           *gorm.DB
	wordRepo     repository.WordRepository
	userListRepo repository.UserWordListRepository
	listRepo     repository.WordListRepository
	kvStore      repository.KVStore
}

func NewLearningService(db *gorm.DB, wordRepo repository.WordRepository, listRepo repository.WordListRepository, userListRepo repository.UserWordListRepository, kvStore repository.KVStore) LearningService {
	return &learningService{
		db:           db,
		wordRepo:     wordRepo,
		listRepo:     listRepo,
		userListRepo: userListRepo,
		kvStore:      kvStore,
	}
}

func sessionKey(sessionID string) string {
	return "learning_session:" + sessionID
}

func modeKey(userID int64) string {
	return "learning_mode:" + strconv.FormatInt(userID, 10)
}

// GetModes はモード一覧と、最後にセッションを開始したモードを返します
func (s *learningService) GetModes(ctx context.Context, userID int64) (*model.LearningModesResponse, error) {
	current := model.LearningModeWordMeaning
	if raw, err := s.kvStore.Get(ctx, modeKey(userID)); err == nil && isKnownMode(raw) {
		current = raw
	}
	return &model.LearningModesResponse{
		Modes:       availableModes,
		CurrentMode: current,
	}, nil
}

func isKnownMode(mode string) bool {
	for _, m := range availableModes {
		if m.ModeID == mode {
			return true
		}
	}
	return false
}

// StartSession は参加済み词库からランダムに単語を引いてセッションを開始します
func (s *learningService) StartSession(ctx context.Context, userID int64, req *model.StartSessionRequest) (*model.StartSessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	// 参加していない词库では学習を始められない
	if _, err := s.userListRepo.FindPair(ctx, s.db, userID, req.WordListID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_JOINED", "请先添加该词库", "wordListId", model.ErrBusiness)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	mode := req.Mode
	if mode == "" {
		mode = model.LearningModeWordMeaning
	}
	count := req.WordCount
	if count <= 0 {
		count = config.DefaultSessionWordCount
	}

	words, err := s.wordRepo.FindRandomByList(ctx, s.db, req.WordListID, count)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	if len(words) == 0 {
		return nil, model.NewAppError("EMPTY_WORDLIST", "该词库还没有单词", "wordListId", model.ErrBusiness)
	}

	now := time.Now()
	session := &model.LearningSession{
		SessionID:  uuid.New().String(),
		UserID:     userID,
		WordListID: req.WordListID,
		Mode:       mode,
		WordIDs:    make([]int64, 0, len(words)),
		Answers:    make(map[int64]bool),
		StartTime:  now,
	}

	wordResponses := make([]*model.WordResponse, 0, len(words))
	for _, word := range words {
		session.WordIDs = append(session.WordIDs, word.ID)
		wordResponses = append(wordResponses, model.NewWordResponse(word))
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	// GetModes 用に現在モードを覚えておく。失敗しても開始は続行
	_ = s.kvStore.Set(ctx, modeKey(userID), mode, config.LearningSessionTTL)

	logger.Info("Learning session started",
		"session_id", session.SessionID,
		"user_id", userID,
		"word_list_id", req.WordListID,
		"mode", mode,
		"words", len(words),
	)

	return &model.StartSessionResponse{
		SessionID:  session.SessionID,
		Mode:       mode,
		WordListID: req.WordListID,
		TotalWords: len(words),
		Words:      wordResponses,
		StartTime:  now,
	}, nil
}

// SubmitAnswer は回答を記録します。同じ単語への再回答は上書き
func (s *learningService) SubmitAnswer(ctx context.Context, userID int64, sessionID string, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if !containsID(session.WordIDs, req.WordID) {
		return nil, model.NewAppError("WORD_NOT_IN_SESSION", "该单词不属于当前学习会话", "wordId", model.ErrBusiness)
	}

	session.Answers[req.WordID] = *req.IsCorrect
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	return &model.SubmitAnswerResponse{
		SessionID: sessionID,
		Answered:  len(session.Answers),
		Remaining: len(session.WordIDs) - len(session.Answers),
	}, nil
}

// CompleteSession はセッションを締めて user_wordlist の進捗を更新します
func (s *learningService) CompleteSession(ctx context.Context, userID int64, sessionID string) (*model.CompleteSessionResponse, error) {
	logger := middleware.GetLogger(ctx)

	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, ok := range session.Answers {
		if ok {
			correct++
		}
	}
	answered := len(session.Answers)
	accuracy := 0.0
	if answered > 0 {
		accuracy = float64(correct) / float64(answered)
	}

	var learnedCount, progress int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		link, err := s.userListRepo.FindPair(ctx, tx, userID, session.WordListID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				// セッション中に参加解除された場合。集計だけ返す
				return nil
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}

		total, err := s.listRepo.CountWords(ctx, tx, session.WordListID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}

		learnedCount = link.LearnedCount + correct
		if total > 0 && int64(learnedCount) > total {
			learnedCount = int(total)
		}
		progress = 100
		if total > 0 {
			progress = int(int64(learnedCount) * 100 / total)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"learned_count":   learnedCount,
			"progress":        progress,
			"is_current":      true,
			"last_study_time": now,
		}
		if err := s.userListRepo.Update(ctx, tx, userID, session.WordListID, updates); err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "进度更新失败", "", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 完了したセッションは破棄する
	_ = s.kvStore.Delete(ctx, sessionKey(sessionID))

	logger.Info("Learning session completed",
		"session_id", sessionID,
		"user_id", userID,
		"answered", answered,
		"correct", correct,
	)

	return &model.CompleteSessionResponse{
		SessionID:     sessionID,
		WordListID:    session.WordListID,
		TotalWords:    len(session.WordIDs),
		AnsweredWords: answered,
		CorrectWords:  correct,
		Accuracy:      accuracy,
		LearnedCount:  learnedCount,
		Progress:      progress,
		StartTime:     session.StartTime,
		EndTime:       time.Now(),
	}, nil
}

// --- ヘルパー関数 ---

func (s *learningService) saveSession(ctx context.Context, session *model.LearningSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	if err := s.kvStore.Set(ctx, sessionKey(session.SessionID), string(data), config.LearningSessionTTL); err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "会话保存失败", "", err)
	}
	return nil
}

// loadSession はセッションを取得し、所有者を検証します
func (s *learningService) loadSession(ctx context.Context, userID int64, sessionID string) (*model.LearningSession, error) {
	raw, err := s.kvStore.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_NOT_FOUND", "学习会话不存在或已过期", "sessionId", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	var session model.LearningSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	if session.UserID != userID {
		return nil, model.NewAppError("FORBIDDEN", "只能访问自己的学习会话", "", model.ErrForbidden)
	}
	if session.Answers == nil {
		session.Answers = make(map[int64]bool)
	}
	return &session, nil
}

func containsID(ids []int64, target int64) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
