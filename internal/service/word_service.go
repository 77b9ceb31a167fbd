package service

import (
	"context"
	"encoding/json"
	"errors"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository"

	"gorm.io/gorm"
)

// WordService は共有語彙エントリのCRUDを担います
type WordService interface {
	GetWord(ctx context.Context, wordID int64) (*model.WordResponse, error)
	CreateWord(ctx context.Context, req *model.CreateWordRequest) (*model.WordResponse, error)
	UpdateWord(ctx context.Context, wordID int64, req *model.UpdateWordRequest) (*model.WordResponse, error)
	DeleteWord(ctx context.Context, wordID int64) error
}

type wordService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository) WordService {
	return &wordService{db: db, wordRepo: wordRepo}
}

func (s *wordService) GetWord(ctx context.Context, wordID int64) (*model.WordResponse, error) {
	word, err := s.wordRepo.FindByID(ctx, s.db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORD_NOT_FOUND", "单词不存在", "wordId", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	return model.NewWordResponse(word), nil
}

func (s *wordService) CreateWord(ctx context.Context, req *model.CreateWordRequest) (*model.WordResponse, error) {
	logger := middleware.GetLogger(ctx)

	affixes, err := marshalAffixes(req.Affixes)
	if err != nil {
		return nil, model.NewAppError("INVALID_AFFIXES", "词缀格式错误", "affixes", model.ErrInvalidInput)
	}

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = 1
	}

	var created *model.Word
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word := &model.Word{
			Word:            req.Word,
			Phonetic:        req.Phonetic,
			Definition:      req.Definition,
			ExampleSentence: req.ExampleSentence,
			Affixes:         affixes,
			AudioURL:        req.AudioURL,
			Difficulty:      difficulty,
		}
		if err := s.wordRepo.Create(ctx, tx, word); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_WORD", "该单词已存在", "word", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "单词创建失败", "", err)
		}
		created = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word created", "word_id", created.ID, "word", created.Word)
	return model.NewWordResponse(created), nil
}

// UpdateWord は単語を部分更新します。綴り（word列）自体は変更不可
func (s *wordService) UpdateWord(ctx context.Context, wordID int64, req *model.UpdateWordRequest) (*model.WordResponse, error) {
	logger := middleware.GetLogger(ctx)

	var updated *model.Word
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.wordRepo.FindByID(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "单词不存在", "wordId", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}

		updates := make(map[string]interface{})
		if req.Phonetic != nil {
			updates["phonetic"] = *req.Phonetic
		}
		if req.Definition != nil {
			updates["definition"] = *req.Definition
		}
		if req.ExampleSentence != nil {
			updates["example_sentence"] = *req.ExampleSentence
		}
		if req.Affixes != nil {
			affixes, err := marshalAffixes(*req.Affixes)
			if err != nil {
				return model.NewAppError("INVALID_AFFIXES", "词缀格式错误", "affixes", model.ErrInvalidInput)
			}
			updates["affixes"] = affixes
		}
		if req.AudioURL != nil {
			updates["audio_url"] = *req.AudioURL
		}
		if req.Difficulty != nil {
			updates["difficulty"] = *req.Difficulty
		}

		if len(updates) > 0 {
			if err := s.wordRepo.Update(ctx, tx, wordID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("WORD_NOT_FOUND", "单词不存在", "wordId", model.ErrNotFound)
				}
				return model.NewAppError("INTERNAL_SERVER_ERROR", "单词更新失败", "", err)
			}
		}

		word, err := s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		updated = word
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word updated", "word_id", wordID)
	return model.NewWordResponse(updated), nil
}

// DeleteWord は単語を論理削除します。词库との関連行は物理には残るが、
// 一覧取得がwordをJOINするため削除後は自然に見えなくなる。
func (s *wordService) DeleteWord(ctx context.Context, wordID int64) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wordRepo.Delete(ctx, tx, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_FOUND", "单词不存在", "wordId", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "单词删除失败", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Word deleted", "word_id", wordID)
	return nil
}

// marshalAffixes は词缀リストをJSON配列文字列として保存用に整形します
func marshalAffixes(affixes []string) (string, error) {
	if len(affixes) == 0 {
		return "", nil
	}
	data, err := json.Marshal(affixes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
