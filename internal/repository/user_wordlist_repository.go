//go:generate mockery --name UserWordListRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"

	"gorm.io/gorm"
)

// UserWordListRepository インターフェース
type UserWordListRepository interface {
	Create(ctx context.Context, tx *gorm.DB, link *model.UserWordList) error
	Delete(ctx context.Context, tx *gorm.DB, userID, wordListID int64) error
	FindPair(ctx context.Context, db *gorm.DB, userID, wordListID int64) (*model.UserWordList, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID int64, search string, offset, limit int) ([]*model.UserWordList, int64, error)
	JoinedSet(ctx context.Context, db *gorm.DB, userID int64, wordListIDs []int64) (map[int64]bool, error)
	Update(ctx context.Context, tx *gorm.DB, userID, wordListID int64, updates map[string]interface{}) error
	CountByUser(ctx context.Context, db *gorm.DB, userID int64) (int64, error)
	SumLearnedByUser(ctx context.Context, db *gorm.DB, userID int64) (int64, error)
	SumTotalWordsByUser(ctx context.Context, db *gorm.DB, userID int64) (int64, error)
}

type gormUserWordListRepository struct{}

func NewGormUserWordListRepository() UserWordListRepository {
	return &gormUserWordListRepository{}
}

func (r *gormUserWordListRepository) Create(ctx context.Context, tx *gorm.DB, link *model.UserWordList) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(link)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating user word list link in DB",
			"error", result.Error,
			"user_id", link.UserID,
			"word_list_id", link.WordListID,
		)
		return fmt.Errorf("gormUserWordListRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserWordListRepository) Delete(ctx context.Context, tx *gorm.DB, userID, wordListID int64) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("user_id = ? AND word_list_id = ?", userID, wordListID).
		Delete(&model.UserWordList{})
	if result.Error != nil {
		logger.Error("Error deleting user word list link in DB",
			"error", result.Error,
			"user_id", userID,
			"word_list_id", wordListID,
		)
		return fmt.Errorf("gormUserWordListRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserWordListRepository) FindPair(ctx context.Context, db *gorm.DB, userID, wordListID int64) (*model.UserWordList, error) {
	logger := middleware.GetLogger(ctx)
	var link model.UserWordList
	result := db.WithContext(ctx).
		Where("user_id = ? AND word_list_id = ?", userID, wordListID).
		First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user word list link in DB",
			"error", result.Error,
			"user_id", userID,
			"word_list_id", wordListID,
		)
		return nil, fmt.Errorf("gormUserWordListRepository.FindPair: %w", result.Error)
	}
	return &link, nil
}

// FindByUser はユーザーの参加词库を、学習中→システム词库→最終学習の新しい順で返します
func (r *gormUserWordListRepository) FindByUser(ctx context.Context, db *gorm.DB, userID int64, search string, offset, limit int) ([]*model.UserWordList, int64, error) {
	logger := middleware.GetLogger(ctx)

	base := db.WithContext(ctx).Model(&model.UserWordList{}).
		Joins("JOIN wordlist ON wordlist.id = user_wordlist.word_list_id AND wordlist.deleted_at IS NULL").
		Where("user_wordlist.user_id = ?", userID)
	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("wordlist.word_list_name LIKE ? OR wordlist.description LIKE ?", pattern, pattern)
	}

	var total int64
	if result := base.Count(&total); result.Error != nil {
		logger.Error("Error counting user word lists in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, 0, fmt.Errorf("gormUserWordListRepository.FindByUser: %w", result.Error)
	}

	var links []*model.UserWordList
	result := base.Preload("WordList").
		Order("user_wordlist.is_current DESC, wordlist.is_system DESC, user_wordlist.last_study_time DESC, user_wordlist.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&links)
	if result.Error != nil {
		logger.Error("Error finding user word lists in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, 0, fmt.Errorf("gormUserWordListRepository.FindByUser: %w", result.Error)
	}
	return links, total, nil
}

// JoinedSet は指定词库のうちユーザーが参加しているIDの集合を1クエリで返します
func (r *gormUserWordListRepository) JoinedSet(ctx context.Context, db *gorm.DB, userID int64, wordListIDs []int64) (map[int64]bool, error) {
	logger := middleware.GetLogger(ctx)
	joined := make(map[int64]bool, len(wordListIDs))
	if userID <= 0 || len(wordListIDs) == 0 {
		return joined, nil
	}

	var ids []int64
	result := db.WithContext(ctx).Model(&model.UserWordList{}).
		Where("user_id = ? AND word_list_id IN ?", userID, wordListIDs).
		Pluck("word_list_id", &ids)
	if result.Error != nil {
		logger.Error("Error loading joined word list set in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormUserWordListRepository.JoinedSet: %w", result.Error)
	}
	for _, id := range ids {
		joined[id] = true
	}
	return joined, nil
}

func (r *gormUserWordListRepository) Update(ctx context.Context, tx *gorm.DB, userID, wordListID int64, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.UserWordList{}).
		Where("user_id = ? AND word_list_id = ?", userID, wordListID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating user word list link in DB",
			"error", result.Error,
			"user_id", userID,
			"word_list_id", wordListID,
		)
		return fmt.Errorf("gormUserWordListRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserWordListRepository) CountByUser(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.UserWordList{}).Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting user word lists in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return 0, fmt.Errorf("gormUserWordListRepository.CountByUser: %w", result.Error)
	}
	return count, nil
}

// SumLearnedByUser は全参加词库の学習済み単語数を合計します
func (r *gormUserWordListRepository) SumLearnedByUser(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var sum int64
	result := db.WithContext(ctx).Model(&model.UserWordList{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(learned_count), 0)").
		Scan(&sum)
	if result.Error != nil {
		logger.Error("Error summing learned count in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return 0, fmt.Errorf("gormUserWordListRepository.SumLearnedByUser: %w", result.Error)
	}
	return sum, nil
}

// SumTotalWordsByUser は参加词库の収録単語数を1クエリで合計します。
// 词库ごとに数え直すN+1を避けるため、JOINとSUMで済ませる。
func (r *gormUserWordListRepository) SumTotalWordsByUser(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var sum int64
	result := db.WithContext(ctx).Model(&model.UserWordList{}).
		Joins("JOIN wordlist ON wordlist.id = user_wordlist.word_list_id AND wordlist.deleted_at IS NULL").
		Where("user_wordlist.user_id = ?", userID).
		Select("COALESCE(SUM(wordlist.word_count), 0)").
		Scan(&sum)
	if result.Error != nil {
		logger.Error("Error summing total words in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return 0, fmt.Errorf("gormUserWordListRepository.SumTotalWordsByUser: %w", result.Error)
	}
	return sum, nil
}
