//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"

	"gorm.io/gorm"
)

// WordRepository インターフェース
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID int64) (*model.Word, error)
	FindExistingIDs(ctx context.Context, db *gorm.DB, wordIDs []int64) ([]int64, error)
	FindByList(ctx context.Context, db *gorm.DB, wordListID int64, offset, limit int) ([]*model.Word, int64, error)
	FindRandomByList(ctx context.Context, db *gorm.DB, wordListID int64, count int) ([]*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, wordID int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, wordID int64) error
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"word", word.Word,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID int64) (*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var word model.Word
	result := db.WithContext(ctx).First(&word, wordID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"word_id", wordID,
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

// FindExistingIDs は指定IDのうち実在する（削除されていない）単語IDのみを返します
func (r *gormWordRepository) FindExistingIDs(ctx context.Context, db *gorm.DB, wordIDs []int64) ([]int64, error) {
	logger := middleware.GetLogger(ctx)
	if len(wordIDs) == 0 {
		return nil, nil
	}
	var existing []int64
	result := db.WithContext(ctx).Model(&model.Word{}).Where("id IN ?", wordIDs).Pluck("id", &existing)
	if result.Error != nil {
		logger.Error("Error finding existing word IDs in DB",
			"error", result.Error,
		)
		return nil, fmt.Errorf("gormWordRepository.FindExistingIDs: %w", result.Error)
	}
	return existing, nil
}

// FindByList は中間テーブル経由で词库内の単語をID昇順・ページングで返します
func (r *gormWordRepository) FindByList(ctx context.Context, db *gorm.DB, wordListID int64, offset, limit int) ([]*model.Word, int64, error) {
	logger := middleware.GetLogger(ctx)

	base := db.WithContext(ctx).Model(&model.Word{}).
		Joins("JOIN word_list_word ON word_list_word.word_id = word.id").
		Where("word_list_word.word_list_id = ?", wordListID)

	var total int64
	if result := base.Count(&total); result.Error != nil {
		logger.Error("Error counting words by list in DB",
			"error", result.Error,
			"word_list_id", wordListID,
		)
		return nil, 0, fmt.Errorf("gormWordRepository.FindByList: %w", result.Error)
	}

	var words []*model.Word
	result := base.Order("word.id ASC").Offset(offset).Limit(limit).Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by list in DB",
			"error", result.Error,
			"word_list_id", wordListID,
		)
		return nil, 0, fmt.Errorf("gormWordRepository.FindByList: %w", result.Error)
	}
	return words, total, nil
}

// FindRandomByList は词库からランダムに最大count件の単語を取得します
func (r *gormWordRepository) FindRandomByList(ctx context.Context, db *gorm.DB, wordListID int64, count int) ([]*model.Word, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.Word
	result := db.WithContext(ctx).Model(&model.Word{}).
		Joins("JOIN word_list_word ON word_list_word.word_id = word.id").
		Where("word_list_word.word_list_id = ?", wordListID).
		Order("RAND()").
		Limit(count).
		Find(&words)
	if result.Error != nil {
		logger.Error("Error finding random words by list in DB",
			"error", result.Error,
			"word_list_id", wordListID,
		)
		return nil, fmt.Errorf("gormWordRepository.FindRandomByList: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, wordID int64, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("id = ?", wordID).Updates(updates)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"word_id", wordID,
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, wordID int64) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Word{}, wordID)
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"word_id", wordID,
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
