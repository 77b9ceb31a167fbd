//go:generate mockery --name WordListRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WordListRepository インターフェース
type WordListRepository interface {
	Create(ctx context.Context, tx *gorm.DB, list *model.WordList) error
	FindByID(ctx context.Context, db *gorm.DB, listID int64) (*model.WordList, error)
	NameExists(ctx context.Context, db *gorm.DB, name string, creatorID *int64, excludeListID int64) (bool, error)
	Search(ctx context.Context, db *gorm.DB, query *model.WordListQuery) ([]*model.WordList, int64, error)
	Update(ctx context.Context, tx *gorm.DB, listID int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, listID int64) error
	AddWords(ctx context.Context, tx *gorm.DB, listID int64, wordIDs []int64) (int64, error)
	RemoveWord(ctx context.Context, tx *gorm.DB, listID, wordID int64) error
	CountWords(ctx context.Context, db *gorm.DB, listID int64) (int64, error)
	WordCounts(ctx context.Context, db *gorm.DB, listIDs []int64) (map[int64]int64, error)
	ContainsWord(ctx context.Context, db *gorm.DB, listID, wordID int64) (bool, error)
}

type gormWordListRepository struct{}

func NewGormWordListRepository() WordListRepository {
	return &gormWordListRepository{}
}

func (r *gormWordListRepository) Create(ctx context.Context, tx *gorm.DB, list *model.WordList) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(list)
	if result.Error != nil {
		logger.Error("Error creating word list in DB",
			"error", result.Error,
			"name", list.Name,
		)
		return fmt.Errorf("gormWordListRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordListRepository) FindByID(ctx context.Context, db *gorm.DB, listID int64) (*model.WordList, error) {
	logger := middleware.GetLogger(ctx)
	var list model.WordList
	result := db.WithContext(ctx).First(&list, listID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word list by ID in DB",
			"error", result.Error,
			"word_list_id", listID,
		)
		return nil, fmt.Errorf("gormWordListRepository.FindByID: %w", result.Error)
	}
	return &list, nil
}

// NameExists は同一作成者スコープ内での名前重複を判定します。
// creatorID が nil の場合はシステム词库スコープを見る。
func (r *gormWordListRepository) NameExists(ctx context.Context, db *gorm.DB, name string, creatorID *int64, excludeListID int64) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.WordList{}).Where("word_list_name = ?", name)
	if creatorID != nil {
		query = query.Where("creator_id = ?", *creatorID)
	} else {
		query = query.Where("is_system = ?", true)
	}
	if excludeListID > 0 {
		query = query.Where("id != ?", excludeListID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking word list name existence in DB",
			"error", result.Error,
			"name", name,
		)
		return false, fmt.Errorf("gormWordListRepository.NameExists: %w", result.Error)
	}
	return count > 0, nil
}

// Search は公開词库の一覧をフィルタ・ページングつきで返します。
// システム词库を先頭に、次いで新しい順に並べる。
func (r *gormWordListRepository) Search(ctx context.Context, db *gorm.DB, query *model.WordListQuery) ([]*model.WordList, int64, error) {
	logger := middleware.GetLogger(ctx)

	base := db.WithContext(ctx).Model(&model.WordList{})
	switch query.Type {
	case model.WordListTypeSystem:
		base = base.Where("is_system = ?", true)
	case model.WordListTypeCustom:
		base = base.Where("is_system = ?", false)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("word_list_name LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if result := base.Count(&total); result.Error != nil {
		logger.Error("Error counting word lists in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormWordListRepository.Search: %w", result.Error)
	}

	var lists []*model.WordList
	offset := (query.Page - 1) * query.Limit
	result := base.Order("is_system DESC, created_at DESC").Offset(offset).Limit(query.Limit).Find(&lists)
	if result.Error != nil {
		logger.Error("Error searching word lists in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormWordListRepository.Search: %w", result.Error)
	}
	return lists, total, nil
}

func (r *gormWordListRepository) Update(ctx context.Context, tx *gorm.DB, listID int64, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.WordList{}).Where("id = ?", listID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word list in DB",
			"error", result.Error,
			"word_list_id", listID,
		)
		return fmt.Errorf("gormWordListRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordListRepository) Delete(ctx context.Context, tx *gorm.DB, listID int64) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.WordList{}, listID)
	if result.Error != nil {
		logger.Error("Error deleting word list in DB",
			"error", result.Error,
			"word_list_id", listID,
		)
		return fmt.Errorf("gormWordListRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// AddWords は词库と単語の関連をまとめて追加します。
// 既存ペアはスキップし、実際に追加された件数を返す。
func (r *gormWordListRepository) AddWords(ctx context.Context, tx *gorm.DB, listID int64, wordIDs []int64) (int64, error) {
	logger := middleware.GetLogger(ctx)
	if len(wordIDs) == 0 {
		return 0, nil
	}

	links := make([]model.WordListWord, 0, len(wordIDs))
	for _, wordID := range wordIDs {
		links = append(links, model.WordListWord{WordListID: listID, WordID: wordID})
	}

	result := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links)
	if result.Error != nil {
		logger.Error("Error adding words to word list in DB",
			"error", result.Error,
			"word_list_id", listID,
		)
		return 0, fmt.Errorf("gormWordListRepository.AddWords: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormWordListRepository) RemoveWord(ctx context.Context, tx *gorm.DB, listID, wordID int64) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("word_list_id = ? AND word_id = ?", listID, wordID).
		Delete(&model.WordListWord{})
	if result.Error != nil {
		logger.Error("Error removing word from word list in DB",
			"error", result.Error,
			"word_list_id", listID,
			"word_id", wordID,
		)
		return fmt.Errorf("gormWordListRepository.RemoveWord: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordListRepository) CountWords(ctx context.Context, db *gorm.DB, listID int64) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.WordListWord{}).Where("word_list_id = ?", listID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting words in word list in DB",
			"error", result.Error,
			"word_list_id", listID,
		)
		return 0, fmt.Errorf("gormWordListRepository.CountWords: %w", result.Error)
	}
	return count, nil
}

// WordCounts は複数词库の収録単語数をGROUP BYの1クエリでまとめて取得します。
// 词库ごとにCOUNTを発行するN+1をここで潰す。
func (r *gormWordListRepository) WordCounts(ctx context.Context, db *gorm.DB, listIDs []int64) (map[int64]int64, error) {
	logger := middleware.GetLogger(ctx)
	counts := make(map[int64]int64, len(listIDs))
	if len(listIDs) == 0 {
		return counts, nil
	}

	type listCount struct {
		WordListID int64
		Total      int64
	}
	var rows []listCount
	result := db.WithContext(ctx).Model(&model.WordListWord{}).
		Select("word_list_id, COUNT(*) AS total").
		Where("word_list_id IN ?", listIDs).
		Group("word_list_id").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error loading word counts in DB", "error", result.Error)
		return nil, fmt.Errorf("gormWordListRepository.WordCounts: %w", result.Error)
	}
	for _, row := range rows {
		counts[row.WordListID] = row.Total
	}
	return counts, nil
}

func (r *gormWordListRepository) ContainsWord(ctx context.Context, db *gorm.DB, listID, wordID int64) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.WordListWord{}).
		Where("word_list_id = ? AND word_id = ?", listID, wordID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking word membership in DB",
			"error", result.Error,
			"word_list_id", listID,
			"word_id", wordID,
		)
		return false, fmt.Errorf("gormWordListRepository.ContainsWord: %w", result.Error)
	}
	return count > 0, nil
}
