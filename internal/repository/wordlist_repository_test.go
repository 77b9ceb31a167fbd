// internal/repository/wordlist_repository_test.go
package repository

import (
	"context"
	"testing"

	"voca-app-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBRepo(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.WordList{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM wordlist")
	})
	return db
}

// --- Test Search ---
func Test_gormWordListRepository_Search(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBRepo(t)
	repo := NewGormWordListRepository()

	creatorID := int64(10)
	seed := []*model.WordList{
		{Name: "CET-4 核心词汇", Category: "cet4", Description: "大学英语四级", IsSystem: true},
		{Name: "旅行英语", Category: "travel", Description: "出行常用表达", CreatorID: &creatorID},
		{Name: "商务词汇", Category: "business", Description: "职场与会议", CreatorID: &creatorID},
	}
	require.NoError(t, db.Create(&seed).Error)

	t.Run("正常系: 名前にマッチ", func(t *testing.T) {
		lists, total, err := repo.Search(ctx, db, &model.WordListQuery{Page: 1, Limit: 10, Type: model.WordListTypeAll, Search: "旅行"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, lists, 1)
		assert.Equal(t, "旅行英语", lists[0].Name)
	})

	t.Run("正常系: カテゴリにマッチ", func(t *testing.T) {
		lists, total, err := repo.Search(ctx, db, &model.WordListQuery{Page: 1, Limit: 10, Type: model.WordListTypeAll, Search: "travel"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, lists, 1)
		assert.Equal(t, "旅行英语", lists[0].Name)
	})

	t.Run("正常系: 説明にマッチ", func(t *testing.T) {
		_, total, err := repo.Search(ctx, db, &model.WordListQuery{Page: 1, Limit: 10, Type: model.WordListTypeAll, Search: "会议"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("正常系: 検索なしはシステム词库が先頭", func(t *testing.T) {
		lists, total, err := repo.Search(ctx, db, &model.WordListQuery{Page: 1, Limit: 10, Type: model.WordListTypeAll})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.NotEmpty(t, lists)
		assert.True(t, lists[0].IsSystem)
	})
}
