// internal/service/word_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDBWord() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

// --- Test CreateWord ---
func Test_wordService_CreateWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWord()

	tests := []struct {
		name      string
		req       *model.CreateWordRequest
		setupMock func(wordRepo *mocks.WordRepository)
		wantErr   error
	}{
		{
			name: "正常系: 単語の作成成功",
			req: &model.CreateWordRequest{
				Word:       "abandon",
				Phonetic:   "/əˈbændən/",
				Definition: "放弃；抛弃",
				Affixes:    []string{"a-", "band", "-on"},
			},
			setupMock: func(wordRepo *mocks.WordRepository) {
				wordRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Word")).
					Run(func(args mock.Arguments) {
						word := args.Get(2).(*model.Word)
						assert.Equal(t, "abandon", word.Word)
						assert.Equal(t, "放弃；抛弃", word.Definition)
						// 词缀はJSON配列として保存される
						assert.Equal(t, `["a-","band","-on"]`, word.Affixes)
						// 難易度未指定は1になる
						assert.Equal(t, 1, word.Difficulty)
						word.ID = 1
					}).Return(nil).Once()
			},
		},
		{
			name: "異常系: 綴りが重複",
			req: &model.CreateWordRequest{
				Word:       "abandon",
				Definition: "放弃；抛弃",
			},
			setupMock: func(wordRepo *mocks.WordRepository) {
				wordRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Word")).
					Return(model.ErrConflict).Once()
			},
			wantErr: model.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWordRepo := new(mocks.WordRepository)
			tt.setupMock(mockWordRepo)
			svc := NewWordService(db, mockWordRepo)

			resp, err := svc.CreateWord(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected error %v, got %v", tt.wantErr, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, int64(1), resp.WordID)
				assert.Equal(t, []string{"a-", "band", "-on"}, resp.Affixes)
			}
			mockWordRepo.AssertExpectations(t)
		})
	}
}

// --- Test UpdateWord ---
func Test_wordService_UpdateWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWord()

	newDefinition := "放弃；沉溺"

	t.Run("正常系: 部分更新", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(&model.Word{ID: 1, Word: "abandon", Definition: "放弃；抛弃"}, nil).Once()
		mockWordRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), int64(1),
			map[string]interface{}{"definition": newDefinition}).
			Return(nil).Once()
		mockWordRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(&model.Word{ID: 1, Word: "abandon", Definition: newDefinition}, nil).Once()

		svc := NewWordService(db, mockWordRepo)
		resp, err := svc.UpdateWord(ctx, 1, &model.UpdateWordRequest{Definition: &newDefinition})

		require.NoError(t, err)
		assert.Equal(t, newDefinition, resp.Definition)
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しない単語", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), int64(404)).
			Return(nil, model.ErrNotFound).Once()

		svc := NewWordService(db, mockWordRepo)
		resp, err := svc.UpdateWord(ctx, 404, &model.UpdateWordRequest{Definition: &newDefinition})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))
		assert.Nil(t, resp)
		mockWordRepo.AssertExpectations(t)
	})
}

// --- Test DeleteWord ---
func Test_wordService_DeleteWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBWord()

	t.Run("正常系: 論理削除", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), int64(1)).
			Return(nil).Once()

		svc := NewWordService(db, mockWordRepo)
		require.NoError(t, svc.DeleteWord(ctx, 1))
		mockWordRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しない単語", func(t *testing.T) {
		mockWordRepo := new(mocks.WordRepository)
		mockWordRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), int64(404)).
			Return(model.ErrNotFound).Once()

		svc := NewWordService(db, mockWordRepo)
		err := svc.DeleteWord(ctx, 404)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))
		mockWordRepo.AssertExpectations(t)
	})
}
