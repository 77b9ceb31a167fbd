package service

import (
	"context"
	"errors"
	"time"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository"

	"gorm.io/gorm"
)

// WordListService は词库の公開閲覧・作成・編集と、
// ユーザーの词库参加（user_wordlist）を担います。
type WordListService interface {
	GetWordLists(ctx context.Context, query *model.WordListQuery, viewer *model.AuthUser) (*model.WordListPageResponse, error)
	GetWordList(ctx context.Context, listID int64, viewer *model.AuthUser) (*model.WordListResponse, error)
	GetWordListWords(ctx context.Context, listID int64, page, limit int) (*model.WordListWordsResponse, error)
	CreateWordList(ctx context.Context, user *model.AuthUser, req *model.CreateWordListRequest) (*model.WordListResponse, error)
	UpdateWordList(ctx context.Context, user *model.AuthUser, listID int64, req *model.UpdateWordListRequest) (*model.WordListResponse, error)
	DeleteWordList(ctx context.Context, user *model.AuthUser, listID int64) error
	AddWords(ctx context.Context, user *model.AuthUser, listID int64, req *model.AddWordsRequest) (*model.AddWordsResponse, error)
	RemoveWord(ctx context.Context, user *model.AuthUser, listID, wordID int64) (*model.RemoveWordResponse, error)

	GetMyWordLists(ctx context.Context, userID int64, page, limit int, search string) (*model.MyWordListPageResponse, error)
	JoinWordList(ctx context.Context, userID int64, req *model.AddUserWordListRequest) (*model.MyWordListResponse, error)
	LeaveWordList(ctx context.Context, userID, wordListID int64) error
}

type wordListService struct {
	db           *gorm.DB
	listRepo     repository.WordListRepository
	wordRepo     repository.WordRepository
	userListRepo repository.UserWordListRepository
}

func NewWordListService(db *gorm.DB, listRepo repository.WordListRepository, wordRepo repository.WordRepository, userListRepo repository.UserWordListRepository) WordListService {
	return &wordListService{
		db:           db,
		listRepo:     listRepo,
		wordRepo:     wordRepo,
		userListRepo: userListRepo,
	}
}

// GetWordLists は公開词库の一覧を返します。
// viewer が認証済みなら参加済みフラグを1クエリでまとめて付ける。
func (s *wordListService) GetWordLists(ctx context.Context, query *model.WordListQuery, viewer *model.AuthUser) (*model.WordListPageResponse, error) {
	lists, total, err := s.listRepo.Search(ctx, s.db, query)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	listIDs := make([]int64, 0, len(lists))
	for _, list := range lists {
		listIDs = append(listIDs, list.ID)
	}

	// 収録単語数はGROUP BYで一括集計する
	counts, err := s.listRepo.WordCounts(ctx, s.db, listIDs)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	joined := map[int64]bool{}
	if viewer != nil {
		joined, err = s.userListRepo.JoinedSet(ctx, s.db, viewer.UserID, listIDs)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
	}

	responses := make([]*model.WordListResponse, 0, len(lists))
	for _, list := range lists {
		responses = append(responses, newWordListResponse(list, counts[list.ID], joined[list.ID]))
	}

	return &model.WordListPageResponse{
		WordLists:  responses,
		Pagination: model.NewPagination(query.Page, query.Limit, total),
	}, nil
}

func (s *wordListService) GetWordList(ctx context.Context, listID int64, viewer *model.AuthUser) (*model.WordListResponse, error) {
	list, err := s.findList(ctx, s.db, listID)
	if err != nil {
		return nil, err
	}

	count, err := s.listRepo.CountWords(ctx, s.db, listID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	joined := false
	if viewer != nil {
		set, err := s.userListRepo.JoinedSet(ctx, s.db, viewer.UserID, []int64{listID})
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		joined = set[listID]
	}

	return newWordListResponse(list, count, joined), nil
}

func (s *wordListService) GetWordListWords(ctx context.Context, listID int64, page, limit int) (*model.WordListWordsResponse, error) {
	list, err := s.findList(ctx, s.db, listID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	words, total, err := s.wordRepo.FindByList(ctx, s.db, listID, offset, limit)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	wordResponses := make([]*model.WordResponse, 0, len(words))
	for _, word := range words {
		wordResponses = append(wordResponses, model.NewWordResponse(word))
	}

	return &model.WordListWordsResponse{
		WordListID: list.ID,
		Name:       list.Name,
		Words:      wordResponses,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

func (s *wordListService) CreateWordList(ctx context.Context, user *model.AuthUser, req *model.CreateWordListRequest) (*model.WordListResponse, error) {
	logger := middleware.GetLogger(ctx)

	// システム词库を作れるのは管理者だけ。一般ユーザーの指定は黙って落とす
	isSystem := req.IsSystem && user.IsAdmin()

	var creatorID *int64
	if !isSystem {
		id := user.UserID
		creatorID = &id
	}

	var created *model.WordList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.listRepo.NameExists(ctx, tx, req.Name, creatorID, 0)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		if exists {
			return model.NewAppError("DUPLICATE_NAME", "同名词库已存在", "wordListName", model.ErrConflict)
		}

		list := &model.WordList{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			IsSystem:    isSystem,
			CreatorID:   creatorID,
		}
		if err := s.listRepo.Create(ctx, tx, list); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "词库创建失败", "", err)
		}
		created = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word list created", "word_list_id", created.ID, "user_id", user.UserID, "is_system", created.IsSystem)
	return newWordListResponse(created, 0, false), nil
}

func (s *wordListService) UpdateWordList(ctx context.Context, user *model.AuthUser, listID int64, req *model.UpdateWordListRequest) (*model.WordListResponse, error) {
	logger := middleware.GetLogger(ctx)

	var updated *model.WordList
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := s.findList(ctx, tx, listID)
		if err != nil {
			return err
		}
		if err := s.checkEditable(list, user); err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if req.Name != nil && *req.Name != list.Name {
			exists, err := s.listRepo.NameExists(ctx, tx, *req.Name, list.CreatorID, listID)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_NAME", "同名词库已存在", "wordListName", model.ErrConflict)
			}
			updates["word_list_name"] = *req.Name
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}

		if len(updates) > 0 {
			if err := s.listRepo.Update(ctx, tx, listID, updates); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "词库更新失败", "", err)
			}
		}

		updated, err = s.findList(ctx, tx, listID)
		if err != nil {
			return err
		}
		count, err = s.listRepo.CountWords(ctx, tx, listID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word list updated", "word_list_id", listID, "user_id", user.UserID)
	return newWordListResponse(updated, count, false), nil
}

// DeleteWordList は词库を論理削除します。単語実体は共有なので残す
func (s *wordListService) DeleteWordList(ctx context.Context, user *model.AuthUser, listID int64) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := s.findList(ctx, tx, listID)
		if err != nil {
			return err
		}
		if err := s.checkEditable(list, user); err != nil {
			return err
		}
		if err := s.listRepo.Delete(ctx, tx, listID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "词库删除失败", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Word list deleted", "word_list_id", listID, "user_id", user.UserID)
	return nil
}

// AddWords は词库に単語をまとめて追加します。
// 実在しないIDは黙って除外し、既存ペアはスキップして追加件数だけ返す。
// 1件も実在しない場合だけ 422 を返す。
func (s *wordListService) AddWords(ctx context.Context, user *model.AuthUser, listID int64, req *model.AddWordsRequest) (*model.AddWordsResponse, error) {
	logger := middleware.GetLogger(ctx)

	var resp *model.AddWordsResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := s.findList(ctx, tx, listID)
		if err != nil {
			return err
		}
		if err := s.checkEditable(list, user); err != nil {
			return err
		}

		existing, err := s.wordRepo.FindExistingIDs(ctx, tx, req.WordIDs)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		if len(existing) == 0 {
			return model.NewAppError("WORD_NOT_FOUND", "所选单词均不存在", "wordIds", model.ErrBusiness)
		}

		added, err := s.listRepo.AddWords(ctx, tx, listID, existing)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "单词添加失败", "", err)
		}

		total, err := s.syncWordCount(ctx, tx, listID)
		if err != nil {
			return err
		}

		resp = &model.AddWordsResponse{AddedCount: added, WordCount: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Words added to word list", "word_list_id", listID, "added", resp.AddedCount, "user_id", user.UserID)
	return resp, nil
}

// RemoveWord は词库から単語を外します。関連が無ければ 422 を返す
func (s *wordListService) RemoveWord(ctx context.Context, user *model.AuthUser, listID, wordID int64) (*model.RemoveWordResponse, error) {
	logger := middleware.GetLogger(ctx)

	var resp *model.RemoveWordResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := s.findList(ctx, tx, listID)
		if err != nil {
			return err
		}
		if err := s.checkEditable(list, user); err != nil {
			return err
		}

		inList, err := s.listRepo.ContainsWord(ctx, tx, listID, wordID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		if !inList {
			return model.NewAppError("WORD_NOT_IN_LIST", "该单词不在词库中", "wordId", model.ErrBusiness)
		}

		if err := s.listRepo.RemoveWord(ctx, tx, listID, wordID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("WORD_NOT_IN_LIST", "该单词不在词库中", "wordId", model.ErrBusiness)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "单词移除失败", "", err)
		}

		total, err := s.syncWordCount(ctx, tx, listID)
		if err != nil {
			return err
		}
		resp = &model.RemoveWordResponse{WordCount: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Word removed from word list", "word_list_id", listID, "word_id", wordID, "user_id", user.UserID)
	return resp, nil
}

// GetMyWordLists はユーザーが参加中の词库を進捗つきで返します
func (s *wordListService) GetMyWordLists(ctx context.Context, userID int64, page, limit int, search string) (*model.MyWordListPageResponse, error) {
	offset := (page - 1) * limit
	links, total, err := s.userListRepo.FindByUser(ctx, s.db, userID, search, offset, limit)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	responses := make([]*model.MyWordListResponse, 0, len(links))
	for _, link := range links {
		// 词库側が論理削除済みでも関連は残りうる。その場合はスキップ
		if link.WordList == nil {
			continue
		}
		responses = append(responses, &model.MyWordListResponse{
			WordListID:    link.WordListID,
			Name:          link.WordList.Name,
			Category:      link.WordList.Category,
			Description:   link.WordList.Description,
			WordCount:     link.WordList.WordCount,
			IsSystem:      link.WordList.IsSystem,
			Progress:      link.Progress,
			LearnedCount:  link.LearnedCount,
			IsCurrent:     link.IsCurrent,
			StartTime:     link.StartTime,
			LastStudyTime: link.LastStudyTime,
		})
	}

	return &model.MyWordListPageResponse{
		WordLists:  responses,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

// JoinWordList は词库を学習対象に追加します。二重参加は 409
func (s *wordListService) JoinWordList(ctx context.Context, userID int64, req *model.AddUserWordListRequest) (*model.MyWordListResponse, error) {
	logger := middleware.GetLogger(ctx)

	var resp *model.MyWordListResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := s.findList(ctx, tx, req.WordListID)
		if err != nil {
			return err
		}

		now := time.Now()
		link := &model.UserWordList{
			UserID:     userID,
			WordListID: list.ID,
			StartTime:  &now,
		}
		if err := s.userListRepo.Create(ctx, tx, link); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("ALREADY_JOINED", "已添加过该词库", "wordListId", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "词库添加失败", "", err)
		}

		resp = &model.MyWordListResponse{
			WordListID:  list.ID,
			Name:        list.Name,
			Category:    list.Category,
			Description: list.Description,
			WordCount:   list.WordCount,
			IsSystem:    list.IsSystem,
			StartTime:   &now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User joined word list", "user_id", userID, "word_list_id", req.WordListID)
	return resp, nil
}

// LeaveWordList は参加を解除します。進捗行ごと消える
func (s *wordListService) LeaveWordList(ctx context.Context, userID, wordListID int64) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userListRepo.Delete(ctx, tx, userID, wordListID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_JOINED", "尚未添加该词库", "wordListId", model.ErrBusiness)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "词库移除失败", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("User left word list", "user_id", userID, "word_list_id", wordListID)
	return nil
}

// --- ヘルパー関数 ---

func (s *wordListService) findList(ctx context.Context, db *gorm.DB, listID int64) (*model.WordList, error) {
	list, err := s.listRepo.FindByID(ctx, db, listID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("WORDLIST_NOT_FOUND", "词库不存在", "wordListId", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	return list, nil
}

// checkEditable は词库の編集権限を判定します。
// カスタム词库は作成者本人か管理者、システム词库は管理者のみ。
func (s *wordListService) checkEditable(list *model.WordList, user *model.AuthUser) error {
	if user.IsAdmin() {
		return nil
	}
	if list.IsSystem {
		return model.NewAppError("FORBIDDEN", "系统词库仅管理员可操作", "", model.ErrForbidden)
	}
	if !list.OwnedBy(user.UserID) {
		return model.NewAppError("FORBIDDEN", "只能操作自己创建的词库", "", model.ErrForbidden)
	}
	return nil
}

// syncWordCount は非正規化カラム word_count を実数で更新します
func (s *wordListService) syncWordCount(ctx context.Context, tx *gorm.DB, listID int64) (int64, error) {
	total, err := s.listRepo.CountWords(ctx, tx, listID)
	if err != nil {
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	if err := s.listRepo.Update(ctx, tx, listID, map[string]interface{}{"word_count": total}); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
	}
	return total, nil
}

func newWordListResponse(list *model.WordList, count int64, joined bool) *model.WordListResponse {
	return &model.WordListResponse{
		WordListID:  list.ID,
		Name:        list.Name,
		Category:    list.Category,
		Description: list.Description,
		WordCount:   count,
		IsSystem:    list.IsSystem,
		CreatorID:   list.CreatorID,
		Joined:      joined,
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}
