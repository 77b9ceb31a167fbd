package service

import (
	"context"
	"errors"
	"strings"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository"
	"voca-app-backend/internal/storage"

	"gorm.io/gorm"
)

// UserService はプロフィール・アバター・学習統計を担います
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error)
	UpdateStudyGoal(ctx context.Context, userID int64, req *model.UpdateStudyGoalRequest) (*model.User, error)
	GetStats(ctx context.Context, userID int64) (*model.UserStatsResponse, error)
	UploadAvatar(ctx context.Context, userID int64, data []byte, declaredType string) (string, error)
	DeleteAvatar(ctx context.Context, userID int64) error
}

type userService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	userListRepo repository.UserWordListRepository
	avatarStore  storage.AvatarStore
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, userListRepo repository.UserWordListRepository, avatarStore storage.AvatarStore) UserService {
	return &userService{
		db:           db,
		userRepo:     userRepo,
		userListRepo: userListRepo,
		avatarStore:  avatarStore,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "用户不存在", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	var updated *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "用户不存在", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}

		updates := make(map[string]interface{})
		if req.Username != nil && *req.Username != user.Username {
			exists, err := s.userRepo.UsernameExists(ctx, tx, *req.Username, userID)
			if err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
			}
			if exists {
				return model.NewAppError("DUPLICATE_USERNAME", "该用户名已被使用", "username", model.ErrConflict)
			}
			updates["username"] = *req.Username
		}
		if req.UserProfile != nil {
			updates["user_profile"] = *req.UserProfile
		}
		if req.StudyGoal != nil {
			updates["study_goal"] = *req.StudyGoal
		}

		if len(updates) > 0 {
			if err := s.userRepo.Update(ctx, tx, userID, updates); err != nil {
				if errors.Is(err, model.ErrConflict) {
					return model.NewAppError("DUPLICATE_USERNAME", "该用户名已被使用", "username", model.ErrConflict)
				}
				return model.NewAppError("INTERNAL_SERVER_ERROR", "资料更新失败", "", err)
			}
		}

		updated, err = s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated", "user_id", userID)
	return updated, nil
}

func (s *userService) UpdateStudyGoal(ctx context.Context, userID int64, req *model.UpdateStudyGoalRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	var updated *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Update(ctx, tx, userID, map[string]interface{}{"study_goal": req.StudyGoal}); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "用户不存在", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学习目标更新失败", "", err)
		}
		user, err := s.userRepo.FindByID(ctx, tx, userID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Study goal updated", "user_id", userID, "study_goal", req.StudyGoal)
	return updated, nil
}

// GetStats は user_wordlist の集計から学習統計を組み立てます
func (s *userService) GetStats(ctx context.Context, userID int64) (*model.UserStatsResponse, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	listCount, err := s.userListRepo.CountByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	learned, err := s.userListRepo.SumLearnedByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}
	total, err := s.userListRepo.SumTotalWordsByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "服务器内部错误", "", err)
	}

	progress := 0.0
	if total > 0 {
		progress = float64(learned) / float64(total)
	}

	return &model.UserStatsResponse{
		UserID:       userID,
		TotalWords:   total,
		LearnedWords: learned,
		ListCount:    listCount,
		StudyGoal:    user.StudyGoal,
		Progress:     progress,
	}, nil
}

// UploadAvatar はアバター画像を検証して保存し、公開URLを返します。
// 申告されたContent-Typeと実データの形式が食い違う場合は拒否する。
func (s *userService) UploadAvatar(ctx context.Context, userID int64, data []byte, declaredType string) (string, error) {
	logger := middleware.GetLogger(ctx)

	if int64(len(data)) > s.avatarStore.MaxSize() {
		return "", model.NewAppError("FILE_TOO_LARGE", "图片大小超出限制", "avatar", model.ErrInvalidInput)
	}

	detected := storage.DetectImageType(data)
	if detected == "" {
		return "", model.NewAppError("INVALID_IMAGE", "仅支持 JPEG/PNG/GIF/WebP 格式的图片", "avatar", model.ErrInvalidInput)
	}
	if declaredType != "" && !strings.EqualFold(declaredType, detected) {
		logger.Warn("Avatar content type mismatch", "declared", declaredType, "detected", detected, "user_id", userID)
		return "", model.NewAppError("INVALID_IMAGE", "图片格式与声明的类型不一致", "avatar", model.ErrInvalidInput)
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.avatarStore.Save(ctx, userID, data, detected)
	if err != nil {
		logger.Error("Failed to save avatar", "error", err, "user_id", userID)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "头像上传失败", "", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Update(ctx, tx, userID, map[string]interface{}{"user_avatar": url})
	})
	if err != nil {
		// DB更新に失敗したら保存済みオブジェクトは孤児になるので回収する
		_ = s.avatarStore.Remove(ctx, url)
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "头像更新失败", "", err)
	}

	// 旧アバターを後始末。失敗しても処理は成功扱い
	if user.UserAvatar != nil && *user.UserAvatar != "" {
		if err := s.avatarStore.Remove(ctx, *user.UserAvatar); err != nil {
			logger.Warn("Failed to remove old avatar", "error", err, "user_id", userID)
		}
	}

	logger.Info("Avatar uploaded", "user_id", userID)
	return url, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID int64) error {
	logger := middleware.GetLogger(ctx)

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if user.UserAvatar == nil || *user.UserAvatar == "" {
		return model.NewAppError("NO_AVATAR", "当前没有设置头像", "", model.ErrBusiness)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Update(ctx, tx, userID, map[string]interface{}{"user_avatar": nil})
	})
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "头像删除失败", "", err)
	}

	if err := s.avatarStore.Remove(ctx, *user.UserAvatar); err != nil {
		logger.Warn("Failed to remove avatar object", "error", err, "user_id", userID)
	}

	logger.Info("Avatar deleted", "user_id", userID)
	return nil
}
