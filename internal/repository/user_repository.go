//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry はユニーク制約違反のMySQLエラー番号
const mysqlDuplicateEntry = 1062

// UserRepository インターフェース
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, db *gorm.DB, account string) (*model.User, error)
	UsernameExists(ctx context.Context, db *gorm.DB, username string, excludeUserID int64) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, userID int64, updates map[string]interface{}) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB",
			"error", result.Error,
			"email", user.Email,
		)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID int64) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by email in DB",
			"error", result.Error,
			"email", email,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

// FindByEmailOrUsername はログインID（メールまたはユーザー名）でユーザーを検索します
func (r *gormUserRepository) FindByEmailOrUsername(ctx context.Context, db *gorm.DB, account string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Where("email = ? OR username = ?", account, account).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by account in DB",
			"error", result.Error,
		)
		return nil, fmt.Errorf("gormUserRepository.FindByEmailOrUsername: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) UsernameExists(ctx context.Context, db *gorm.DB, username string, excludeUserID int64) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username)
	if excludeUserID > 0 {
		query = query.Where("id != ?", excludeUserID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking username existence in DB",
			"error", result.Error,
			"username", username,
		)
		return false, fmt.Errorf("gormUserRepository.UsernameExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormUserRepository) Update(ctx context.Context, tx *gorm.DB, userID int64, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if isDuplicateEntry(result.Error) {
			return model.ErrConflict
		}
		logger.Error("Error updating user in DB",
			"error", result.Error,
			"user_id", userID,
		)
		return fmt.Errorf("gormUserRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// isDuplicateEntry はMySQLのユニーク制約違反かどうかを判定します
func isDuplicateEntry(err error) bool {
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
