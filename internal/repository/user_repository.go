package repository

import (
	"context"

	"gorm.io/gorm"

	"usercenter/internal/model"
)

// UserRepository defines user persistence operations. Soft-deleted rows are
// excluded from every query by the gorm DeletedAt predicate.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByAccount(ctx context.Context, account string) (*model.User, error)
	FindByAccountAndDigest(ctx context.Context, account, digest string) (*model.User, error)
	CountByAccount(ctx context.Context, account string, excludeID int64) (int64, error)
	SearchByName(ctx context.Context, name string) ([]model.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByAccount(ctx context.Context, account string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("user_account = ?", account).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByAccountAndDigest performs the constant-shape credential lookup: a
// single query matching account and digest together, so a missing account and
// a wrong password are indistinguishable to the caller.
func (r *userRepository) FindByAccountAndDigest(ctx context.Context, account, digest string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_account = ? AND user_password = ?", account, digest).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByAccount counts live users holding the account name. Pass a non-zero
// excludeID to skip a row, e.g. when re-checking uniqueness on update.
func (r *userRepository) CountByAccount(ctx context.Context, account string, excludeID int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{}).Where("user_account = ?", account)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) SearchByName(ctx context.Context, name string) ([]model.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete soft-deletes the user. Returns false when no live row matched.
func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
