package repository

import (
	"context"

	"gorm.io/gorm"

	"usercenter/internal/model"
)

// UserRoleRepository defines persistence operations for user-role bindings.
type UserRoleRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.UserRole, error)
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]model.UserRole, error)
	Exists(ctx context.Context, userID, roleID int64) (bool, error)
	ReplaceForUser(ctx context.Context, userID int64, roleID *int64) error
}

type userRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository builds a GORM-backed repository.
func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) ListByUserID(ctx context.Context, userID int64) ([]model.UserRole, error) {
	var bindings []model.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

// ListByUserIDs returns bindings for a batch of users, ordered by id so the
// first binding per user is deterministic.
func (r *userRoleRepository) ListByUserIDs(ctx context.Context, userIDs []int64) ([]model.UserRole, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var bindings []model.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("id ASC").
		Find(&bindings).Error
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *userRoleRepository) Exists(ctx context.Context, userID, roleID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceForUser atomically swaps the user's bindings: every existing row is
// removed and, when roleID is non-nil, a single new row is inserted. The
// delete and insert share one transaction so a failure cannot leave the user
// half-assigned.
func (r *userRoleRepository) ReplaceForUser(ctx context.Context, userID int64, roleID *int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		if roleID == nil {
			return nil
		}
		binding := &model.UserRole{UserID: userID, RoleID: *roleID}
		return tx.Create(binding).Error
	})
}
