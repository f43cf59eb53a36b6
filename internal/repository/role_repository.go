package repository

import (
	"context"

	"gorm.io/gorm"

	"usercenter/internal/model"
)

// RoleRepository defines role catalog persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	ListActive(ctx context.Context) ([]model.Role, error)
	CountByKey(ctx context.Context, roleKey string) (int64, error)
	FindActiveByKey(ctx context.Context, roleKey string) (*model.Role, error)
	CountActiveByIDs(ctx context.Context, ids []int64) (int64, error)
	ListActiveByIDs(ctx context.Context, ids []int64) ([]model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository builds a GORM-backed repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// ListActive returns enabled, non-deleted roles ordered by id ascending.
func (r *roleRepository) ListActive(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Where("status = ?", model.RoleStatusEnabled).
		Order("id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// CountByKey counts live roles holding the key, enabled or not. Uniqueness is
// enforced against every non-deleted row.
func (r *roleRepository) CountByKey(ctx context.Context, roleKey string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("role_key = ?", roleKey).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *roleRepository) FindActiveByKey(ctx context.Context, roleKey string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("role_key = ? AND status = ?", roleKey, model.RoleStatusEnabled).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) CountActiveByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("id IN ? AND status = ?", ids, model.RoleStatusEnabled).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *roleRepository) ListActiveByIDs(ctx context.Context, ids []int64) ([]model.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, model.RoleStatusEnabled).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
