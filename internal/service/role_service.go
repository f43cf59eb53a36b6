package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"usercenter/internal/apperr"
	"usercenter/internal/model"
	"usercenter/internal/repository"
)

const maxRoleFieldLen = 64

// RoleService maintains the role catalog.
type RoleService interface {
	ListActive(ctx context.Context) ([]model.Role, error)
	Create(ctx context.Context, roleKey, roleName, description string) (int64, error)
}

type roleService struct {
	roles repository.RoleRepository
}

// NewRoleService creates a new role catalog service.
func NewRoleService(roles repository.RoleRepository) RoleService {
	return &roleService{roles: roles}
}

// ListActive returns enabled, non-deleted roles ordered by id.
func (s *roleService) ListActive(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// Create inserts a new enabled role. The key is trimmed and upper-cased before
// the uniqueness check, which runs against non-deleted rows only.
func (s *roleService) Create(ctx context.Context, roleKey, roleName, description string) (int64, error) {
	roleKey = strings.ToUpper(strings.TrimSpace(roleKey))
	roleName = strings.TrimSpace(roleName)
	if roleKey == "" || roleName == "" {
		return 0, apperr.Invalid("roleKey and roleName are required")
	}
	// The limit is 64 characters, not bytes, so multibyte names count the
	// same as ASCII ones.
	if utf8.RuneCountInString(roleKey) > maxRoleFieldLen || utf8.RuneCountInString(roleName) > maxRoleFieldLen {
		return 0, apperr.Invalid("roleKey or roleName too long")
	}

	count, err := s.roles.CountByKey(ctx, roleKey)
	if err != nil {
		return 0, fmt.Errorf("check role key: %w", err)
	}
	if count > 0 {
		return 0, apperr.Invalid("roleKey already exists")
	}

	role := &model.Role{
		RoleKey:     roleKey,
		RoleName:    roleName,
		Description: description,
		Status:      model.RoleStatusEnabled,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return 0, fmt.Errorf("create role: %w", err)
	}
	return role.ID, nil
}
