package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"usercenter/internal/apperr"
	"usercenter/internal/repository"
)

// UserRoleService maintains the single-role binding per user.
type UserRoleService interface {
	// Assign atomically replaces the user's bindings with at most one role.
	// An empty (or fully filtered-out) roleIDs slice unassigns every role.
	Assign(ctx context.Context, userID int64, roleIDs []int64) (bool, error)
	// ListRoleIDs returns the de-duplicated role ids bound to the user.
	ListRoleIDs(ctx context.Context, userID int64) ([]int64, error)
}

type userRoleService struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	bindings repository.UserRoleRepository
}

// NewUserRoleService creates a new user-role binding service.
func NewUserRoleService(users repository.UserRepository, roles repository.RoleRepository, bindings repository.UserRoleRepository) UserRoleService {
	return &userRoleService{users: users, roles: roles, bindings: bindings}
}

func (s *userRoleService) Assign(ctx context.Context, userID int64, roleIDs []int64) (bool, error) {
	if userID <= 0 {
		return false, apperr.Invalid("userId is required")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.Invalid("user does not exist")
		}
		return false, fmt.Errorf("look up user: %w", err)
	}

	// Non-positive and duplicate ids are dropped before the cardinality check.
	seen := make(map[int64]struct{}, len(roleIDs))
	filtered := make([]int64, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		filtered = append(filtered, id)
	}

	// Cardinality is checked before any write, so a rejected request leaves
	// the existing bindings untouched.
	if len(filtered) > 1 {
		return false, apperr.Invalid("a user may hold only one role")
	}

	var roleID *int64
	if len(filtered) == 1 {
		count, err := s.roles.CountActiveByIDs(ctx, filtered)
		if err != nil {
			return false, fmt.Errorf("check roles: %w", err)
		}
		if count != 1 {
			return false, apperr.Invalid("role does not exist or is disabled")
		}
		roleID = &filtered[0]
	}

	if err := s.bindings.ReplaceForUser(ctx, userID, roleID); err != nil {
		return false, fmt.Errorf("replace bindings: %w", err)
	}
	return true, nil
}

func (s *userRoleService) ListRoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	if userID <= 0 {
		return nil, apperr.Invalid("userId is required")
	}
	bindings, err := s.bindings.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}

	seen := make(map[int64]struct{}, len(bindings))
	ids := make([]int64, 0, len(bindings))
	for _, b := range bindings {
		if b.RoleID <= 0 {
			continue
		}
		if _, dup := seen[b.RoleID]; dup {
			continue
		}
		seen[b.RoleID] = struct{}{}
		ids = append(ids, b.RoleID)
	}
	return ids, nil
}
