package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"usercenter/internal/apperr"
	"usercenter/internal/model"
	"usercenter/internal/repository"
)

// AdminUserPatch carries an admin-side partial update. Nil fields are left
// untouched.
type AdminUserPatch struct {
	ID          int64
	Name        *string
	UserAccount *string
	Email       *string
	Phone       *string
	AvatarURL   *string
	Gender      *int
	UserRole    *int
	UserStatus  *int
}

// UserService exposes the admin-side user management operations.
type UserService interface {
	Search(ctx context.Context, name string) ([]*model.SafeUser, error)
	AdminUpdate(ctx context.Context, patch AdminUserPatch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type userService struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	bindings repository.UserRoleRepository
}

// NewUserService creates a new admin user management service.
func NewUserService(users repository.UserRepository, roles repository.RoleRepository, bindings repository.UserRoleRepository) UserService {
	return &userService{users: users, roles: roles, bindings: bindings}
}

// Search returns sanitized users whose display name contains name, each
// augmented with its bound role, when one exists.
func (s *userService) Search(ctx context.Context, name string) ([]*model.SafeUser, error) {
	users, err := s.users.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	safe := make([]*model.SafeUser, 0, len(users))
	for i := range users {
		safe = append(safe, users[i].Sanitize())
	}
	if err := s.fillRoleInfo(ctx, safe); err != nil {
		return nil, err
	}
	return safe, nil
}

// fillRoleInfo resolves each user's single role through the binding table in
// two batch queries. The first binding per user wins; disabled or deleted
// roles are left out.
func (s *userService) fillRoleInfo(ctx context.Context, users []*model.SafeUser) error {
	if len(users) == 0 {
		return nil
	}
	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		if u != nil && u.ID > 0 {
			userIDs = append(userIDs, u.ID)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	bindings, err := s.bindings.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("list bindings: %w", err)
	}
	userToRole := make(map[int64]int64, len(bindings))
	for _, b := range bindings {
		if b.UserID <= 0 || b.RoleID <= 0 {
			continue
		}
		if _, ok := userToRole[b.UserID]; !ok {
			userToRole[b.UserID] = b.RoleID
		}
	}
	if len(userToRole) == 0 {
		return nil
	}

	roleIDSet := make(map[int64]struct{}, len(userToRole))
	roleIDs := make([]int64, 0, len(userToRole))
	for _, id := range userToRole {
		if _, dup := roleIDSet[id]; dup {
			continue
		}
		roleIDSet[id] = struct{}{}
		roleIDs = append(roleIDs, id)
	}
	roles, err := s.roles.ListActiveByIDs(ctx, roleIDs)
	if err != nil {
		return fmt.Errorf("list roles: %w", err)
	}
	roleByID := make(map[int64]model.Role, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	for _, u := range users {
		if u == nil {
			continue
		}
		roleID, ok := userToRole[u.ID]
		if !ok {
			continue
		}
		role, ok := roleByID[roleID]
		if !ok {
			continue
		}
		u.RoleID = role.ID
		u.RoleName = role.RoleName
		u.RoleKey = role.RoleKey
	}
	return nil
}

// AdminUpdate applies the non-nil patch fields to any user. A changed account
// name is re-checked for uniqueness against every other live row.
func (s *userService) AdminUpdate(ctx context.Context, patch AdminUserPatch) (bool, error) {
	if patch.ID <= 0 {
		return false, apperr.Invalid("id is required")
	}
	if _, err := s.users.FindByID(ctx, patch.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.Invalid("user does not exist")
		}
		return false, fmt.Errorf("look up user: %w", err)
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.UserAccount != nil {
		count, err := s.users.CountByAccount(ctx, *patch.UserAccount, patch.ID)
		if err != nil {
			return false, fmt.Errorf("check account existence: %w", err)
		}
		if count > 0 {
			return false, apperr.Invalid("account already exists")
		}
		fields["user_account"] = *patch.UserAccount
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = *patch.AvatarURL
	}
	if patch.Gender != nil {
		fields["gender"] = *patch.Gender
	}
	if patch.UserRole != nil {
		fields["user_role"] = *patch.UserRole
	}
	if patch.UserStatus != nil {
		fields["user_status"] = *patch.UserStatus
	}
	if len(fields) == 0 {
		return true, nil
	}

	if err := s.users.UpdateFields(ctx, patch.ID, fields); err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return true, nil
}

// Delete soft-deletes a user. Returns false when no live row matched.
func (s *userService) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, apperr.Invalid("id is required")
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return deleted, nil
}
