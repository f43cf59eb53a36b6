package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"usercenter/internal/apperr"
	"usercenter/internal/model"
)

// MockUserRoleRepository is a mock implementation of UserRoleRepository.
type MockUserRoleRepository struct {
	mock.Mock
}

func (m *MockUserRoleRepository) ListByUserID(ctx context.Context, userID int64) ([]model.UserRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRole), args.Error(1)
}

func (m *MockUserRoleRepository) ListByUserIDs(ctx context.Context, userIDs []int64) ([]model.UserRole, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserRole), args.Error(1)
}

func (m *MockUserRoleRepository) Exists(ctx context.Context, userID, roleID int64) (bool, error) {
	args := m.Called(ctx, userID, roleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRoleRepository) ReplaceForUser(ctx context.Context, userID int64, roleID *int64) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func TestUserRoleService_Assign(t *testing.T) {
	existing := &model.User{ID: 7, UserAccount: "alice_1"}

	tests := []struct {
		name         string
		userID       int64
		roleIDs      []int64
		setupMocks   func(*MockUserRepository, *MockRoleRepository, *MockUserRoleRepository)
		expectedCode int
	}{
		{
			name:    "assign single role",
			userID:  7,
			roleIDs: []int64{3},
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
				r.On("CountActiveByIDs", mock.Anything, []int64{3}).Return(int64(1), nil)
				roleID := int64(3)
				b.On("ReplaceForUser", mock.Anything, int64(7), &roleID).Return(nil)
			},
		},
		{
			name:    "duplicates and junk filtered before cardinality check",
			userID:  7,
			roleIDs: []int64{3, 3, 0, -4, 3},
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
				r.On("CountActiveByIDs", mock.Anything, []int64{3}).Return(int64(1), nil)
				roleID := int64(3)
				b.On("ReplaceForUser", mock.Anything, int64(7), &roleID).Return(nil)
			},
		},
		{
			name:    "empty set unassigns all",
			userID:  7,
			roleIDs: nil,
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
				b.On("ReplaceForUser", mock.Anything, int64(7), (*int64)(nil)).Return(nil)
			},
		},
		{
			name:    "only junk ids unassigns all",
			userID:  7,
			roleIDs: []int64{0, -1, -2},
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
				b.On("ReplaceForUser", mock.Anything, int64(7), (*int64)(nil)).Return(nil)
			},
		},
		{
			name:         "invalid user id",
			userID:       0,
			roleIDs:      []int64{3},
			setupMocks:   func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {},
			expectedCode: apperr.CodeParamsError,
		},
		{
			name:    "user does not exist",
			userID:  99,
			roleIDs: []int64{3},
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedCode: apperr.CodeParamsError,
		},
		{
			name:    "more than one role rejected",
			userID:  7,
			roleIDs: []int64{3, 4},
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
			},
			expectedCode: apperr.CodeParamsError,
		},
		{
			name:    "disabled or missing role rejected",
			userID:  7,
			roleIDs: []int64{3},
			setupMocks: func(u *MockUserRepository, r *MockRoleRepository, b *MockUserRoleRepository) {
				u.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
				r.On("CountActiveByIDs", mock.Anything, []int64{3}).Return(int64(0), nil)
			},
			expectedCode: apperr.CodeParamsError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockRoles := new(MockRoleRepository)
			mockBindings := new(MockUserRoleRepository)
			tt.setupMocks(mockUsers, mockRoles, mockBindings)

			svc := NewUserRoleService(mockUsers, mockRoles, mockBindings)
			ok, err := svc.Assign(context.Background(), tt.userID, tt.roleIDs)

			if tt.expectedCode != 0 {
				assertCode(t, err, tt.expectedCode)
				assert.False(t, ok)
				// A rejected assignment must leave existing bindings alone.
				mockBindings.AssertNotCalled(t, "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.True(t, ok)
			}
			mockUsers.AssertExpectations(t)
			mockRoles.AssertExpectations(t)
			mockBindings.AssertExpectations(t)
		})
	}
}

func TestUserRoleService_ListRoleIDs(t *testing.T) {
	t.Run("invalid user id", func(t *testing.T) {
		svc := NewUserRoleService(new(MockUserRepository), new(MockRoleRepository), new(MockUserRoleRepository))
		_, err := svc.ListRoleIDs(context.Background(), -1)
		assertCode(t, err, apperr.CodeParamsError)
	})

	t.Run("deduplicates role ids", func(t *testing.T) {
		mockBindings := new(MockUserRoleRepository)
		mockBindings.On("ListByUserID", mock.Anything, int64(7)).Return([]model.UserRole{
			{ID: 1, UserID: 7, RoleID: 3},
			{ID: 2, UserID: 7, RoleID: 3},
			{ID: 3, UserID: 7, RoleID: 5},
		}, nil)

		svc := NewUserRoleService(new(MockUserRepository), new(MockRoleRepository), mockBindings)
		ids, err := svc.ListRoleIDs(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 5}, ids)
	})
}
