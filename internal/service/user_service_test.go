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

func TestUserService_Search_FillsRoleInfo(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockRoles := new(MockRoleRepository)
	mockBindings := new(MockUserRoleRepository)

	mockUsers.On("SearchByName", mock.Anything, "ali").Return([]model.User{
		{ID: 7, Name: "alice_1", UserAccount: "alice_1", UserPassword: "digest"},
		{ID: 8, Name: "alina", UserAccount: "alina", UserPassword: "digest"},
	}, nil)
	mockBindings.On("ListByUserIDs", mock.Anything, []int64{7, 8}).Return([]model.UserRole{
		{ID: 1, UserID: 7, RoleID: 3},
	}, nil)
	mockRoles.On("ListActiveByIDs", mock.Anything, []int64{3}).Return([]model.Role{
		{ID: 3, RoleKey: "DRIVER", RoleName: "Driver"},
	}, nil)

	svc := NewUserService(mockUsers, mockRoles, mockBindings)
	users, err := svc.Search(context.Background(), "ali")
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(3), users[0].RoleID)
	assert.Equal(t, "DRIVER", users[0].RoleKey)
	assert.Equal(t, "Driver", users[0].RoleName)

	assert.Zero(t, users[1].RoleID)
	assert.Empty(t, users[1].RoleKey)

	mockUsers.AssertExpectations(t)
	mockRoles.AssertExpectations(t)
	mockBindings.AssertExpectations(t)
}

func TestUserService_AdminUpdate(t *testing.T) {
	existing := &model.User{ID: 7, UserAccount: "alice_1"}
	newAccount := "alice_2"
	banned := model.StatusBanned

	t.Run("account conflict rejected", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
		mockUsers.On("CountByAccount", mock.Anything, "alice_2", int64(7)).Return(int64(1), nil)

		svc := NewUserService(mockUsers, new(MockRoleRepository), new(MockUserRoleRepository))
		_, err := svc.AdminUpdate(context.Background(), AdminUserPatch{ID: 7, UserAccount: &newAccount})
		assertCode(t, err, apperr.CodeParamsError)
		mockUsers.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("applies only provided fields", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, int64(7)).Return(existing, nil)
		mockUsers.On("UpdateFields", mock.Anything, int64(7), map[string]interface{}{"user_status": banned}).Return(nil)

		svc := NewUserService(mockUsers, new(MockRoleRepository), new(MockUserRoleRepository))
		ok, err := svc.AdminUpdate(context.Background(), AdminUserPatch{ID: 7, UserStatus: &banned})
		require.NoError(t, err)
		assert.True(t, ok)
		mockUsers.AssertExpectations(t)
	})

	t.Run("missing user rejected", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockUsers, new(MockRoleRepository), new(MockUserRoleRepository))
		_, err := svc.AdminUpdate(context.Background(), AdminUserPatch{ID: 99, UserStatus: &banned})
		assertCode(t, err, apperr.CodeParamsError)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), new(MockRoleRepository), new(MockUserRoleRepository))
		_, err := svc.Delete(context.Background(), 0)
		assertCode(t, err, apperr.CodeParamsError)
	})

	t.Run("reports whether a live row matched", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("Delete", mock.Anything, int64(7)).Return(true, nil)
		mockUsers.On("Delete", mock.Anything, int64(8)).Return(false, nil)

		svc := NewUserService(mockUsers, new(MockRoleRepository), new(MockUserRoleRepository))

		ok, err := svc.Delete(context.Background(), 7)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Delete(context.Background(), 8)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
