package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"usercenter/internal/apperr"
	"usercenter/internal/model"
)

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, role *model.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) ListActive(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRoleRepository) CountByKey(ctx context.Context, roleKey string) (int64, error) {
	args := m.Called(ctx, roleKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRepository) FindActiveByKey(ctx context.Context, roleKey string) (*model.Role, error) {
	args := m.Called(ctx, roleKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) CountActiveByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRepository) ListActiveByIDs(ctx context.Context, ids []int64) ([]model.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func TestRoleService_Create(t *testing.T) {
	t.Run("normalizes key before uniqueness check", func(t *testing.T) {
		mockRepo := new(MockRoleRepository)
		mockRepo.On("CountByKey", mock.Anything, "DRIVER").Return(int64(0), nil)

		var created *model.Role
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Role")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.Role)
				created.ID = 3
			}).
			Return(nil)

		svc := NewRoleService(mockRepo)
		id, err := svc.Create(context.Background(), "  driver ", " Driver ", "delivery staff")
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)

		require.NotNil(t, created)
		assert.Equal(t, "DRIVER", created.RoleKey)
		assert.Equal(t, "Driver", created.RoleName)
		assert.Equal(t, model.RoleStatusEnabled, created.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate key rejected", func(t *testing.T) {
		mockRepo := new(MockRoleRepository)
		mockRepo.On("CountByKey", mock.Anything, "ADMIN").Return(int64(1), nil)

		svc := NewRoleService(mockRepo)
		_, err := svc.Create(context.Background(), "admin", "Administrator", "")
		assertCode(t, err, apperr.CodeParamsError)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("overlong fields rejected", func(t *testing.T) {
		svc := NewRoleService(new(MockRoleRepository))
		long := strings.Repeat("X", 65)

		_, err := svc.Create(context.Background(), long, "Driver", "")
		assertCode(t, err, apperr.CodeParamsError)

		_, err = svc.Create(context.Background(), "DRIVER", long, "")
		assertCode(t, err, apperr.CodeParamsError)
	})

	t.Run("length limit counts characters, not bytes", func(t *testing.T) {
		// 30 CJK characters are 90 bytes but well under the 64-character limit.
		name := strings.Repeat("管", 30)

		mockRepo := new(MockRoleRepository)
		mockRepo.On("CountByKey", mock.Anything, "DRIVER").Return(int64(0), nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Role")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Role).ID = 4
			}).
			Return(nil)

		svc := NewRoleService(mockRepo)
		id, err := svc.Create(context.Background(), "DRIVER", name, "")
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
		mockRepo.AssertExpectations(t)

		// 65 characters are over the limit no matter how many bytes they take.
		_, err = svc.Create(context.Background(), "DRIVER", strings.Repeat("管", 65), "")
		assertCode(t, err, apperr.CodeParamsError)
	})

	t.Run("blank fields rejected", func(t *testing.T) {
		svc := NewRoleService(new(MockRoleRepository))
		_, err := svc.Create(context.Background(), "  ", "Driver", "")
		assertCode(t, err, apperr.CodeParamsError)
	})
}

func TestRoleService_ListActive(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	mockRepo.On("ListActive", mock.Anything).Return([]model.Role{
		{ID: 1, RoleKey: "ADMIN"},
		{ID: 2, RoleKey: "DRIVER"},
	}, nil)

	svc := NewRoleService(mockRepo)
	roles, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "ADMIN", roles[0].RoleKey)
	mockRepo.AssertExpectations(t)
}
