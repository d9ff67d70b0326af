package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock type for the UserService type
type MockUserService struct {
	mock.Mock
}

func (_m *MockUserService) CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.User, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.LoginResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LoginResponse)
	}

	return r0, ret.Error(1)
}

func (_m *MockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}

	return r0, ret.Error(1)
}

func NewMockUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
