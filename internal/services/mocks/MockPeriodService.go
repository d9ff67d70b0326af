package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPeriodService is a mock type for the PeriodService type
type MockPeriodService struct {
	mock.Mock
}

func (_m *MockPeriodService) CreatePeriod(ctx context.Context, req *models.CreatePeriodRequest) (*models.Period, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.Period
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Period)
	}

	return r0, ret.Error(1)
}

func (_m *MockPeriodService) GetPeriodByID(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Period
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Period)
	}

	return r0, ret.Error(1)
}

func (_m *MockPeriodService) UpdatePeriod(ctx context.Context, id uuid.UUID, req *models.UpdatePeriodRequest) (*models.Period, error) {
	ret := _m.Called(ctx, id, req)

	var r0 *models.Period
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Period)
	}

	return r0, ret.Error(1)
}

func (_m *MockPeriodService) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MockPeriodService) ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error) {
	ret := _m.Called(ctx, featuredOnly)

	var r0 []*models.Period
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Period)
	}

	return r0, ret.Error(1)
}

func NewMockPeriodService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPeriodService {
	m := &MockPeriodService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
