package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PeriodRepository is a mock type for the PeriodRepository type
type PeriodRepository struct {
	mock.Mock
}

func (_m *PeriodRepository) CreatePeriod(ctx context.Context, period *models.Period) error {
	ret := _m.Called(ctx, period)
	return ret.Error(0)
}

func (_m *PeriodRepository) GetPeriodByID(ctx context.Context, id uuid.UUID) (*models.Period, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Period
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Period)
	}

	return r0, ret.Error(1)
}

func (_m *PeriodRepository) UpdatePeriod(ctx context.Context, period *models.Period) error {
	ret := _m.Called(ctx, period)
	return ret.Error(0)
}

func (_m *PeriodRepository) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *PeriodRepository) ListPeriods(ctx context.Context, featuredOnly bool) ([]*models.Period, error) {
	ret := _m.Called(ctx, featuredOnly)

	var r0 []*models.Period
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Period)
	}

	return r0, ret.Error(1)
}

func NewPeriodRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PeriodRepository {
	m := &PeriodRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
