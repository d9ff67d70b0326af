package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CategoryRepository is a mock type for the CategoryRepository type
type CategoryRepository struct {
	mock.Mock
}

func (_m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Category)
	}

	return r0, ret.Error(1)
}

func (_m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *CategoryRepository) ListCategories(ctx context.Context, featuredOnly bool) ([]*models.Category, error) {
	ret := _m.Called(ctx, featuredOnly)

	var r0 []*models.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Category)
	}

	return r0, ret.Error(1)
}

func NewCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
