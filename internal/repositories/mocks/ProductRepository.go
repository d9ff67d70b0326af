package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ProductRepository is a mock type for the ProductRepository type
type ProductRepository struct {
	mock.Mock
}

func (_m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)

	if rf, ok := ret.Get(0).(func(context.Context, *models.Product) error); ok {
		return rf(ctx, product)
	}

	return ret.Error(0)
}

func (_m *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	ret := _m.Called(ctx, product)
	return ret.Error(0)
}

func (_m *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *ProductRepository) ListProducts(ctx context.Context, pred catalogue.Predicate, sort string, limit int, offset int) ([]*models.Product, error) {
	ret := _m.Called(ctx, pred, sort, limit, offset)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductRepository) CountProducts(ctx context.Context, pred catalogue.Predicate) (int64, error) {
	ret := _m.Called(ctx, pred)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ProductRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Product, error) {
	ret := _m.Called(ctx, limit)

	var r0 []*models.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Product)
	}

	return r0, ret.Error(1)
}

func (_m *ProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, categoryID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ProductRepository) CountByPeriod(ctx context.Context, periodID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, periodID)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewProductRepository creates a new instance of ProductRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
