package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSettingsService is a mock type for the SettingsService type
type MockSettingsService struct {
	mock.Mock
}

func (_m *MockSettingsService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	ret := _m.Called(ctx)

	var r0 *models.SiteSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.SiteSettings)
	}

	return r0, ret.Error(1)
}

func (_m *MockSettingsService) UpdateSettings(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	ret := _m.Called(ctx, settings)

	var r0 *models.SiteSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.SiteSettings)
	}

	return r0, ret.Error(1)
}

func NewMockSettingsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSettingsService {
	m := &MockSettingsService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
