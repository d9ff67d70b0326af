package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/stretchr/testify/mock"
)

// SettingsRepository is a mock type for the SettingsRepository type
type SettingsRepository struct {
	mock.Mock
}

func (_m *SettingsRepository) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	ret := _m.Called(ctx)

	var r0 *models.SiteSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.SiteSettings)
	}

	return r0, ret.Error(1)
}

func (_m *SettingsRepository) SaveSettings(ctx context.Context, settings *models.SiteSettings) error {
	ret := _m.Called(ctx, settings)
	return ret.Error(0)
}

func NewSettingsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SettingsRepository {
	m := &SettingsRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
