package service

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	UpdateSettings(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error)
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewSettingsService(repo repository.SettingsRepository, c cache.Cache, ttl time.Duration) SettingsService {
	return &settingsService{repo: repo, cache: c, ttl: ttl}
}

// GetSettings falls back to the built-in defaults until an admin saves once.
func (s *settingsService) GetSettings(ctx context.Context) (*models.SiteSettings, error) {

	key := cache.Key(cache.SettingsKeyPrefix, "site")

	return readThrough(ctx, s.cache, cache.SettingsKeyPrefix, key, s.ttl, func(ctx context.Context) (*models.SiteSettings, error) {
		settings, err := s.repo.GetSettings(ctx)
		if err != nil {
			if repository.IsNotFound(err) {
				return models.DefaultSiteSettings(), nil
			}

			return nil, errors.DatabaseError("Failed to fetch settings").WithError(err)
		}

		return settings, nil
	})
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {

	settings.SiteName = utils.SanitizeText(settings.SiteName)
	settings.Tagline = utils.SanitizeText(settings.Tagline)
	settings.Phone = utils.SanitizeText(settings.Phone)
	settings.Address = utils.SanitizeText(settings.Address)
	settings.OpeningHours = utils.SanitizeText(settings.OpeningHours)
	settings.Theme.FontFamily = utils.SanitizeText(settings.Theme.FontFamily)

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, errors.DatabaseError("Failed to save settings").WithError(err)
	}

	invalidate(ctx, s.cache, cache.SettingsKeyPrefix)

	return settings, nil
}
