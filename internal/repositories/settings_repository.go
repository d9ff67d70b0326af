package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
)

// SettingsRepository stores the site settings as a single JSONB row (id = 1).
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	SaveSettings(ctx context.Context, settings *models.SiteSettings) error
}

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepository{DB: db}
}

// GetSettings returns sql.ErrNoRows (wrapped) until settings are saved once.
func (r *settingsRepository) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		data     []byte
		settings models.SiteSettings
	)

	err := r.DB.QueryRowContext(dbCtx, `SELECT data, updated_at FROM site_settings WHERE id = 1`).Scan(&data, &settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying site settings: %w", err)
	}

	updatedAt := settings.UpdatedAt
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("decoding site settings: %w", err)
	}
	settings.UpdatedAt = updatedAt

	return &settings, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, settings *models.SiteSettings) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding site settings: %w", err)
	}

	query := `
		INSERT INTO site_settings (id, data, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, data).Scan(&settings.UpdatedAt)
}
