package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SettingsHandler struct {
	settingsService service.SettingsService
	validator       *validator.Validate
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, validator: validator.New()}
}

func (h *SettingsHandler) GetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		settings, err := h.settingsService.GetSettings(r.Context())
		if err != nil {
			logger.Error("Failed to load site settings", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, settings)
	}
}

// UpdateSettings godoc
//
//	@Summary		Replace the site settings
//	@Description	The whole document is replaced; omitted optional fields are cleared.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			settings	body		models.SiteSettings	true	"Settings"
//	@Success		200			{object}	models.SiteSettings
//	@Failure		400			{object}	response.ErrorResponse
//	@Security		BearerAuth
//	@Router			/admin/settings [put]
func (h *SettingsHandler) UpdateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SiteSettings
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid settings input")
			return
		}

		settings, err := h.settingsService.UpdateSettings(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to save site settings", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Site settings updated")
		response.Success(w, http.StatusOK, settings)
	}
}
