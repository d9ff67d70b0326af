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

type PeriodHandler struct {
	periodService service.PeriodService
	validator     *validator.Validate
}

func NewPeriodHandler(periodService service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService, validator: validator.New()}
}

func (h *PeriodHandler) ListPeriods(featuredOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		periods, err := h.periodService.ListPeriods(r.Context(), featuredOnly)
		if err != nil {
			logger.Error("Failed to list periods", slog.Bool("featured", featuredOnly), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, periods)
	}
}

func (h *PeriodHandler) GetPeriod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid period id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		period, err := h.periodService.GetPeriodByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get period", slog.String("periodId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, period)
	}
}

func (h *PeriodHandler) CreatePeriod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreatePeriodRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create period input")
			return
		}

		period, err := h.periodService.CreatePeriod(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create period", slog.String("name", req.Name), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Period created", slog.String("periodId", period.ID.String()))
		response.Success(w, http.StatusCreated, period)
	}
}

func (h *PeriodHandler) UpdatePeriod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid period id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdatePeriodRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update period input", slog.String("periodId", id.String()))
			return
		}

		period, err := h.periodService.UpdatePeriod(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update period", slog.String("periodId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Period updated", slog.String("periodId", id.String()))
		response.Success(w, http.StatusOK, period)
	}
}

func (h *PeriodHandler) DeletePeriod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid period id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.periodService.DeletePeriod(r.Context(), id); err != nil {
			logger.Warn("Failed to delete period", slog.String("periodId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Period deleted", slog.String("periodId", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
