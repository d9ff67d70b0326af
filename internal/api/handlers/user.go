package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Exchanges credentials for a bearer token. Attempts are limited per email within a sliding window.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest	true	"Credentials"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		401			{object}	response.APIResponse
//	@Failure		429			{object}	response.APIResponse
//	@Router			/auth/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status, code := http.StatusUnauthorized, appErrors.ErrCodeUnauthorized
			if resp.RetryAfter > 0 {
				status, code = http.StatusTooManyRequests, appErrors.ErrCodeTooManyRequests
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
			}

			logger.Warn("Login rejected",
				slog.Int("status", status),
				slog.Int("remainingTries", resp.RemainingTries))

			response.WriteJson(w, status, response.APIResponse{
				Success: false,
				Data:    resp,
				Error:   &response.ErrorResponse{Code: code, Message: resp.Message},
			})
			return
		}

		logger.Info("Admin logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.AdminFromContext(r.Context())
		if !ok {
			logger.Warn("Profile requested without claims")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.AdminID)
		if err != nil {
			logger.Warn("Failed to load profile", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
