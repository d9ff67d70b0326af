package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/services/mocks"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	body := `{"email":"dealer@example.com","password":"correct horse"}`

	t.Run("Success - Token Issued", func(t *testing.T) {
		// Arrange
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, &models.LoginRequest{Email: "dealer@example.com", Password: "correct horse"}).
			Return(&models.LoginResponse{Success: true, Token: "signed.jwt.token", ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.LoginResponse
		resp := decodeData(t, rr, &got)
		assert.True(t, resp.Success)
		assert.Equal(t, "signed.jwt.token", got.Token)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: false, Message: "Invalid email or password", RemainingTries: 3}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, rr.Header().Get("Retry-After"))

		var got models.LoginResponse
		resp := decodeData(t, rr, &got)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, resp.Error.Code)
		assert.Equal(t, 3, got.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: false, Message: "Too many login attempts. Please try again later.", RetryAfter: 12}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "12", rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeTooManyRequests)
	})

	t.Run("Failure - Limiter Unavailable", func(t *testing.T) {
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, appErrors.ThirdPartyError("Rate limit check failed")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("Failure - Missing Password", func(t *testing.T) {
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dealer@example.com"}`), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		userService.AssertNotCalled(t, "Login")
	})
}

func TestProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		userService.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Name: "Dealer", Email: "dealer@example.com", Password: "hash"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/admin/profile", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hash")
	})

	t.Run("Failure - No Claims", func(t *testing.T) {
		userService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(userService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/admin/profile", nil, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		userService.AssertNotCalled(t, "GetUserByID")
	})
}
