package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/errors"
	models "github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type adminContextKey struct{}

// Tokens are minted with HS256; any HMAC hash verifies.
var adminSigningMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

type AuthMiddleware struct {
	jwtKey []byte
	parser *jwt.Parser
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {

	return &AuthMiddleware{
		jwtKey: jwtKey,
		parser: jwt.NewParser(jwt.WithValidMethods(adminSigningMethods), jwt.WithExpirationRequired()),
	}

}

// RequireAdmin admits a request only when it carries a valid back-office
// session token. The admin's claims and an admin-scoped logger are attached
// to the request context.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Admin route called without a token")
			response.Error(w, errors.UnauthorizedError("Admin token required"))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.Contains(tokenString, " ") {
			logger.Warn("Admin token sent with the wrong scheme")
			response.Error(w, errors.UnauthorizedError("Admin token must use the Bearer scheme"))
			return
		}

		claims := &models.AdminClaims{}

		_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return m.jwtKey, nil
		})
		if err != nil {
			logger.Warn("Admin token rejected", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Admin session is invalid or expired"))
			return
		}

		if claims.Role != models.RoleAdmin {
			logger.Warn("Token without admin role", slog.String("role", claims.Role), slog.String("admin_id", claims.AdminID.String()))
			response.Error(w, errors.ForbiddenError("Admin role required"))
			return
		}

		adminLogger := logger.With(slog.String("admin_id", claims.AdminID.String()))

		ctx := WithAdmin(r.Context(), claims)
		ctx = context.WithValue(ctx, LoggerKey, adminLogger)

		adminLogger.Debug("Admin authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// WithAdmin returns a copy of ctx carrying the admin's claims.
func WithAdmin(ctx context.Context, claims *models.AdminClaims) context.Context {
	return context.WithValue(ctx, adminContextKey{}, claims)
}

func AdminFromContext(ctx context.Context) (*models.AdminClaims, bool) {
	claims, ok := ctx.Value(adminContextKey{}).(*models.AdminClaims)
	return claims, ok && claims != nil
}
