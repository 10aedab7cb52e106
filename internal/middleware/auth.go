package middleware

import (
	"net/http"
	"strings"

	"ledger-service/pkg/jwtutil"
	"ledger-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const ownerKey = "owner"

// JWTAuthMiddleware validates the bearer token and stores the owner claims
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			c.Set(ownerKey, claims)
			ctxLogger := log.With(zap.Uint("owner_id", claims.OwnerID))
			c.Set("logger", ctxLogger)
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context(), ctxLogger)))

			return next(c)
		}
	}
}

// OwnerFromContext returns the authenticated owner id; ok is false on
// routes that are not behind JWTAuthMiddleware.
func OwnerFromContext(c echo.Context) (uint, bool) {
	claims, ok := c.Get(ownerKey).(*jwtutil.OwnerClaims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.OwnerID, true
}

// ClaimsFromContext returns the verified token claims
func ClaimsFromContext(c echo.Context) (*jwtutil.OwnerClaims, bool) {
	claims, ok := c.Get(ownerKey).(*jwtutil.OwnerClaims)
	return claims, ok && claims != nil
}
