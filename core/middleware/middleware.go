package middleware

import (
	"crypto/subtle"
	"strings"

	"sampark-api/core/cache"
	"sampark-api/core/config"
	"sampark-api/core/controller"
	"sampark-api/core/errors"
	"sampark-api/core/logger"
	"sampark-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cache cache.ICache
}

func NewMiddleware(c cache.ICache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the Bearer token, rejects blacklisted tokens
// and stores the parsed claims under "token_data".
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing authorization header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "invalid authorization header format")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted:Error:", err)
				return controller.NewErrorResponse(500, errors.ErrStoreUnavailable, "service temporarily unavailable")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid or expired token")
			}

			c.Set("token_data", claims)
			c.Set("token_raw", token)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware parses claims when a valid token is present but
// lets unauthenticated (guest) callers through.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return next(c)
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil || blacklisted {
				return next(c)
			}

			if claims, err := utils.ValidateAndParseToken(token); err == nil {
				c.Set("token_data", claims)
				c.Set("token_raw", token)
			}
			return next(c)
		}
	}
}

// AdminMiddleware gates the admin console endpoints behind the shared
// secret. Admin identity management itself lives outside this service.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secret := config.Get().Admin.Secret
			provided := c.Request().Header.Get("X-Admin-Secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid admin secret")
			}
			return next(c)
		}
	}
}
