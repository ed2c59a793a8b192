package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"campustrade/internal/infrastructure/firebase"
	"campustrade/pkg/errors"
	"campustrade/pkg/response"
)

type AuthMiddleware struct {
	authClient *firebase.AuthClient
}

func NewAuthMiddleware(authClient *firebase.AuthClient) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
	}
}

// Authenticate requires a valid Bearer ID token and stores the caller's uid
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		uid, err := m.authClient.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// OptionalAuthenticate resolves the uid when a token is present but lets
// anonymous requests through. Used on browse endpoints that behave slightly
// differently for the listing's own seller.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return next(c)
		}

		if uid, err := m.authClient.VerifyToken(c.Request().Context(), token); err == nil {
			c.Set("uid", uid)
		}

		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}

	return parts[1], nil
}
