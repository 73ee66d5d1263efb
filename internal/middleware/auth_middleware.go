package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	jwtPkg "github.com/sefazor/crowdfunding-backend/pkg/jwt"
	"go.uber.org/zap"
)

// OptionalAuth attaches the session of a bearer token to the request context.
// Requests without Authorization header stay anonymous; a bad token is rejected.
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		rc := GetRequestContext(c)

		if !strings.HasPrefix(authHeader, "Bearer ") {
			rc.Logger.Debug("invalid authorization header format")
			return unauthorized(c)
		}

		session, err := jwtPkg.SessionFromToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			rc.Logger.Debug("token validation failed", zap.Error(err))
			return unauthorized(c)
		}

		rc.Session = session
		rc.Logger = rc.Logger.With(zap.String("sessionUserId", session.ID.String()))
		c.Locals(sessionKey, session)

		return c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(sessionKey).(*models.SessionUser); !ok {
			return unauthorized(c)
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	t := GetRequestContext(c).Translator
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(t.T(i18n.KeyUnauthorized), i18n.KeyUnauthorized))
}
