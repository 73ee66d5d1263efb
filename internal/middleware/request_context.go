package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/crowdfunding-backend/internal/i18n"
	"github.com/sefazor/crowdfunding-backend/internal/service"
	"go.uber.org/zap"
)

const (
	sessionKey        = "session"
	requestContextKey = "requestContext"
	requestIDKey      = "requestid"
)

type TranslatorSource interface {
	For(acceptLanguage string) i18n.Translator
}

// RequestContext builds the per-request context handed to services: the
// translator for Accept-Language and a logger tagged with the request id.
func RequestContext(translators TranslatorSource, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqLogger := logger
		if rid, ok := c.Locals(requestIDKey).(string); ok && rid != "" {
			reqLogger = logger.With(zap.String("requestId", rid))
		}

		c.Locals(requestContextKey, &service.RequestContext{
			Translator: translators.For(c.Get(fiber.HeaderAcceptLanguage)),
			Logger:     reqLogger,
		})
		return c.Next()
	}
}

// GetRequestContext returns the context set by RequestContext. Routes mounted
// without that middleware get an anonymous context with the fallback locale.
func GetRequestContext(c *fiber.Ctx) *service.RequestContext {
	if rc, ok := c.Locals(requestContextKey).(*service.RequestContext); ok {
		return rc
	}
	rc := &service.RequestContext{Translator: keyTranslator{}, Logger: zap.NewNop()}
	c.Locals(requestContextKey, rc)
	return rc
}

type keyTranslator struct{}

func (keyTranslator) T(key string) string { return key }

func (keyTranslator) Locale() string { return "" }
