package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// The automation platform sends its shared secret under either header,
// depending on how the scenario was configured.
const (
	HeaderWebhookSecret = "x-webhook-secret"
	HeaderMakeSecret    = "x-make-secret"
)

// ProvidedSecret returns the shared secret from the request, preferring the
// generic header over the platform-specific one.
func ProvidedSecret(c echo.Context) string {
	if v := c.Request().Header.Get(HeaderWebhookSecret); v != "" {
		return v
	}
	return c.Request().Header.Get(HeaderMakeSecret)
}

// SecretGuard rejects requests whose shared secret does not match. An empty
// configured secret disables the check.
func SecretGuard(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			provided := ProvidedSecret(c)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid webhook secret",
				})
			}

			return next(c)
		}
	}
}
