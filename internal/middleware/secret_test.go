package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecretContext(headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestProvidedSecret(t *testing.T) {
	c, _ := newSecretContext(map[string]string{HeaderWebhookSecret: "a"})
	assert.Equal(t, "a", ProvidedSecret(c))

	c, _ = newSecretContext(map[string]string{HeaderMakeSecret: "b"})
	assert.Equal(t, "b", ProvidedSecret(c))

	// The generic header wins when both are present.
	c, _ = newSecretContext(map[string]string{
		HeaderWebhookSecret: "a",
		HeaderMakeSecret:    "b",
	})
	assert.Equal(t, "a", ProvidedSecret(c))

	c, _ = newSecretContext(nil)
	assert.Equal(t, "", ProvidedSecret(c))
}

func TestSecretGuard(t *testing.T) {
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("matching secret passes", func(t *testing.T) {
		c, rec := newSecretContext(map[string]string{HeaderWebhookSecret: "shh"})
		require.NoError(t, SecretGuard("shh")(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		c, rec := newSecretContext(map[string]string{HeaderWebhookSecret: "mal"})
		require.NoError(t, SecretGuard("shh")(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing secret rejected", func(t *testing.T) {
		c, rec := newSecretContext(nil)
		require.NoError(t, SecretGuard("shh")(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty configured secret disables check", func(t *testing.T) {
		c, rec := newSecretContext(nil)
		require.NoError(t, SecretGuard("")(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
