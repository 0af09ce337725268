package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDMintsWhenAbsent(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = GetCorrelationID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	require.Equal(t, seen, resp.Header.Get("X-Correlation-ID"))
}

func TestCorrelationIDPropagatesIncoming(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())

	var fromContext string
	app.Get("/", func(c *fiber.Ctx) error {
		fromContext = CorrelationIDFromContext(c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "corr-123", fromContext)
	require.Equal(t, "corr-123", resp.Header.Get("X-Correlation-ID"))
}

func TestRateLimitBlocksAfterMax(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit("test", 2, 0))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Candidate-ID", "cand-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Candidate-ID", "cand-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
