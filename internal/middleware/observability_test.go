package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-proficiency-api/internal/middleware"
	"github.com/noah-isme/gema-proficiency-api/internal/observability"
)

func TestObservabilityCountsAPIErrors(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Use(middleware.Observability(zerolog.Nop()))
	app.Get("/api/v2/exams/:id/result", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	errors := observability.APIErrors().WithLabelValues(fiber.MethodGet, "/api/v2/exams/:id/result", "404")
	before := testutil.ToFloat64(errors)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/exams/3/result", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Equal(t, "corr-1", resp.Header.Get("X-Correlation-ID"))
	require.Equal(t, before+1, testutil.ToFloat64(errors))
}

func TestCorrelationIDGeneratedWhenMissing(t *testing.T) {
	var fromContext string
	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		fromContext = middleware.CorrelationIDFromContext(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	header := resp.Header.Get("X-Correlation-ID")
	require.NotEmpty(t, header)
	require.Equal(t, header, fromContext)
}
