package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Bearer", ""},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer a b", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BearerToken(tt.header), "header %q", tt.header)
	}
}

func TestRequiredWithoutToken(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: response.FiberErrorHandler})
	app.Get("/private", NewAuthMiddleware(nil).Required(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOriginGuard(t *testing.T) {
	app := fiber.New()
	app.Use(OriginGuard([]string{"https://unifriend.in/", " http://localhost:3000 "}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	tests := []struct {
		origin string
		status int
	}{
		{"", fiber.StatusNoContent},
		{"https://unifriend.in", fiber.StatusNoContent},
		{"HTTPS://UNIFRIEND.IN", fiber.StatusNoContent},
		{"http://localhost:3000", fiber.StatusNoContent},
		{"https://evil.example", fiber.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.origin != "" {
			req.Header.Set(fiber.HeaderOrigin, tt.origin)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, "origin %q", tt.origin)
	}
}

func requestCount(t *testing.T, metrics *Metrics, route, status string) float64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "unifriend_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["route"] == route && labels["status"] == status {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetricsRouteLabels(t *testing.T) {
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(metrics.Handler())
	app.Get("/api/universities/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, path := range []string{"/api/universities/a", "/api/universities/b", "/nowhere"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, requestCount(t, metrics, "/api/universities/:id", "200"))
	assert.Equal(t, 1.0, requestCount(t, metrics, "unmatched", "404"))
}
