package queryHelper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runQuery(t *testing.T, target string, fn func(c *fiber.Ctx) error) {
	t.Helper()
	app := fiber.New()
	app.Get("/", fn)
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    database.Page
		invalid bool
	}{
		{name: "defaults", target: "/", want: database.Page{Limit: 50}},
		{name: "explicit", target: "/?limit=10&offset=20", want: database.Page{Limit: 10, Offset: 20}},
		{name: "capped", target: "/?limit=10000", want: database.Page{Limit: MaxLimit}},
		{name: "zero limit", target: "/?limit=0", invalid: true},
		{name: "text limit", target: "/?limit=ten", invalid: true},
		{name: "negative offset", target: "/?offset=-1", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runQuery(t, tt.target, func(c *fiber.Ctx) error {
				page, err := ParsePage(c, 50)
				if tt.invalid {
					assert.Equal(t, services.KindValidation, services.KindOf(err))
				} else {
					require.NoError(t, err)
					assert.Equal(t, tt.want, page)
				}
				return c.SendStatus(fiber.StatusNoContent)
			})
		})
	}
}

func TestParseFloat(t *testing.T) {
	runQuery(t, "/?minRating=3.5&maxRating=abc", func(c *fiber.Ctx) error {
		minRating, err := ParseFloat(c, "minRating")
		require.NoError(t, err)
		require.NotNil(t, minRating)
		assert.Equal(t, 3.5, *minRating)

		missing, err := ParseFloat(c, "rating")
		require.NoError(t, err)
		assert.Nil(t, missing)

		_, err = ParseFloat(c, "maxRating")
		assert.Equal(t, services.KindValidation, services.KindOf(err))
		return c.SendStatus(fiber.StatusNoContent)
	})
}
