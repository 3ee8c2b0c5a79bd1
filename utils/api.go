package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

// MakeHTTPHandleFunc binds a store-aware handler to a fiber route and
// renders any returned error in the API error shape.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.FromError(c, err)
		}
		return nil
	}
}
