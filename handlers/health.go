package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/utils/logger"
)

// HealthCheck returns the GET /health handler. It always answers 200 so
// it can serve as a liveness probe; database reachability is reported in
// the body.
func HealthCheck(environment string) func(c *fiber.Ctx, store database.Storage) error {
	return func(c *fiber.Ctx, store database.Storage) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := store.HealthCheck(ctx); err != nil {
			logger.From(c).WithError(err).Warn("database health check failed")
			dbStatus = "unavailable"
		}

		return c.JSON(fiber.Map{
			"status":      "ok",
			"environment": environment,
			"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
			"database":    dbStatus,
		})
	}
}
