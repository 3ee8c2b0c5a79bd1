package logger

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const localsKey = "logger"

// New builds the application logger. Production logs are JSON, everything
// else uses the text formatter.
func New(level string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if production {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

// Middleware stores a request-scoped entry in fiber locals. It must run
// after requestid so the id is available.
func Middleware(base logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry := base.WithFields(logrus.Fields{
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
			"method":     c.Method(),
			"path":       c.Path(),
		})
		c.Locals(localsKey, entry)
		return c.Next()
	}
}

// From returns the request logger, or the standard logger when the
// middleware did not run.
func From(c *fiber.Ctx) logrus.FieldLogger {
	if entry, ok := c.Locals(localsKey).(*logrus.Entry); ok {
		return entry
	}
	return logrus.StandardLogger()
}
