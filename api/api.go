package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/utils/response"
	"github.com/sirupsen/logrus"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           logrus.FieldLogger
}

// NewAPIServer creates the fiber app. Errors that escape handlers are
// rendered in the API error shape.
func NewAPIServer(listenAddress string, bodyLimitMB int, log logrus.FieldLogger) *APIServer {
	if bodyLimitMB <= 0 {
		bodyLimitMB = 10
	}
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "unifriend-api",
			ErrorHandler: response.FiberErrorHandler,
			BodyLimit:    bodyLimitMB * 1024 * 1024,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		}),
		listenAddress: listenAddress,
		log:           log,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.WithField("address", s.listenAddress).Info("Starting API Server")
	return s.app.Listen(s.listenAddress)
}

// Shutdown waits up to timeout for in-flight requests
func (s *APIServer) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}
