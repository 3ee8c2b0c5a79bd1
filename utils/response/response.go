package response

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/logger"
)

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Success returns a 200 response with body as-is
func Success(c *fiber.Ctx, body interface{}) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, body interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}

// Document flattens record into a JSON object and sets the extra keys on
// top of it.
func Document(record interface{}, extra fiber.Map) (fiber.Map, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	body := fiber.Map{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	for key, value := range extra {
		body[key] = value
	}
	return body, nil
}

// WithMessage flattens record into a JSON object and adds a message key.
func WithMessage(record interface{}, message string) (fiber.Map, error) {
	return Document(record, fiber.Map{"message": message})
}

// SuccessWithMessage echoes record with a human message
func SuccessWithMessage(c *fiber.Ctx, status int, record interface{}, message string) error {
	body, err := WithMessage(record, message)
	if err != nil {
		return InternalServerError(c, "Failed to encode response")
	}
	return c.Status(status).JSON(body)
}

// Error returns an error response. The category is the standard status text.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Error:   utils.StatusMessage(statusCode),
		Message: message,
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Authentication required"
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests from this IP, please try again later."
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError renders any error returned by a service. Internal failures are
// logged with their cause and answered with a generic message.
func FromError(c *fiber.Ctx, err error) error {
	message := "Internal server error"
	var serviceErr *services.Error
	if errors.As(err, &serviceErr) {
		message = serviceErr.Message
	}

	switch services.KindOf(err) {
	case services.KindValidation:
		return BadRequest(c, message)
	case services.KindUnauthenticated:
		return Unauthorized(c, message)
	case services.KindForbidden:
		return Forbidden(c, message)
	case services.KindNotFound:
		if serviceErr == nil {
			message = "Resource not found"
		}
		return NotFound(c, message)
	}

	logger.From(c).WithError(err).Error("request failed")
	return InternalServerError(c, message)
}

// FiberErrorHandler renders errors that escape handlers (unknown routes,
// body limit, recovered panics) in the same shape.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			logger.From(c).WithError(err).Error("request failed")
		}
		return Error(c, fiberErr.Code, fiberErr.Message)
	}
	return FromError(c, err)
}
