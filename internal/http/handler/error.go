package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"helloapi/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response. code is a machine-readable
// short code (e.g. "SERVICE_UNAVAILABLE"); message must not carry internal error details.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler. Routing errors (404, 405)
// keep Fiber's default response; everything else is rendered in the standard
// error envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			if status == fiber.StatusNotFound || status == fiber.StatusMethodNotAllowed {
				return fiber.DefaultErrorHandler(c, err)
			}
		}

		code, message := errorCode(status)
		return writeError(c, status, code, message)
	}
}

func errorCode(status int) (string, string) {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST", "bad request"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE", "request body too large"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE", "service unavailable"
	}
	if status >= 400 && status < 500 {
		return "CLIENT_ERROR", "request could not be processed"
	}
	return "INTERNAL_ERROR", "internal server error"
}
