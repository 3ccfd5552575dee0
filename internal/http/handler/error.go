package handler

import (
	"github.com/gofiber/fiber/v2"

	"marcapi/internal/http/middleware"
	"marcapi/internal/service"
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

type errorSpec struct {
	status  int
	message string
}

// serviceErrors maps service error codes to responses. Unlisted codes are internal errors.
var serviceErrors = map[string]errorSpec{
	service.CodeURLRequired:    {fiber.StatusBadRequest, "url query parameter is required"},
	service.CodeInvalidURL:     {fiber.StatusBadRequest, "url must be an absolute http or https url"},
	service.CodeHostNotAllowed: {fiber.StatusBadRequest, "url host is not allowed"},
	service.CodeInvalidID:      {fiber.StatusBadRequest, "id must be a positive integer"},
	service.CodeInvalidFormat:  {fiber.StatusBadRequest, "unsupported output format"},
	service.CodeInvalidRecord:  {fiber.StatusUnprocessableEntity, "catalogue record could not be converted to MARC"},
	service.CodeRecordTooLong:  {fiber.StatusUnprocessableEntity, "record exceeds the ISO 2709 size limits"},
	service.CodeUpstream:       {fiber.StatusBadGateway, "catalogue web service request failed"},
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "UPSTREAM_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError classifies err with service.ErrorCode and writes the matching response.
func writeServiceError(c *fiber.Ctx, err error) error {
	code := service.ErrorCode(err)
	spec, ok := serviceErrors[code]
	if !ok {
		return writeError(c, fiber.StatusInternalServerError, service.CodeInternal, "internal server error")
	}
	return writeError(c, spec.status, code, spec.message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, service.CodeInternal, "internal server error")
		}
	}
}
