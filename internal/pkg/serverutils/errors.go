package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is the service-level error carried up to the HTTP layer. Services
// return these; controllers propagate them and ErrorHandlerMiddleware maps
// them onto status codes and the JSON envelope.
type AppError struct {
	Code      int
	Message   string
	IsBlocked bool
}

func (e *AppError) Error() string {
	return e.Message
}

func BadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func Internal(message string) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message}
}

// UpstreamBlocked marks a turn the model provider refused to answer. It is a
// client-error-class response carrying the block flag, not a 5xx.
func UpstreamBlocked(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message, IsBlocked: true}
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := AsAppError(err); ok {
			return ctx.Status(appErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    appErr.Code,
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusInternalServerError,
			"message": err.Error(),
		})
	}
}
