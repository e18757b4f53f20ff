package middleware

import (
	"errors"
	"net/http"

	"examforge/internal/domain"
	"examforge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	Status      int            `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			return c.Status(statusCode).JSON(ErrorResponse{
				Code:        string(domainErr.Code),
				Message:     domainErr.Message,
				Status:      statusCode,
				Details:     domainErr.Context,
				Suggestions: suggestionsFor(domainErr),
			})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		// Handle unknown errors
		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat,
		domain.CodeOutOfRange, domain.CodeInvalidConfiguration:
		return http.StatusBadRequest
	case domain.CodeInsufficientPool:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// suggestionsFor returns actionable hints for recoverable generation errors.
func suggestionsFor(err *domain.DomainError) []string {
	switch err.Code {
	case domain.CodeInsufficientPool:
		return []string{
			"reduce the exercise count",
			"remove topic or difficulty filters",
			"allow repeating questions between variants",
			"add more questions to the bank",
		}
	case domain.CodeInvalidConfiguration:
		return []string{
			"check the exercise count is positive",
			"loosen the topic or difficulty filters",
		}
	default:
		return nil
	}
}
