package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/observability"
	"github.com/Chirag2510/QuizApp-React-DotNet/pkg/util"
)

// InternalServerErrorMessage replaces failure messages outside development mode.
const InternalServerErrorMessage = "Internal Server Error"

// ErrorEnvelope is the JSON body of every translated failure.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// RegisterMiddlewares attaches global middlewares. The request logger sits
// outside the error translator so it observes the final status code.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, development bool) {
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics, development))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, development bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = util.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				writeError(c, err, logger, metrics, development)
				err = nil
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, err error, logger *zap.Logger, metrics *observability.Metrics, development bool) {
	domainErr, status := classify(err)

	envelope := ErrorEnvelope{StatusCode: status}
	switch {
	case development:
		envelope.Message = domainErr.Message
		envelope.Details = string(domainErr.Stack)
	case domainErr.Kind == util.KindUnauthorized:
		envelope.Message = domainErr.Message
	default:
		envelope.Message = InternalServerErrorMessage
	}

	fields := []zap.Field{
		zap.String("request_id", observability.RequestIDFromContext(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.String("kind", string(domainErr.Kind)),
		zap.Error(domainErr),
	}
	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request failed", fields...)
	}
	metrics.RecordError(c.Route().Path, c.Method(), string(domainErr.Kind))

	c.Status(status)
	if jsonErr := c.JSON(envelope); jsonErr != nil {
		logger.Error("write error envelope", zap.Error(jsonErr))
	}
}

// classify maps err to a domain error and the status to send. Fiber's own
// errors keep their status code.
func classify(err error) (*util.DomainError, int) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		var de *util.DomainError
		if !errors.As(err, &de) {
			return util.NewDomainError(kindForStatus(fe.Code), fe.Message, err), fe.Code
		}
	}
	de := util.ToDomainError(err)
	return de, de.HTTPStatus
}

func kindForStatus(status int) util.Kind {
	switch status {
	case fiber.StatusNotFound:
		return util.KindNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return util.KindBadRequest
	case fiber.StatusUnauthorized:
		return util.KindUnauthorized
	case fiber.StatusConflict:
		return util.KindConflict
	default:
		return util.KindInternal
	}
}
