package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"arverify-node/internal/common/errors"
)

const requestIDKey = "request_id"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	Code      errors.ErrorCode `json:"code"`
	RequestID string           `json:"request_id,omitempty"`
}

// Recovery answers panics with a 500 instead of dropping the connection.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("panic", fmt.Sprintf("%v", recovered)).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		SendError(c, errors.New(errors.ErrCodeInternal, "internal error"), logger)
		c.Abort()
	})
}

// RequestID propagates X-Request-ID or assigns a fresh uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or "unknown".
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}

// SendError writes appErr as JSON with the status derived from its code.
func SendError(c *gin.Context, appErr *errors.AppError, logger zerolog.Logger) {
	requestID := GetRequestID(c)
	appErr.WithRequestID(requestID)

	logError(appErr, logger, c)

	c.JSON(appErr.HTTPStatus(), ErrorResponse{
		Status:    "error",
		Message:   appErr.Message,
		Code:      appErr.Code,
		RequestID: requestID,
	})
}

func logError(appErr *errors.AppError, logger zerolog.Logger, c *gin.Context) {
	var event *zerolog.Event
	switch {
	case appErr.IsValidation(), appErr.IsRejection():
		event = logger.Info()
	case appErr.IsExternal():
		event = logger.Warn()
	default:
		event = logger.Error()
	}

	event = event.
		Str("request_id", appErr.RequestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)
	if len(appErr.Details) > 0 {
		event = event.Interface("details", appErr.Details)
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}
	event.Msg("Request failed")
}

// HandleErrorWrapper converts errors recorded with c.Error into JSON responses.
func HandleErrorWrapper(logger zerolog.Logger) func(gin.HandlerFunc) gin.HandlerFunc {
	return func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			handler(c)

			if len(c.Errors) == 0 || c.Writer.Written() {
				return
			}
			err := c.Errors.Last().Err

			if appErr, ok := errors.AsAppError(err); ok {
				SendError(c, appErr, logger)
				return
			}

			SendError(c, errors.Wrap(err, errors.ErrCodeInternal, "internal error"), logger)
		}
	}
}

// NotFound answers unknown routes in the same error format.
func NotFound(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		appErr := errors.New(errors.ErrCodeBadRequest, "route not found")
		c.JSON(http.StatusNotFound, ErrorResponse{
			Status:    "error",
			Message:   appErr.Message,
			Code:      appErr.Code,
			RequestID: GetRequestID(c),
		})
		logger.Debug().Str("path", c.Request.URL.Path).Msg("Route not found")
	}
}
