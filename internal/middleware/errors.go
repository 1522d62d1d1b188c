package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/logger"
)

// ErrorHandler renders the last error attached with c.Error as a
// dto.ErrorResponse when the handler did not write a body itself.
//
// A handler that only set a status (c.Status or gin's AbortWithError) keeps
// that status; otherwise the response is 500.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Size() > 0 {
		return
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	last := c.Errors.Last()
	logger.L().Error().
		Str("request_id", requestID(c)).
		Err(last.Err).
		Int("status", status).
		Msg("request failed")

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(http.StatusText(status), last.Err))
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with the given
// status. err is optional and is also attached to the context for logging.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
