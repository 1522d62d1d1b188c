package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/middleware"
	"github.com/guttosm/quotepulse/internal/service"
)

// writeAggregatorError maps the aggregator error taxonomy to a status code:
//
//	invalid symbol        404
//	insufficient history  422 (body carries the single known bar)
//	division by zero      422 (body carries the latest bar)
//	invalid period        400
//	upstream failure      502, or 504 when it timed out
func writeAggregatorError(c *gin.Context, err error) {
	var upstream *service.UpstreamFetchError
	var short *service.InsufficientHistoryError
	var noChange *service.ChangeUnavailableError

	switch {
	case errors.As(err, &upstream):
		status := http.StatusBadGateway
		if isTimeout(err) {
			status = http.StatusGatewayTimeout
		}
		middleware.AbortWithError(c, status, "quote source unavailable", err)

	case errors.As(err, &short):
		resp := dto.DegradedResponse{ErrorResponse: dto.NewErrorResponse("insufficient history", err)}
		if n := len(short.Bars); n > 0 {
			last := short.Bars[n-1]
			resp.Latest = &last
		}
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)

	case errors.As(err, &noChange):
		latest := noChange.Latest
		resp := dto.DegradedResponse{ErrorResponse: dto.NewErrorResponse("change unavailable", err), Latest: &latest}
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)

	case errors.Is(err, service.ErrInvalidSymbol):
		middleware.AbortWithError(c, http.StatusNotFound, "invalid symbol", err)

	case errors.Is(err, service.ErrDivisionByZero):
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, "change unavailable", err)

	case errors.Is(err, service.ErrInvalidPeriod):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid period", err)

	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build snapshot", err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
