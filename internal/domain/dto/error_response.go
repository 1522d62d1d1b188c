package dto

import (
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// ErrorResponse is the standard JSON error body returned by every endpoint.
//
// Fields:
//   - Message: human readable summary of the failure.
//   - ErrorDetails: the underlying error text, omitted when there is none.
//   - Timestamp: when the error response was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid symbol"`
	ErrorDetails string    `json:"error,omitempty" example:"no data for ZZZZ/1d"`
	Timestamp    time.Time `json:"timestamp" example:"2025-09-12T14:30:00Z"`
}

// Error implements the error interface so an ErrorResponse can travel through c.Error().
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// DegradedResponse is an ErrorResponse for a request that could not produce
// full metrics but still knows the latest bar (a single-bar series, or a zero
// previous close).
type DegradedResponse struct {
	ErrorResponse
	Latest *models.Bar `json:"latest,omitempty"`
}
