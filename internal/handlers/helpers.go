package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/finance"
	"budgetdash/internal/middleware"
	"budgetdash/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// Clock returns the reference instant a request is evaluated at.
type Clock func() time.Time

// LocalClock reads the wall clock in loc.
func LocalClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// parsePathID validates a UUID path parameter and returns it in canonical form.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseMonthQuery reads an optional "YYYY-MM" query parameter.
func parseMonthQuery(c *gin.Context, name string) (*finance.MonthKey, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	key, err := finance.ParseMonthKey(v)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// parseUUIDQuery reads an optional UUID query parameter.
func parseUUIDQuery(c *gin.Context, name string) (*string, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return &id, nil
}

// bindError turns a request binding failure into INVALID_INPUT.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes err in the shared error envelope.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondWithError(c, err)
}
