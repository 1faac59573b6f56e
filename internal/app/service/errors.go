package service

import (
	"net/http"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/exception"
)

var ErrUnknownSegment = exception.ApplicationError{
	Message:    "unknown flight segment",
	StatusCode: http.StatusNotFound,
}

var ErrBookingInProgress = exception.ApplicationError{
	Message:    "reservation is being processed by another request",
	StatusCode: http.StatusConflict,
}

var ErrRateLimitExceeded = exception.ApplicationError{
	Message:    "booking rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
