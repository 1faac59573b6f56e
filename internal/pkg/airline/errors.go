package airline

import (
	"net/http"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/exception"
)

var ErrSeatUnavailable = exception.New(http.StatusConflict, "seat unavailable")

var ErrDuplicateBooking = exception.New(http.StatusConflict, "duplicate booking")

var ErrUnknownCustomer = exception.New(http.StatusNotFound, "unknown customer")

var ErrUnknownTrip = exception.New(http.StatusNotFound, "unknown trip")

var ErrInvalidItinerary = exception.New(http.StatusBadRequest, "invalid itinerary")

var ErrInvalidSegment = exception.New(http.StatusBadRequest, "invalid flight segment")

var ErrUnknownCabinClass = exception.New(http.StatusBadRequest, "unknown cabin class")
