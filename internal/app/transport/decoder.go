package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ijalalfrz/airline-booking-service/internal/app/dto"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/exception"
)

var errInvalidCustomerID = exception.New(http.StatusBadRequest, "customer_id must be a positive number")

func decodeGetCustomerRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "customerID"))
	if err != nil {
		return nil, errInvalidCustomerID.WithCause(err)
	}

	req := &dto.GetCustomerRequest{CustomerID: id}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

func decodeGetSegmentRequest(_ context.Context, r *http.Request) (interface{}, error) {
	req := &dto.GetSegmentRequest{FlightID: chi.URLParam(r, "flightID")}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}
