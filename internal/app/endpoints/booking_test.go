//go:build unit

package endpoints

import (
	"context"
	"errors"
	"testing"

	"github.com/ijalalfrz/airline-booking-service/internal/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStub = errors.New("stub failure")

type stubService struct {
	fail bool
}

func (s stubService) result() error {
	if s.fail {
		return errStub
	}
	return nil
}

func (s stubService) BookTrip(_ context.Context, req dto.BookTripRequest) (dto.BookTripResponse, error) {
	return dto.BookTripResponse{Trip: dto.Trip{ReservationID: req.ReservationID}}, s.result()
}

func (s stubService) CancelTrip(_ context.Context, req dto.CancelTripRequest) (dto.CancelTripResponse, error) {
	return dto.CancelTripResponse{Trip: dto.Trip{ReservationID: req.ReservationID}}, s.result()
}

func (s stubService) GetCustomer(_ context.Context, req dto.GetCustomerRequest) (dto.Customer, error) {
	return dto.Customer{ID: req.CustomerID}, s.result()
}

func (s stubService) GetSegment(_ context.Context, req dto.GetSegmentRequest) (dto.Segment, error) {
	return dto.Segment{FlightID: req.FlightID}, s.result()
}

func (s stubService) FilterSegments(_ context.Context, req dto.FilterSegmentsRequest) (dto.FilterSegmentsResponse, error) {
	return dto.FilterSegmentsResponse{Total: req.Limit}, s.result()
}

func (s stubService) Stats(_ context.Context) (dto.StatsResponse, error) {
	return dto.StatsResponse{TotalFlightFeeFormatted: "$0.00"}, s.result()
}

func TestMakeBookingEndpoint(t *testing.T) {
	ctx := context.Background()
	e := MakeBookingEndpoint(stubService{})

	got, err := e.BookTrip(ctx, &dto.BookTripRequest{ReservationID: "RES1"})
	require.NoError(t, err)
	assert.Equal(t, "RES1", got.(dto.BookTripResponse).Trip.ReservationID)

	got, err = e.CancelTrip(ctx, &dto.CancelTripRequest{ReservationID: "RES1"})
	require.NoError(t, err)
	assert.Equal(t, "RES1", got.(dto.CancelTripResponse).Trip.ReservationID)

	got, err = e.GetCustomer(ctx, &dto.GetCustomerRequest{CustomerID: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, got.(dto.Customer).ID)

	got, err = e.GetSegment(ctx, &dto.GetSegmentRequest{FlightID: "AC101"})
	require.NoError(t, err)
	assert.Equal(t, "AC101", got.(dto.Segment).FlightID)

	got, err = e.FilterSegments(ctx, &dto.FilterSegmentsRequest{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got.(dto.FilterSegmentsResponse).Total)

	got, err = e.Stats(ctx, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "$0.00", got.(dto.StatsResponse).TotalFlightFeeFormatted)
}

func TestMakeBookingEndpoint_InvalidType(t *testing.T) {
	ctx := context.Background()
	e := MakeBookingEndpoint(stubService{})

	var nilBooking *dto.BookTripRequest

	for name, call := range map[string]func() (interface{}, error){
		"book_trip":       func() (interface{}, error) { return e.BookTrip(ctx, dto.BookTripRequest{}) },
		"book_trip_nil":   func() (interface{}, error) { return e.BookTrip(ctx, nilBooking) },
		"cancel_trip":     func() (interface{}, error) { return e.CancelTrip(ctx, "RES1") },
		"get_customer":    func() (interface{}, error) { return e.GetCustomer(ctx, 7) },
		"get_segment":     func() (interface{}, error) { return e.GetSegment(ctx, nil) },
		"filter_segments": func() (interface{}, error) { return e.FilterSegments(ctx, dto.FilterSegmentsRequest{}) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			assert.ErrorIs(t, err, errInvalidType)
		})
	}
}

func TestMakeBookingEndpoint_ServiceError(t *testing.T) {
	e := MakeBookingEndpoint(stubService{fail: true})

	_, err := e.BookTrip(context.Background(), &dto.BookTripRequest{})
	assert.ErrorIs(t, err, errStub)
	assert.EqualError(t, err, "booking service: stub failure")

	_, err = e.Stats(context.Background(), nil)
	assert.ErrorIs(t, err, errStub)
}
