package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/airline-booking-service/internal/app/dto"
)

var errInvalidType = errors.New("invalid type")

type BookingService interface {
	BookTrip(ctx context.Context, req dto.BookTripRequest) (dto.BookTripResponse, error)
	CancelTrip(ctx context.Context, req dto.CancelTripRequest) (dto.CancelTripResponse, error)
	GetCustomer(ctx context.Context, req dto.GetCustomerRequest) (dto.Customer, error)
	GetSegment(ctx context.Context, req dto.GetSegmentRequest) (dto.Segment, error)
	FilterSegments(ctx context.Context, req dto.FilterSegmentsRequest) (dto.FilterSegmentsResponse, error)
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type BookingEndpoint struct {
	BookTrip       endpoint.Endpoint
	CancelTrip     endpoint.Endpoint
	GetCustomer    endpoint.Endpoint
	GetSegment     endpoint.Endpoint
	FilterSegments endpoint.Endpoint
	Stats          endpoint.Endpoint
}

func MakeBookingEndpoint(service BookingService) BookingEndpoint {
	return BookingEndpoint{
		BookTrip:       makeBookTripEndpoint(service),
		CancelTrip:     makeCancelTripEndpoint(service),
		GetCustomer:    makeGetCustomerEndpoint(service),
		GetSegment:     makeGetSegmentEndpoint(service),
		FilterSegments: makeFilterSegmentsEndpoint(service),
		Stats:          makeStatsEndpoint(service),
	}
}

func makeBookTripEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.BookTripRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		resp, err := service.BookTrip(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}

		return resp, nil
	}
}

func makeCancelTripEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.CancelTripRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		resp, err := service.CancelTrip(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}

		return resp, nil
	}
}

func makeGetCustomerEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.GetCustomerRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		customer, err := service.GetCustomer(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}

		return customer, nil
	}
}

func makeGetSegmentEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.GetSegmentRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		seg, err := service.GetSegment(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}

		return seg, nil
	}
}

func makeFilterSegmentsEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.FilterSegmentsRequest)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		resp, err := service.FilterSegments(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}

		return resp, nil
	}
}

func makeStatsEndpoint(service BookingService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		stats, err := service.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}

		return stats, nil
	}
}
