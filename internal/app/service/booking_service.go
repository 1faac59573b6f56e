package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ijalalfrz/airline-booking-service/internal/app/dto"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/event"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/inventory"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/loader"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/logger"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/metrics"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/segment"
)

type InventoryCacher interface {
	GetLockKey(reservationID string) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	SetSnapshot(ctx context.Context, snapshot inventory.Snapshot, expiration time.Duration) error
}

type BookingLimiter interface {
	Allow(ctx context.Context, customerID int) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, evt event.TripEvent) error
}

type BookingService struct {
	Dataset          *loader.Dataset
	Cache            InventoryCacher
	Limiter          BookingLimiter
	Publisher        EventPublisher
	LockTimeout      time.Duration
	CacheExpiration  time.Duration
	Now              func() time.Time
	NewReservationID func() string
}

func NewBookingService(dataset *loader.Dataset,
	cache InventoryCacher, limiter BookingLimiter, publisher EventPublisher,
	lockTimeout time.Duration, cacheExpiration time.Duration) *BookingService {
	return &BookingService{
		Dataset:          dataset,
		Cache:            cache,
		Limiter:          limiter,
		Publisher:        publisher,
		LockTimeout:      lockTimeout,
		CacheExpiration:  cacheExpiration,
		Now:              time.Now,
		NewReservationID: uuid.NewString,
	}
}

// BookTrip seats the customer on every leg of the itinerary or on none.
// BookTrip godoc
// @Summary      Book a trip
// @Tags         Bookings
// @Description  Book an itinerary of flight segments for a customer
// @Param        request  body      dto.BookTripRequest  true  "Booking"
// @Success      200      {object}  dto.BookTripResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      429      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/bookings [post]
func (s *BookingService) BookTrip(ctx context.Context, req dto.BookTripRequest) (dto.BookTripResponse, error) {
	startTime := s.Now()
	defer func() {
		metrics.BookingLatency.Observe(time.Since(startTime).Seconds())
	}()

	reservationID := req.ReservationID
	if reservationID == "" {
		reservationID = s.NewReservationID()
	}
	ctx = logger.WithBooking(ctx, req.CustomerID, reservationID)

	customer, ok := s.Dataset.Customer(req.CustomerID)
	if !ok {
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.BookTripResponse{}, airline.ErrUnknownCustomer
	}

	legs, err := s.resolveLegs(req.Legs)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.BookTripResponse{}, err
	}

	allowed, err := s.Limiter.Allow(ctx, req.CustomerID)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return dto.BookTripResponse{}, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.BookTripResponse{}, ErrRateLimitExceeded
	}

	// the reservation lock keeps two replicas from racing on the same
	// reservation id; seat inventory itself is guarded by the segments
	lockKey := s.Cache.GetLockKey(reservationID)
	release, err := s.lock(ctx, lockKey)
	if err != nil {
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.BookTripResponse{}, err
	}
	defer release()

	// reservation ids are unique across customers
	if err := s.Dataset.ClaimReservation(reservationID); err != nil {
		slog.InfoContext(ctx, "booking rejected", slog.String("reason", err.Error()))
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.BookTripResponse{}, fmt.Errorf("book trip: %w", err)
	}

	trip, err := customer.BookTrip(reservationID, legs, req.ParsedTripDate())
	if err != nil {
		s.Dataset.ReleaseReservation(reservationID)
		slog.InfoContext(ctx, "booking rejected", slog.String("reason", err.Error()))
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.BookTripResponse{}, fmt.Errorf("book trip: %w", err)
	}
	s.Dataset.AddTrip(trip)

	cost, _ := customer.CostOfTrip(reservationID)

	s.refreshInventory(ctx, trip)
	s.publish(ctx, event.TypeTripBooked, customer, trip, cost)

	metrics.BookingsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	for _, leg := range legs {
		metrics.SeatsBooked.WithLabelValues(string(leg.CabinClass)).Inc()
	}

	slog.InfoContext(ctx, "trip booked",
		slog.Int("legs", len(legs)),
		slog.Float64("cost", cost),
		slog.String("status", string(customer.Status())))

	return dto.BookTripResponse{
		Trip:     dto.NewTrip(trip, cost),
		Customer: dto.NewCustomer(customer, false),
	}, nil
}

// CancelTrip godoc
// @Summary      Cancel a trip
// @Tags         Bookings
// @Description  Cancel a booked trip and release its seats
// @Param        request  body      dto.CancelTripRequest  true  "Cancellation"
// @Success      200      {object}  dto.CancelTripResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/bookings/cancel [post]
func (s *BookingService) CancelTrip(ctx context.Context, req dto.CancelTripRequest) (dto.CancelTripResponse, error) {
	ctx = logger.WithBooking(ctx, req.CustomerID, req.ReservationID)

	customer, ok := s.Dataset.Customer(req.CustomerID)
	if !ok {
		metrics.CancellationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.CancelTripResponse{}, airline.ErrUnknownCustomer
	}

	release, err := s.lock(ctx, s.Cache.GetLockKey(req.ReservationID))
	if err != nil {
		metrics.CancellationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.CancelTripResponse{}, err
	}
	defer release()

	cost, _ := customer.CostOfTrip(req.ReservationID)

	trip, err := customer.CancelTrip(req.ReservationID)
	if err != nil {
		metrics.CancellationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.CancelTripResponse{}, fmt.Errorf("cancel trip: %w", err)
	}
	s.Dataset.RemoveTrip(req.ReservationID)

	s.refreshInventory(ctx, trip)
	s.publish(ctx, event.TypeTripCancelled, customer, trip, cost)

	metrics.CancellationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	slog.InfoContext(ctx, "trip cancelled")

	return dto.CancelTripResponse{
		Trip:     dto.NewTrip(trip, cost),
		Customer: dto.NewCustomer(customer, false),
	}, nil
}

// GetCustomer godoc
// @Summary      Get customer
// @Tags         Customers
// @Description  Get a customer with status, miles and booked trips
// @Param        customerID  path      int  true  "Customer ID"
// @Success      200         {object}  dto.Customer
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/v1/customers/{customerID} [get]
func (s *BookingService) GetCustomer(_ context.Context, req dto.GetCustomerRequest) (dto.Customer, error) {
	customer, ok := s.Dataset.Customer(req.CustomerID)
	if !ok {
		return dto.Customer{}, airline.ErrUnknownCustomer
	}

	return dto.NewCustomer(customer, true), nil
}

// GetSegment godoc
// @Summary      Get flight segment
// @Tags         Segments
// @Description  Get a flight segment with its seat inventory
// @Param        flightID  path      string  true  "Flight ID"
// @Success      200       {object}  dto.Segment
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/v1/segments/{flightID} [get]
func (s *BookingService) GetSegment(_ context.Context, req dto.GetSegmentRequest) (dto.Segment, error) {
	seg, ok := s.Dataset.Segment(req.FlightID)
	if !ok {
		return dto.Segment{}, ErrUnknownSegment
	}

	return dto.NewSegment(seg), nil
}

// FilterSegments godoc
// @Summary      Filter flight segments
// @Tags         Segments
// @Description  Apply a chain of filters to all flight segments and sort the result
// @Param        request  body      dto.FilterSegmentsRequest  true  "Filters"
// @Success      200      {object}  dto.FilterSegmentsResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/segments/filter [post]
func (s *BookingService) FilterSegments(ctx context.Context, req dto.FilterSegmentsRequest) (dto.FilterSegmentsResponse, error) {
	segments := segment.Apply(ctx, s.Dataset, s.Dataset.Segments(), req.Filters)
	segments = segment.Sort(segments, req.SortOption)

	total := len(segments)
	if req.Limit > 0 && len(segments) > req.Limit {
		segments = segments[:req.Limit]
	}

	out := make([]dto.Segment, len(segments))
	for i, seg := range segments {
		out[i] = dto.NewSegment(seg)
	}

	return dto.FilterSegmentsResponse{
		Total:    total,
		Segments: out,
	}, nil
}

// Stats godoc
// @Summary      Dataset statistics
// @Tags         Stats
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/v1/stats [get]
func (s *BookingService) Stats(_ context.Context) (dto.StatsResponse, error) {
	return dto.NewStatsResponse(s.Dataset.Stats()), nil
}

func (s *BookingService) resolveLegs(reqLegs []dto.BookTripLeg) ([]airline.Leg, error) {
	legs := make([]airline.Leg, 0, len(reqLegs))
	for _, l := range reqLegs {
		seg, ok := s.Dataset.Segment(l.FlightID)
		if !ok {
			return nil, fmt.Errorf("%s: %w", l.FlightID, ErrUnknownSegment)
		}

		class, err := airline.ParseCabinClass(l.CabinClass)
		if err != nil {
			return nil, err
		}

		legs = append(legs, airline.Leg{Segment: seg, CabinClass: class})
	}

	return legs, nil
}

func (s *BookingService) lock(ctx context.Context, key string) (func(), error) {
	acquired, err := s.Cache.AcquireLock(ctx, key, s.LockTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return nil, ErrBookingInProgress
	}

	return func() {
		if err := s.Cache.ReleaseLock(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to release lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}

// refreshInventory is best effort; the in-memory segments stay authoritative.
func (s *BookingService) refreshInventory(ctx context.Context, trip *airline.Trip) {
	seen := make(map[string]struct{})
	for _, seg := range trip.FlightSegments() {
		if _, ok := seen[seg.FlightID()]; ok {
			continue
		}
		seen[seg.FlightID()] = struct{}{}

		if err := s.Cache.SetSnapshot(ctx, inventory.SnapshotOf(seg, s.Now()), s.CacheExpiration); err != nil {
			slog.WarnContext(ctx, "failed to cache inventory snapshot",
				slog.String("flight_id", seg.FlightID()),
				slog.String("error", err.Error()))
		}
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, customer *airline.Customer, trip *airline.Trip, cost float64) {
	segments := trip.FlightSegments()
	flightIDs := make([]string, len(segments))
	for i, seg := range segments {
		flightIDs[i] = seg.FlightID()
	}

	err := s.Publisher.Publish(ctx, event.TripEvent{
		Type:           eventType,
		ReservationID:  trip.ReservationID(),
		CustomerID:     customer.ID(),
		TripDate:       trip.TripDate().Format(time.DateOnly),
		FlightIDs:      flightIDs,
		Cost:           cost,
		CustomerMiles:  customer.Miles(),
		CustomerStatus: string(customer.Status()),
		OccurredAt:     s.Now().UTC(),
	})
	if err != nil {
		metrics.EventPublishErrors.Inc()
		slog.WarnContext(ctx, "failed to publish trip event",
			slog.String("type", eventType),
			slog.String("error", err.Error()))
	}
}
