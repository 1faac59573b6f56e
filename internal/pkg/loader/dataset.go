package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

// Stats summarises a loaded dataset.
type Stats struct {
	Airports        int     `json:"airports"`
	Segments        int     `json:"segments"`
	Customers       int     `json:"customers"`
	Trips           int     `json:"trips"`
	SkippedTrips    int     `json:"skipped_trips"`
	SkippedSegments int     `json:"skipped_segments"`
	TotalMiles      int     `json:"total_miles"`
	TotalFlightFee  float64 `json:"total_flight_fee"`
}

// Dataset indexes every entity built from the dataset files. Trips booked
// after the load are tracked by AddTrip and RemoveTrip.
//
// Reservation ids are unique across all customers: an id stays claimed from
// ClaimReservation (or AddTrip) until ReleaseReservation or RemoveTrip.
type Dataset struct {
	catalog         *airline.AirportCatalog
	segmentsByID    map[string]*airline.FlightSegment
	segmentsByDate  map[time.Time][]*airline.FlightSegment
	customers       map[int]*airline.Customer
	skippedSegments int

	mu           sync.RWMutex
	trips        []*airline.Trip
	reservations map[string]struct{}
	skipped      int
}

func newDataset(catalog *airline.AirportCatalog) *Dataset {
	return &Dataset{
		catalog:        catalog,
		segmentsByID:   make(map[string]*airline.FlightSegment),
		segmentsByDate: make(map[time.Time][]*airline.FlightSegment),
		customers:      make(map[int]*airline.Customer),
		reservations:   make(map[string]struct{}),
	}
}

func (ds *Dataset) addSegments(ctx context.Context, rows [][]string, opts Options) error {
	for i, row := range rows {
		rec, err := parseSegment(row)
		if err != nil {
			return fmt.Errorf("segment row %d: %w", i+1, err)
		}

		// segments are addressed by flight id, the first row wins
		if _, exists := ds.segmentsByID[rec.flightID]; exists {
			slog.WarnContext(ctx, "skipping segment with duplicate flight id",
				slog.Int("row", i+1), slog.String("flight_id", rec.flightID))
			ds.skippedSegments++
			continue
		}

		depLoc, ok := ds.catalog.Location(rec.dep)
		if !ok {
			slog.WarnContext(ctx, "segment departs from unknown airport",
				slog.String("flight_id", rec.flightID), slog.String("airport", rec.dep))
		}
		arrLoc, ok := ds.catalog.Location(rec.arr)
		if !ok {
			slog.WarnContext(ctx, "segment arrives at unknown airport",
				slog.String("flight_id", rec.flightID), slog.String("airport", rec.arr))
		}

		seg, err := airline.NewFlightSegment(airline.SegmentParams{
			FlightID:      rec.flightID,
			Departure:     rec.departure,
			Arrival:       rec.arrival,
			BaseCostPerKm: opts.BaseCostPerKm,
			DistanceKm:    rec.distanceKm,
			DepAirportID:  rec.dep,
			ArrAirportID:  rec.arr,
			DepLocation:   depLoc,
			ArrLocation:   arrLoc,
			SeatCapacity:  opts.SeatCapacity,
		})
		if err != nil {
			return fmt.Errorf("segment row %d: %w", i+1, err)
		}

		day := dayOf(rec.departure)
		ds.segmentsByID[rec.flightID] = seg
		ds.segmentsByDate[day] = append(ds.segmentsByDate[day], seg)
	}

	for _, segments := range ds.segmentsByDate {
		sortByDeparture(segments)
	}

	return nil
}

func (ds *Dataset) addCustomers(rows [][]string, opts Options) error {
	for i, row := range rows {
		c, err := parseCustomer(row, opts.CustomerOptions)
		if err != nil {
			return fmt.Errorf("customer row %d: %w", i+1, err)
		}

		if _, exists := ds.customers[c.ID()]; exists {
			return fmt.Errorf("customer row %d: duplicate customer id %d", i+1, c.ID())
		}

		ds.customers[c.ID()] = c
	}

	return nil
}

// Airports returns the airport catalog.
func (ds *Dataset) Airports() *airline.AirportCatalog {
	return ds.catalog
}

// Segment looks up a segment by flight id.
func (ds *Dataset) Segment(flightID string) (*airline.FlightSegment, bool) {
	seg, ok := ds.segmentsByID[flightID]
	return seg, ok
}

// SegmentsOn returns the segments departing on the given day, ordered by
// departure time.
func (ds *Dataset) SegmentsOn(day time.Time) []*airline.FlightSegment {
	segments := ds.segmentsByDate[dayOf(day)]
	out := make([]*airline.FlightSegment, len(segments))
	copy(out, segments)

	return out
}

// Segments returns every segment ordered by departure time.
func (ds *Dataset) Segments() []*airline.FlightSegment {
	out := make([]*airline.FlightSegment, 0, len(ds.segmentsByID))
	for _, seg := range ds.segmentsByID {
		out = append(out, seg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, _ := out[i].Times()
		dj, _ := out[j].Times()
		if di.Equal(dj) {
			return out[i].FlightID() < out[j].FlightID()
		}
		return di.Before(dj)
	})

	return out
}

// Customer looks up a customer by id.
func (ds *Dataset) Customer(id int) (*airline.Customer, bool) {
	c, ok := ds.customers[id]
	return c, ok
}

// Customers returns every customer ordered by id.
func (ds *Dataset) Customers() []*airline.Customer {
	out := make([]*airline.Customer, 0, len(ds.customers))
	for _, c := range ds.customers {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })

	return out
}

// Trips returns every trip currently on record.
func (ds *Dataset) Trips() []*airline.Trip {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	out := make([]*airline.Trip, len(ds.trips))
	copy(out, ds.trips)

	return out
}

// HasReservation reports whether the reservation id is claimed by any customer.
func (ds *Dataset) HasReservation(reservationID string) bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	_, ok := ds.reservations[reservationID]
	return ok
}

// ClaimReservation reserves the id before any seat is taken. It fails with
// airline.ErrDuplicateBooking when the id is already claimed.
func (ds *Dataset) ClaimReservation(reservationID string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, ok := ds.reservations[reservationID]; ok {
		return fmt.Errorf("reservation %s: %w", reservationID, airline.ErrDuplicateBooking)
	}
	ds.reservations[reservationID] = struct{}{}

	return nil
}

// ReleaseReservation frees a claimed id whose booking did not go through.
func (ds *Dataset) ReleaseReservation(reservationID string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.reservations, reservationID)
}

// AddTrip records a trip booked after the load.
func (ds *Dataset) AddTrip(trip *airline.Trip) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.trips = append(ds.trips, trip)
	ds.reservations[trip.ReservationID()] = struct{}{}
}

// RemoveTrip forgets a cancelled trip.
func (ds *Dataset) RemoveTrip(reservationID string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.reservations, reservationID)
	for i, trip := range ds.trips {
		if trip.ReservationID() == reservationID {
			ds.trips = append(ds.trips[:i], ds.trips[i+1:]...)
			return
		}
	}
}

// Stats computes aggregate counters over the dataset.
func (ds *Dataset) Stats() Stats {
	ds.mu.RLock()
	trips, skipped := len(ds.trips), ds.skipped
	ds.mu.RUnlock()

	stats := Stats{
		Airports:        ds.catalog.Len(),
		Segments:        len(ds.segmentsByID),
		Customers:       len(ds.customers),
		Trips:           trips,
		SkippedTrips:    skipped,
		SkippedSegments: ds.skippedSegments,
	}

	for _, c := range ds.customers {
		stats.TotalMiles += c.Miles()
		stats.TotalFlightFee += c.LifetimeFlightCost()
	}

	return stats
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
