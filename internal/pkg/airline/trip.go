package airline

import (
	"fmt"
	"time"
)

// Leg is one segment of a trip with the class booked on it.
type Leg struct {
	Segment    *FlightSegment
	CabinClass CabinClass
}

// Trip is an ordered itinerary owned by one customer. Trips are only built
// by Customer.BookTrip and never change afterwards.
type Trip struct {
	reservationID string
	customerID    int
	tripDate      time.Time
	legs          []Leg
}

func (t *Trip) ReservationID() string { return t.reservationID }

func (t *Trip) CustomerID() int { return t.customerID }

// TripDate returns the calendar date of the trip (midnight, UTC).
func (t *Trip) TripDate() time.Time { return t.tripDate }

// Legs returns a copy of the booked legs.
func (t *Trip) Legs() []Leg {
	out := make([]Leg, len(t.legs))
	copy(out, t.legs)

	return out
}

// FlightSegments returns the segments in itinerary order.
func (t *Trip) FlightSegments() []*FlightSegment {
	out := make([]*FlightSegment, len(t.legs))
	for i, leg := range t.legs {
		out[i] = leg.Segment
	}

	return out
}

// InFlightMinutes is the time spent in the air, each leg truncated to whole minutes.
func (t *Trip) InFlightMinutes() int {
	total := 0
	for _, leg := range t.legs {
		total += int(leg.Segment.Duration() / time.Minute)
	}

	return total
}

// TotalTripMinutes is the elapsed time from first departure to last arrival,
// layovers included. Zero for a trip without legs.
func (t *Trip) TotalTripMinutes() int {
	if len(t.legs) == 0 {
		return 0
	}

	first, _ := t.legs[0].Segment.Times()
	_, last := t.legs[len(t.legs)-1].Segment.Times()

	return int(last.Sub(first) / time.Minute)
}

// validateItinerary checks that legs is non-empty, well formed, that every leg
// departs on tripDate and no earlier than the previous one arrives.
func validateItinerary(legs []Leg, tripDate time.Time) error {
	if len(legs) == 0 {
		return fmt.Errorf("no legs: %w", ErrInvalidItinerary)
	}

	day := dateOnly(tripDate)
	var prevArrival time.Time
	for i, leg := range legs {
		if leg.Segment == nil {
			return fmt.Errorf("leg %d has no segment: %w", i, ErrInvalidItinerary)
		}
		if !leg.CabinClass.valid() {
			return fmt.Errorf("leg %d class %q: %w", i, leg.CabinClass, ErrUnknownCabinClass)
		}

		dep, arr := leg.Segment.Times()
		if !dateOnly(dep).Equal(day) {
			return fmt.Errorf("leg %d (%s) departs %s, trip date is %s: %w",
				i, leg.Segment.FlightID(), dep.Format(time.DateOnly), day.Format(time.DateOnly), ErrInvalidItinerary)
		}
		if i > 0 && dep.Before(prevArrival) {
			return fmt.Errorf("leg %d (%s) departs before leg %d arrives: %w",
				i, leg.Segment.FlightID(), i-1, ErrInvalidItinerary)
		}
		prevArrival = arr
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
