package airline

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

type ledgerEntry struct {
	trip  *Trip
	cost  float64
	miles int
	seq   int
}

// CustomerOption configures a Customer.
type CustomerOption func(*Customer)

// WithAccrualReversal makes CancelTrip subtract the cancelled trip's cost
// and miles from the customer's totals. Status is never downgraded.
func WithAccrualReversal() CustomerOption {
	return func(c *Customer) {
		c.reverseOnCancel = true
	}
}

// Customer owns a ledger of booked trips and the frequent flyer account.
type Customer struct {
	id          int
	name        string
	age         int
	nationality string

	reverseOnCancel bool

	mu           sync.Mutex
	ledger       map[string]ledgerEntry
	bookings     int
	status       Status
	miles        int
	lifetimeCost float64
}

func NewCustomer(id int, name string, age int, nationality string, opts ...CustomerOption) *Customer {
	c := &Customer{
		id:          id,
		name:        name,
		age:         age,
		nationality: nationality,
		ledger:      make(map[string]ledgerEntry),
		status:      Prestige,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Customer) ID() int { return c.id }

func (c *Customer) Name() string { return c.name }

func (c *Customer) Age() int { return c.age }

func (c *Customer) Nationality() string { return c.nationality }

func (c *Customer) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// Miles returns the accrued status miles.
func (c *Customer) Miles() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.miles
}

// LifetimeFlightCost is the sum of all amounts charged.
func (c *Customer) LifetimeFlightCost() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lifetimeCost
}

// Trips returns the booked trips ordered by reservation id.
func (c *Customer) Trips() []*Trip {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Trip, 0, len(c.ledger))
	for _, entry := range c.ledger {
		out = append(out, entry.trip)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ReservationID() < out[j].ReservationID()
	})

	return out
}

func (c *Customer) Trip(reservationID string) (*Trip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.ledger[reservationID]
	return entry.trip, ok
}

// CostOfTrip returns the amount charged for the trip, or false when the
// trip is not in the ledger.
func (c *Customer) CostOfTrip(reservationID string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.ledger[reservationID]
	return entry.cost, ok
}

// Quote returns the amount BookTrip would charge for legs right now.
func (c *Customer) Quote(legs []Leg) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ApplyDiscount(rawCost(legs), c.status)
}

// BookTrip books a seat on every leg, charges the trip and accrues miles.
//
// Booking is all or nothing: when a leg cannot be seated the legs already
// applied are reverted and the error is returned. The fare discount is the
// one of the status held when the call starts; the ledger stores the
// discounted amount.
func (c *Customer) BookTrip(reservationID string, legs []Leg, tripDate time.Time) (*Trip, error) {
	if reservationID == "" {
		return nil, fmt.Errorf("empty reservation id: %w", ErrInvalidItinerary)
	}
	if err := validateItinerary(legs, tripDate); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.ledger[reservationID]; ok {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, ErrDuplicateBooking)
	}

	if err := c.seatLegs(legs); err != nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, err)
	}

	cost := ApplyDiscount(rawCost(legs), c.status)
	miles := 0
	for _, leg := range legs {
		miles += LegMiles(leg.Segment, leg.CabinClass)
	}

	trip := &Trip{
		reservationID: reservationID,
		customerID:    c.id,
		tripDate:      dateOnly(tripDate),
		legs:          append([]Leg(nil), legs...),
	}

	c.bookings++
	c.ledger[reservationID] = ledgerEntry{trip: trip, cost: cost, miles: miles, seq: c.bookings}
	c.lifetimeCost += cost
	c.miles += miles

	if next := StatusForMiles(c.miles); statusRank(next) > statusRank(c.status) {
		c.status = next
	}

	return trip, nil
}

// CancelTrip releases the trip's seats and removes it from the ledger.
//
// A segment still flown by another trip in the ledger keeps the seat, moved
// back to the class of the most recently booked of those trips. When that
// class has no room left the cancellation fails with ErrSeatUnavailable and
// nothing changes.
func (c *Customer) CancelTrip(reservationID string) (*Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.ledger[reservationID]
	if !ok {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, ErrUnknownTrip)
	}

	if err := c.releaseLegs(entry.trip.legs, c.keptClassesLocked(reservationID)); err != nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, err)
	}

	delete(c.ledger, reservationID)

	if c.reverseOnCancel {
		c.lifetimeCost -= entry.cost
		if c.lifetimeCost < 0 {
			c.lifetimeCost = 0
		}
		c.miles -= entry.miles
		if c.miles < 0 {
			c.miles = 0
		}
	}

	return entry.trip, nil
}

// keptClassesLocked maps every segment flown by a trip other than
// reservationID to the class booked by the latest such trip.
func (c *Customer) keptClassesLocked(reservationID string) map[*FlightSegment]CabinClass {
	kept := make(map[*FlightSegment]CabinClass)
	seqs := make(map[*FlightSegment]int)

	for rid, entry := range c.ledger {
		if rid == reservationID {
			continue
		}
		for _, leg := range entry.trip.legs {
			if seq, ok := seqs[leg.Segment]; ok && seq > entry.seq {
				continue
			}
			seqs[leg.Segment] = entry.seq
			kept[leg.Segment] = leg.CabinClass
		}
	}

	return kept
}

// releaseLegs cancels the seat of every leg not in kept and re-seats the
// kept ones in their class. All segment locks are held so a failed re-seat
// leaves every manifest as it was.
func (c *Customer) releaseLegs(legs []Leg, kept map[*FlightSegment]CabinClass) error {
	segments := lockOrder(legs)
	for _, seg := range segments {
		seg.mu.Lock()
	}
	defer func() {
		for _, seg := range segments {
			seg.mu.Unlock()
		}
	}()

	applied := make([]appliedLeg, 0, len(segments))
	for _, seg := range segments {
		class, ok := kept[seg]
		if !ok {
			continue
		}

		change, previous, err := seg.bookSeatLocked(c.id, class)
		if err != nil {
			for j := len(applied) - 1; j >= 0; j-- {
				a := applied[j]
				a.segment.undoLocked(c.id, a.change, a.previous)
			}

			return fmt.Errorf("restore %s seat: %w", class, err)
		}
		applied = append(applied, appliedLeg{segment: seg, change: change, previous: previous})
	}

	for _, seg := range segments {
		if _, ok := kept[seg]; !ok {
			seg.cancelSeatLocked(c.id)
		}
	}

	return nil
}

type appliedLeg struct {
	segment  *FlightSegment
	change   SeatChange
	previous CabinClass
}

// seatLegs holds the lock of every distinct segment while applying the
// bookings so a failed leg can always be reverted.
func (c *Customer) seatLegs(legs []Leg) error {
	segments := lockOrder(legs)
	for _, seg := range segments {
		seg.mu.Lock()
	}
	defer func() {
		for _, seg := range segments {
			seg.mu.Unlock()
		}
	}()

	applied := make([]appliedLeg, 0, len(legs))
	for i, leg := range legs {
		change, previous, err := leg.Segment.bookSeatLocked(c.id, leg.CabinClass)
		if err != nil {
			for j := len(applied) - 1; j >= 0; j-- {
				a := applied[j]
				a.segment.undoLocked(c.id, a.change, a.previous)
			}

			return fmt.Errorf("leg %d: %w", i, err)
		}
		applied = append(applied, appliedLeg{segment: leg.Segment, change: change, previous: previous})
	}

	return nil
}

// lockOrder returns the distinct segments of legs sorted by flight id and
// departure so concurrent bookings acquire locks in the same order.
func lockOrder(legs []Leg) []*FlightSegment {
	seen := make(map[*FlightSegment]struct{}, len(legs))
	out := make([]*FlightSegment, 0, len(legs))
	for _, leg := range legs {
		if _, ok := seen[leg.Segment]; ok {
			continue
		}
		seen[leg.Segment] = struct{}{}
		out = append(out, leg.Segment)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].flightID != out[j].flightID {
			return out[i].flightID < out[j].flightID
		}
		return out[i].departure.Before(out[j].departure)
	})

	return out
}

func rawCost(legs []Leg) float64 {
	total := 0.0
	for _, leg := range legs {
		total += LegCost(leg.Segment, leg.CabinClass)
	}

	return total
}
