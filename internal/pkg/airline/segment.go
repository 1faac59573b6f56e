package airline

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// SeatChange describes what BookSeat did to the manifest.
type SeatChange int

const (
	// SeatUnchanged means the customer already held a seat of that class.
	SeatUnchanged SeatChange = iota
	// SeatBooked means a fresh seat was taken.
	SeatBooked
	// SeatClassChanged means an existing seat moved to another class.
	SeatClassChanged
)

// SegmentParams carries the construction data of a FlightSegment.
type SegmentParams struct {
	FlightID      string
	Departure     time.Time
	Arrival       time.Time
	BaseCostPerKm float64
	DistanceKm    float64
	DepAirportID  string
	ArrAirportID  string
	DepLocation   Location
	ArrLocation   Location
	SeatCapacity  map[CabinClass]int
}

// ManifestEntry is one (customer, class) pair holding a seat.
type ManifestEntry struct {
	CustomerID int        `json:"customer_id"`
	CabinClass CabinClass `json:"cabin_class"`
}

// FlightSegment owns the seat inventory and manifest of a single flight.
//
// Invariants, for every class c:
//
//	0 <= availability[c] <= capacity[c]
//	capacity[c] - availability[c] == len(manifest entries of class c)
//
// The manifest holds at most one entry per customer.
type FlightSegment struct {
	flightID      string
	departure     time.Time
	arrival       time.Time
	baseCostPerKm float64
	distanceKm    float64
	depAirportID  string
	arrAirportID  string
	depLocation   Location
	arrLocation   Location

	mu           sync.Mutex
	capacity     map[CabinClass]int
	availability map[CabinClass]int
	manifest     map[int]CabinClass
}

// NewFlightSegment validates p and returns a segment with full availability.
// A nil SeatCapacity uses DefaultSeatCapacity.
func NewFlightSegment(p SegmentParams) (*FlightSegment, error) {
	switch {
	case p.FlightID == "":
		return nil, fmt.Errorf("empty flight id: %w", ErrInvalidSegment)
	case !p.Departure.Before(p.Arrival):
		return nil, fmt.Errorf("flight %s departs at or after arrival: %w", p.FlightID, ErrInvalidSegment)
	case p.BaseCostPerKm < 0:
		return nil, fmt.Errorf("flight %s has negative base cost: %w", p.FlightID, ErrInvalidSegment)
	case p.DistanceKm < 0:
		return nil, fmt.Errorf("flight %s has negative distance: %w", p.FlightID, ErrInvalidSegment)
	case p.DepAirportID == p.ArrAirportID:
		return nil, fmt.Errorf("flight %s departs and arrives at %s: %w", p.FlightID, p.DepAirportID, ErrInvalidSegment)
	}

	capacity := p.SeatCapacity
	if capacity == nil {
		capacity = DefaultSeatCapacity
	}

	seg := &FlightSegment{
		flightID:      p.FlightID,
		departure:     p.Departure,
		arrival:       p.Arrival,
		baseCostPerKm: p.BaseCostPerKm,
		distanceKm:    p.DistanceKm,
		depAirportID:  p.DepAirportID,
		arrAirportID:  p.ArrAirportID,
		depLocation:   p.DepLocation,
		arrLocation:   p.ArrLocation,
		capacity:      make(map[CabinClass]int, len(CabinClasses)),
		availability:  make(map[CabinClass]int, len(CabinClasses)),
		manifest:      make(map[int]CabinClass),
	}

	for _, class := range CabinClasses {
		seats := capacity[class]
		if seats < 0 {
			return nil, fmt.Errorf("flight %s has negative %s capacity: %w", p.FlightID, class, ErrInvalidSegment)
		}
		seg.capacity[class] = seats
		seg.availability[class] = seats
	}

	return seg, nil
}

func (s *FlightSegment) String() string {
	return fmt.Sprintf("[%s]:%s->%s", s.flightID, s.depAirportID, s.arrAirportID)
}

func (s *FlightSegment) FlightID() string { return s.flightID }

// DepartureAirport returns the IATA code of the origin.
func (s *FlightSegment) DepartureAirport() string { return s.depAirportID }

// ArrivalAirport returns the IATA code of the destination.
func (s *FlightSegment) ArrivalAirport() string { return s.arrAirportID }

// Times returns (departure, arrival).
func (s *FlightSegment) Times() (time.Time, time.Time) { return s.departure, s.arrival }

func (s *FlightSegment) Duration() time.Duration { return s.arrival.Sub(s.departure) }

func (s *FlightSegment) BaseCostPerKm() float64 { return s.baseCostPerKm }

func (s *FlightSegment) DistanceKm() float64 { return s.distanceKm }

// Coordinates returns the departure and arrival locations.
func (s *FlightSegment) Coordinates() (Location, Location) { return s.depLocation, s.arrLocation }

func (s *FlightSegment) SeatCapacity(class CabinClass) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.capacity[class]
}

func (s *FlightSegment) SeatAvailability(class CabinClass) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.availability[class]
}

// CheckManifest reports whether cid holds a seat.
func (s *FlightSegment) CheckManifest(cid int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.manifest[cid]
	return ok
}

// CheckSeatClass returns the class held by cid, or false when cid holds none.
func (s *FlightSegment) CheckSeatClass(cid int) (CabinClass, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	class, ok := s.manifest[cid]
	return class, ok
}

// Manifest returns a copy ordered by customer id.
func (s *FlightSegment) Manifest() []ManifestEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ManifestEntry, 0, len(s.manifest))
	for cid, class := range s.manifest {
		out = append(out, ManifestEntry{CustomerID: cid, CabinClass: class})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CustomerID < out[j].CustomerID
	})

	return out
}

// BookSeat gives cid a seat of class. Re-booking the held class is a no-op;
// booking another class moves the seat when the target class has room.
// ErrSeatUnavailable is returned when the target class is full, leaving the
// manifest untouched.
func (s *FlightSegment) BookSeat(cid int, class CabinClass) (SeatChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	change, _, err := s.bookSeatLocked(cid, class)
	return change, err
}

// CancelSeat releases the seat held by cid. It is a no-op when cid holds none.
func (s *FlightSegment) CancelSeat(cid int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelSeatLocked(cid)
}

func (s *FlightSegment) bookSeatLocked(cid int, class CabinClass) (SeatChange, CabinClass, error) {
	if !class.valid() {
		return SeatUnchanged, "", fmt.Errorf("%q: %w", class, ErrUnknownCabinClass)
	}

	current, held := s.manifest[cid]
	if held && current == class {
		return SeatUnchanged, current, nil
	}

	if s.availability[class] <= 0 {
		return SeatUnchanged, current, fmt.Errorf("flight %s has no %s seats left: %w",
			s.flightID, class, ErrSeatUnavailable)
	}

	s.availability[class]--
	s.manifest[cid] = class

	if held {
		s.availability[current]++
		return SeatClassChanged, current, nil
	}

	return SeatBooked, "", nil
}

func (s *FlightSegment) cancelSeatLocked(cid int) {
	class, ok := s.manifest[cid]
	if !ok {
		return
	}

	delete(s.manifest, cid)
	s.availability[class]++
}

// undoLocked reverts a successful bookSeatLocked.
func (s *FlightSegment) undoLocked(cid int, change SeatChange, previous CabinClass) {
	switch change {
	case SeatBooked:
		s.cancelSeatLocked(cid)
	case SeatClassChanged:
		current := s.manifest[cid]
		s.availability[current]++
		s.availability[previous]--
		s.manifest[cid] = previous
	}
}
