package inventory

import (
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

// Snapshot is the seat inventory of one segment at a point in time.
type Snapshot struct {
	FlightID     string                     `json:"flight_id"`
	Capacity     map[airline.CabinClass]int `json:"capacity"`
	Availability map[airline.CabinClass]int `json:"availability"`
	Passengers   int                        `json:"passengers"`
	TakenAt      time.Time                  `json:"taken_at"`
}

func SnapshotOf(seg *airline.FlightSegment, now time.Time) Snapshot {
	snapshot := Snapshot{
		FlightID:     seg.FlightID(),
		Capacity:     make(map[airline.CabinClass]int, len(airline.CabinClasses)),
		Availability: make(map[airline.CabinClass]int, len(airline.CabinClasses)),
		Passengers:   len(seg.Manifest()),
		TakenAt:      now.UTC(),
	}

	for _, class := range airline.CabinClasses {
		snapshot.Capacity[class] = seg.SeatCapacity(class)
		snapshot.Availability[class] = seg.SeatAvailability(class)
	}

	return snapshot
}
