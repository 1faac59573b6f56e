package segment

import (
	"cmp"
	"sort"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

const (
	SortDepartureTime = "departure_time"
	SortDuration      = "duration"
	SortDistance      = "distance"
	SortFlightID      = "flight_id"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type SortOption struct {
	Field string `json:"field" validate:"omitempty,oneof=departure_time duration distance flight_id"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
}

// Sort orders segments in place and returns them. Ties fall back to flight id.
func Sort(segments []*airline.FlightSegment, opt *SortOption) []*airline.FlightSegment {
	var (
		field = SortDepartureTime
		order = OrderAsc
	)
	if opt != nil {
		if opt.Field != "" {
			field = opt.Field
		}
		if opt.Order != "" {
			order = opt.Order
		}
	}

	var by func(a, b *airline.FlightSegment) int
	switch field {
	case SortDuration:
		by = func(a, b *airline.FlightSegment) int { return cmp.Compare(a.Duration(), b.Duration()) }
	case SortDistance:
		by = func(a, b *airline.FlightSegment) int { return cmp.Compare(a.DistanceKm(), b.DistanceKm()) }
	case SortFlightID:
		by = func(a, b *airline.FlightSegment) int { return 0 }
	default:
		by = func(a, b *airline.FlightSegment) int {
			da, _ := a.Times()
			db, _ := b.Times()
			return da.Compare(db)
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		c := by(segments[i], segments[j])
		if c == 0 {
			c = cmp.Compare(segments[i].FlightID(), segments[j].FlightID())
		}

		if order == OrderDesc {
			return c > 0
		}
		return c < 0
	})

	return segments
}
