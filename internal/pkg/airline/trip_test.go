//go:build unit

package airline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrip_Minutes(t *testing.T) {
	tripMinutesRequest := func(legs []Leg, wantInFlight, wantTotal int) func(t *testing.T) {
		return func(t *testing.T) {
			trip := &Trip{reservationID: "RES", customerID: 1, tripDate: tripDate, legs: legs}

			assert.Equal(t, wantInFlight, trip.InFlightMinutes())
			assert.Equal(t, wantTotal, trip.TotalTripMinutes())
		}
	}

	first := newTestSegment(t, "AC101", "YYZ", "YUL", baseTime, 90, 500, nil)
	second := newTestSegment(t, "AC202", "YUL", "CDG", baseTime.Add(3*time.Hour), 420, 5500, nil)

	// 59.5 minutes in the air truncates to 59
	odd, err := NewFlightSegment(SegmentParams{
		FlightID:      "AC303",
		Departure:     baseTime,
		Arrival:       baseTime.Add(59*time.Minute + 30*time.Second),
		BaseCostPerKm: DefaultBaseCostPerKm,
		DistanceKm:    300,
		DepAirportID:  "YYZ",
		ArrAirportID:  "YOW",
	})
	assert.NoError(t, err)

	t.Run("no_legs", tripMinutesRequest(nil, 0, 0))
	t.Run("single_leg", tripMinutesRequest([]Leg{{Segment: first, CabinClass: Economy}}, 90, 90))
	t.Run("layover_counted_in_total", tripMinutesRequest([]Leg{
		{Segment: first, CabinClass: Economy},
		{Segment: second, CabinClass: Economy},
	}, 510, 600))
	t.Run("truncated_minutes", tripMinutesRequest([]Leg{{Segment: odd, CabinClass: Economy}}, 59, 59))
}

func TestTrip_LegsAreCopied(t *testing.T) {
	seg := newTestSegment(t, "AC101", "YYZ", "YUL", baseTime, 90, 500, nil)
	trip := &Trip{reservationID: "RES", legs: []Leg{{Segment: seg, CabinClass: Economy}}}

	legs := trip.Legs()
	legs[0].CabinClass = Business

	assert.Equal(t, Economy, trip.Legs()[0].CabinClass)
}
