//go:build unit

package segment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/stretchr/testify/require"
)

type directory map[int]*airline.Customer

func (d directory) Customer(id int) (*airline.Customer, bool) {
	c, ok := d[id]
	return c, ok
}

func (d directory) Customers() []*airline.Customer {
	out := make([]*airline.Customer, 0, len(d))
	for _, c := range d {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })

	return out
}

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newSegment(t *testing.T, fid, dep, arr string, departure time.Time, minutes int, distance float64) *airline.FlightSegment {
	t.Helper()

	seg, err := airline.NewFlightSegment(airline.SegmentParams{
		FlightID:      fid,
		Departure:     departure,
		Arrival:       departure.Add(time.Duration(minutes) * time.Minute),
		BaseCostPerKm: airline.DefaultBaseCostPerKm,
		DistanceKm:    distance,
		DepAirportID:  dep,
		ArrAirportID:  arr,
	})
	require.NoError(t, err)

	return seg
}

func fixture(t *testing.T) (directory, []*airline.FlightSegment) {
	t.Helper()

	segments := []*airline.FlightSegment{
		newSegment(t, "AC101", "YYZ", "YUL", day.Add(8*time.Hour), 90, 500),
		newSegment(t, "AC202", "YUL", "CDG", day.Add(12*time.Hour), 420, 5500),
		newSegment(t, "AC303", "CDG", "YYZ", day.Add(23*time.Hour), 480, 6000),
		newSegment(t, "AC404", "YVR", "YYZ", day.AddDate(0, 0, 2).Add(9*time.Hour), 270, 3300),
	}

	ada := airline.NewCustomer(100001, "Ada Lovelace", 36, "British")
	_, err := ada.BookTrip("RES1", []airline.Leg{
		{Segment: segments[0], CabinClass: airline.Economy},
		{Segment: segments[1], CabinClass: airline.Business},
	}, day)
	require.NoError(t, err)

	grace := airline.NewCustomer(100002, "Grace Hopper", 45, "American")
	_, err = grace.BookTrip("RES2", []airline.Leg{{Segment: segments[3], CabinClass: airline.Economy}}, day.AddDate(0, 0, 2))
	require.NoError(t, err)

	return directory{ada.ID(): ada, grace.ID(): grace}, segments
}

func TestApply(t *testing.T) {
	dir, all := fixture(t)

	applyRequest := func(filters []Filter, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			got := Apply(context.Background(), dir, all, filters)
			gotIDs := make([]string, len(got))
			for i, seg := range got {
				gotIDs[i] = seg.FlightID()
			}

			diff := cmp.Diff(wantIDs, gotIDs)
			if diff != "" {
				t.Fatalf("Apply result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	allIDs := []string{"AC101", "AC202", "AC303", "AC404"}

	t.Run("no_filters", applyRequest(nil, allIDs))
	t.Run("customer", applyRequest([]Filter{{Kind: KindCustomer, Value: "100001"}}, []string{"AC101", "AC202"}))
	t.Run("unknown_customer_ignored", applyRequest([]Filter{{Kind: KindCustomer, Value: "999"}}, allIDs))
	t.Run("non_numeric_customer_ignored", applyRequest([]Filter{{Kind: KindCustomer, Value: "ada"}}, allIDs))
	t.Run("duration_less", applyRequest([]Filter{{Kind: KindDuration, Value: "L300"}}, []string{"AC101", "AC404"}))
	t.Run("duration_greater", applyRequest([]Filter{{Kind: KindDuration, Value: "G420"}}, []string{"AC303"}))
	t.Run("duration_bad_prefix", applyRequest([]Filter{{Kind: KindDuration, Value: "X300"}}, allIDs))
	t.Run("duration_bad_number", applyRequest([]Filter{{Kind: KindDuration, Value: "Labc"}}, allIDs))
	t.Run("location_either_end", applyRequest([]Filter{{Kind: KindLocation, Value: "YYZ"}}, []string{"AC101", "AC303", "AC404"}))
	t.Run("location_departure", applyRequest([]Filter{{Kind: KindLocation, Value: "DYYZ"}}, []string{"AC101"}))
	t.Run("location_arrival", applyRequest([]Filter{{Kind: KindLocation, Value: "AYYZ"}}, []string{"AC303", "AC404"}))
	t.Run("location_invalid", applyRequest([]Filter{{Kind: KindLocation, Value: "TORONTO"}}, allIDs))
	t.Run("date_slash", applyRequest([]Filter{{Kind: KindDate, Value: "2024-03-01/2024-03-01"}}, []string{"AC101", "AC202"}))
	t.Run("date_comma_includes_overnight", applyRequest([]Filter{{Kind: KindDate, Value: "2024-03-01,2024-03-02"}}, []string{"AC101", "AC202", "AC303"}))
	t.Run("date_invalid", applyRequest([]Filter{{Kind: KindDate, Value: "2024-03-01"}}, allIDs))
	t.Run("date_bad_value", applyRequest([]Filter{{Kind: KindDate, Value: "2024-13-01/2024-03-02"}}, allIDs))
	t.Run("trip", applyRequest([]Filter{{Kind: KindTrip, Value: "RES2"}}, []string{"AC404"}))
	t.Run("unknown_trip_ignored", applyRequest([]Filter{{Kind: KindTrip, Value: "NOPE"}}, allIDs))
	t.Run("unknown_kind_ignored", applyRequest([]Filter{{Kind: "weather", Value: "sunny"}}, allIDs))
	t.Run("chained", applyRequest([]Filter{
		{Kind: KindLocation, Value: "YYZ"},
		{Kind: KindDuration, Value: "G100"},
	}, []string{"AC303", "AC404"}))
	t.Run("reset_restores_all", applyRequest([]Filter{
		{Kind: KindTrip, Value: "RES2"},
		{Kind: KindReset},
		{Kind: KindLocation, Value: "DYUL"},
	}, []string{"AC202"}))
}
