//go:build unit

package segment

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

func TestSort_Closure(t *testing.T) {
	segments := []*airline.FlightSegment{
		newSegment(t, "B2", "YYZ", "YUL", day.Add(9*time.Hour), 90, 500),
		newSegment(t, "A1", "YUL", "CDG", day.Add(12*time.Hour), 420, 5500),
		newSegment(t, "C3", "YVR", "YYZ", day.Add(6*time.Hour), 270, 3300),
		newSegment(t, "A0", "YOW", "YYZ", day.Add(9*time.Hour), 60, 400),
	}

	sortRequest := func(opt *SortOption, wantIDs []string) func(t *testing.T) {
		return func(t *testing.T) {
			sCopy := make([]*airline.FlightSegment, len(segments))
			copy(sCopy, segments)

			got := Sort(sCopy, opt)
			gotIDs := make([]string, len(got))
			for i, seg := range got {
				gotIDs[i] = seg.FlightID()
			}

			diff := cmp.Diff(wantIDs, gotIDs)
			if diff != "" {
				t.Fatalf("Sort result mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("default_departure_asc_ties_by_flight_id", sortRequest(nil, []string{"C3", "A0", "B2", "A1"}))
	t.Run("departure_desc", sortRequest(&SortOption{Field: SortDepartureTime, Order: OrderDesc}, []string{"A1", "B2", "A0", "C3"}))
	t.Run("duration_asc", sortRequest(&SortOption{Field: SortDuration}, []string{"A0", "B2", "C3", "A1"}))
	t.Run("distance_desc", sortRequest(&SortOption{Field: SortDistance, Order: OrderDesc}, []string{"A1", "C3", "B2", "A0"}))
	t.Run("flight_id_asc", sortRequest(&SortOption{Field: SortFlightID, Order: OrderAsc}, []string{"A0", "A1", "B2", "C3"}))
}
