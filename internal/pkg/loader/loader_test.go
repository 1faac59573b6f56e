//go:build unit

package loader

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAirports = `YYZ,Toronto Pearson,-79.63,43.68
YUL,Montreal Trudeau,-73.74,45.47
CDG,"Paris, Charles de Gaulle",2.55,49.01
`
	testSegments = `AC101,YYZ,YUL,2024:03:01,08:00,09:30,1000
AC202,YUL,CDG,2024:03:01,12:00,19:00,1000
AC303,YYZ,YUL,2024:03:01,06:00,07:30,1000
AC404,CDG,YYZ,2024:03:01,23:00,01:30,6000
`
	testCustomers = `100001,Ada Lovelace,36,British
100002,Grace Hopper,45,American
`
	testTrips = `RES1,100001,2024-03-01,"[('YYZ','Economy'),('YUL','Business')]"
RES2,100002,2024-03-01,[('YYZ', 'Economy')]
RES3,999999,2024-03-01,"[('YYZ','Economy')]"
RES4,100002,2024-03-02,"[('YYZ','Economy')]"
RES5,100001,2024-03-01,"[('YYZ','First')]"
`
)

func testSources(airports, segments, customers, trips string) Sources {
	return Sources{
		Airports:  strings.NewReader(airports),
		Customers: strings.NewReader(customers),
		Segments:  strings.NewReader(segments),
		Trips:     strings.NewReader(trips),
	}
}

func TestLoad(t *testing.T) {
	ds, err := Load(context.Background(), testSources(testAirports, testSegments, testCustomers, testTrips), Options{})
	require.NoError(t, err)

	t.Run("stats", func(t *testing.T) {
		want := Stats{
			Airports:       3,
			Segments:       4,
			Customers:      2,
			Trips:          2,
			SkippedTrips:   3,
			TotalMiles:     7000,
			TotalFlightFee: 428.75 + 122.5,
		}

		if diff := cmp.Diff(want, ds.Stats(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Fatalf("stats mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("airport_name_with_comma", func(t *testing.T) {
		cdg, ok := ds.Airports().Get("CDG")
		require.True(t, ok)
		assert.Equal(t, "Paris, Charles de Gaulle", cdg.Name())
	})

	t.Run("earliest_matching_segment_is_booked", func(t *testing.T) {
		ada, ok := ds.Customer(100001)
		require.True(t, ok)

		trip, ok := ada.Trip("RES1")
		require.True(t, ok)

		legs := trip.Legs()
		require.Len(t, legs, 2)
		assert.Equal(t, "AC303", legs[0].Segment.FlightID())
		assert.Equal(t, airline.Economy, legs[0].CabinClass)
		assert.Equal(t, "AC202", legs[1].Segment.FlightID())
		assert.Equal(t, airline.Business, legs[1].CabinClass)

		assert.Equal(t, 6000, ada.Miles())
		cost, _ := ada.CostOfTrip("RES1")
		assert.InDelta(t, 428.75, cost, 1e-9)
	})

	t.Run("seat_inventory", func(t *testing.T) {
		seg, ok := ds.Segment("AC303")
		require.True(t, ok)
		assert.Equal(t, 148, seg.SeatAvailability(airline.Economy))

		unused, ok := ds.Segment("AC101")
		require.True(t, ok)
		assert.Equal(t, 150, unused.SeatAvailability(airline.Economy))
	})

	t.Run("overnight_arrival", func(t *testing.T) {
		seg, ok := ds.Segment("AC404")
		require.True(t, ok)

		_, arr := seg.Times()
		assert.Equal(t, time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC), arr)
		assert.Equal(t, 150*time.Minute, seg.Duration())
	})

	t.Run("segments_on_day_ordered", func(t *testing.T) {
		var got []string
		for _, seg := range ds.SegmentsOn(time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)) {
			got = append(got, seg.FlightID())
		}

		if diff := cmp.Diff([]string{"AC303", "AC101", "AC202", "AC404"}, got); diff != "" {
			t.Fatalf("segments mismatch (-want +got):\n%s", diff)
		}
		assert.Empty(t, ds.SegmentsOn(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	})
}

func TestLoad_Errors(t *testing.T) {
	loadRequest := func(src Sources, wantErr string) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := Load(context.Background(), src, Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), wantErr)
		}
	}

	t.Run("bad_longitude", loadRequest(
		testSources("YYZ,Toronto,west,43.68\n", testSegments, testCustomers, testTrips), "longitude"))
	t.Run("duplicate_airport", loadRequest(
		testSources(testAirports+"YYZ,Again,0,0\n", testSegments, testCustomers, testTrips), "duplicate airport"))
	t.Run("bad_segment_date", loadRequest(
		testSources(testAirports, "AC101,YYZ,YUL,2024-03-01,08:00,09:30,1000\n", testCustomers, testTrips), "segment date"))
	t.Run("short_customer_row", loadRequest(
		testSources(testAirports, testSegments, "100001,Ada\n", testTrips), "customer row 1"))
	t.Run("missing_source", loadRequest(Sources{}, "missing source"))
}

func TestLoad_RespectsOptions(t *testing.T) {
	ds, err := Load(context.Background(), testSources(testAirports, testSegments, testCustomers, ""), Options{
		BaseCostPerKm: 0.2,
		SeatCapacity:  map[airline.CabinClass]int{airline.Economy: 10, airline.Business: 2},
	})
	require.NoError(t, err)

	seg, ok := ds.Segment("AC101")
	require.True(t, ok)
	assert.Equal(t, 10, seg.SeatCapacity(airline.Economy))
	assert.Equal(t, 2, seg.SeatCapacity(airline.Business))
	assert.InDelta(t, 0.2, seg.BaseCostPerKm(), 1e-9)
}

func TestParseLegs(t *testing.T) {
	parseLegsRequest := func(raw string, want []legRequest, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			got, err := parseLegs(raw)
			if wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmp.AllowUnexported(legRequest{})); diff != "" {
				t.Fatalf("legs mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("single_quotes", parseLegsRequest("[('YYZ','Economy'),('YUL','Business')]", []legRequest{
		{airport: "YYZ", class: airline.Economy},
		{airport: "YUL", class: airline.Business},
	}, false))
	t.Run("spaces_and_double_quotes", parseLegsRequest(`[( "YYZ" , "economy" )]`, []legRequest{
		{airport: "YYZ", class: airline.Economy},
	}, false))
	t.Run("empty", parseLegsRequest("[]", nil, true))
	t.Run("missing_class", parseLegsRequest("[('YYZ')]", nil, true))
}

func TestLoad_SkipsDuplicateFlightID(t *testing.T) {
	ds, err := Load(context.Background(), testSources(testAirports,
		testSegments+"AC101,YYZ,YUL,2024:03:02,08:00,09:30,1000\n", testCustomers, ""), Options{})
	require.NoError(t, err)

	stats := ds.Stats()
	assert.Equal(t, 4, stats.Segments)
	assert.Equal(t, 1, stats.SkippedSegments)

	seg, ok := ds.Segment("AC101")
	require.True(t, ok)
	dep, _ := seg.Times()
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), dep)
	assert.Empty(t, ds.SegmentsOn(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestLoad_ReservationIDUniqueAcrossCustomers(t *testing.T) {
	trips := `RES1,100001,2024-03-01,"[('YYZ','Economy')]"
RES1,100002,2024-03-01,"[('YUL','Business')]"
`
	ds, err := Load(context.Background(), testSources(testAirports, testSegments, testCustomers, trips), Options{})
	require.NoError(t, err)

	stats := ds.Stats()
	assert.Equal(t, 1, stats.Trips)
	assert.Equal(t, 1, stats.SkippedTrips)
	assert.True(t, ds.HasReservation("RES1"))

	ada, _ := ds.Customer(100001)
	grace, _ := ds.Customer(100002)
	assert.Len(t, ada.Trips(), 1)
	assert.Empty(t, grace.Trips())

	// the rejected row never took a seat
	seg, _ := ds.Segment("AC202")
	assert.False(t, seg.CheckManifest(grace.ID()))
	assert.Equal(t, seg.SeatCapacity(airline.Business), seg.SeatAvailability(airline.Business))
}

func TestDataset_ClaimReservation(t *testing.T) {
	ds, err := Load(context.Background(), testSources(testAirports, testSegments, testCustomers, testTrips), Options{})
	require.NoError(t, err)

	assert.ErrorIs(t, ds.ClaimReservation("RES1"), airline.ErrDuplicateBooking)

	require.NoError(t, ds.ClaimReservation("RES-NEW"))
	assert.ErrorIs(t, ds.ClaimReservation("RES-NEW"), airline.ErrDuplicateBooking)

	ds.ReleaseReservation("RES-NEW")
	assert.False(t, ds.HasReservation("RES-NEW"))
	assert.NoError(t, ds.ClaimReservation("RES-NEW"))
}

func TestDataset_TrackTrips(t *testing.T) {
	ds, err := Load(context.Background(), testSources(testAirports, testSegments, testCustomers, ""), Options{})
	require.NoError(t, err)

	seg, _ := ds.Segment("AC101")
	grace, _ := ds.Customer(100002)

	trip, err := grace.BookTrip("RES-NEW", []airline.Leg{{Segment: seg, CabinClass: airline.Economy}}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	ds.AddTrip(trip)
	assert.Len(t, ds.Trips(), 1)
	assert.True(t, ds.HasReservation("RES-NEW"))

	ds.RemoveTrip("RES-NEW")
	assert.Empty(t, ds.Trips())
	assert.False(t, ds.HasReservation("RES-NEW"))
}
