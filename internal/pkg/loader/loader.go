package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

// Files holds the paths of the four dataset files.
type Files struct {
	Airports  string
	Customers string
	Segments  string
	Trips     string
}

// Sources holds readers for the four dataset tables.
type Sources struct {
	Airports  io.Reader
	Customers io.Reader
	Segments  io.Reader
	Trips     io.Reader
}

// Options tune how entities are built.
type Options struct {
	BaseCostPerKm   float64
	SeatCapacity    map[airline.CabinClass]int
	CustomerOptions []airline.CustomerOption
}

// LoadFiles opens every file of files and calls Load.
func LoadFiles(ctx context.Context, files Files, opts Options) (*Dataset, error) {
	var (
		src    Sources
		closer []io.Closer
	)
	defer func() {
		for _, c := range closer {
			c.Close()
		}
	}()

	for _, f := range []struct {
		path string
		dst  *io.Reader
	}{
		{files.Airports, &src.Airports},
		{files.Customers, &src.Customers},
		{files.Segments, &src.Segments},
		{files.Trips, &src.Trips},
	} {
		fh, err := os.Open(f.path)
		if err != nil {
			return nil, fmt.Errorf("open dataset file: %w", err)
		}
		closer = append(closer, fh)
		*f.dst = fh
	}

	return Load(ctx, src, opts)
}

// Load builds airports, segments and customers, then books every recorded
// trip. Trips that cannot be booked are logged and skipped.
func Load(ctx context.Context, src Sources, opts Options) (*Dataset, error) {
	if opts.BaseCostPerKm == 0 {
		opts.BaseCostPerKm = airline.DefaultBaseCostPerKm
	}

	airportRows, err := readAll(src.Airports)
	if err != nil {
		return nil, fmt.Errorf("read airports: %w", err)
	}
	catalog, err := parseAirports(airportRows)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "airports created", slog.Int("count", catalog.Len()))

	ds := newDataset(catalog)

	segmentRows, err := readAll(src.Segments)
	if err != nil {
		return nil, fmt.Errorf("read segments: %w", err)
	}
	if err := ds.addSegments(ctx, segmentRows, opts); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "flight segments created", slog.Int("count", len(ds.segmentsByID)),
		slog.Int("skipped", ds.skippedSegments))

	customerRows, err := readAll(src.Customers)
	if err != nil {
		return nil, fmt.Errorf("read customers: %w", err)
	}
	if err := ds.addCustomers(customerRows, opts); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "customers created", slog.Int("count", len(ds.customers)))

	tripRows, err := readAll(src.Trips)
	if err != nil {
		return nil, fmt.Errorf("read trips: %w", err)
	}
	ds.bookTrips(ctx, tripRows)
	slog.InfoContext(ctx, "trips created",
		slog.Int("count", len(ds.trips)),
		slog.Int("skipped", ds.skipped))

	return ds, nil
}

func readAll(r io.Reader) ([][]string, error) {
	if r == nil {
		return nil, errors.New("missing source")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}

func (ds *Dataset) bookTrips(ctx context.Context, rows [][]string) {
	for i, row := range rows {
		rec, err := parseTrip(row)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed trip row", slog.Int("row", i+1), slog.String("error", err.Error()))
			ds.skipped++
			continue
		}

		if _, taken := ds.reservations[rec.reservationID]; taken {
			slog.WarnContext(ctx, "skipping trip with duplicate reservation id",
				slog.String("reservation_id", rec.reservationID),
				slog.Int("customer_id", rec.customerID))
			ds.skipped++
			continue
		}

		customer, ok := ds.customers[rec.customerID]
		if !ok {
			slog.WarnContext(ctx, "skipping trip of unknown customer",
				slog.String("reservation_id", rec.reservationID),
				slog.Int("customer_id", rec.customerID))
			ds.skipped++
			continue
		}

		legs, err := ds.resolveLegs(rec)
		if err != nil {
			slog.WarnContext(ctx, "skipping trip with unresolved legs",
				slog.String("reservation_id", rec.reservationID),
				slog.String("error", err.Error()))
			ds.skipped++
			continue
		}

		trip, err := customer.BookTrip(rec.reservationID, legs, rec.date)
		if err != nil {
			slog.WarnContext(ctx, "skipping unbookable trip",
				slog.String("reservation_id", rec.reservationID),
				slog.String("error", err.Error()))
			ds.skipped++
			continue
		}

		ds.trips = append(ds.trips, trip)
		ds.reservations[trip.ReservationID()] = struct{}{}
	}
}

// resolveLegs picks, for each requested leg, the first segment of the trip
// date leaving the requested airport no earlier than the previous leg lands.
func (ds *Dataset) resolveLegs(rec tripRecord) ([]airline.Leg, error) {
	candidates := ds.segmentsByDate[rec.date]
	legs := make([]airline.Leg, 0, len(rec.legs))

	var notBefore time.Time
	for _, req := range rec.legs {
		var found *airline.FlightSegment
		for _, seg := range candidates {
			dep, _ := seg.Times()
			if seg.DepartureAirport() == req.airport && !dep.Before(notBefore) {
				found = seg
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("no segment from %s on %s", req.airport, rec.date.Format(dateLayout))
		}

		legs = append(legs, airline.Leg{Segment: found, CabinClass: req.class})
		_, notBefore = found.Times()
	}

	return legs, nil
}

func sortByDeparture(segments []*airline.FlightSegment) {
	sort.SliceStable(segments, func(i, j int) bool {
		di, _ := segments[i].Times()
		dj, _ := segments[j].Times()
		return di.Before(dj)
	})
}
