package loader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

const (
	dateLayout        = "2006-01-02"
	segmentDateLayout = "2006:01:02"
	clockLayout       = "15:04"
)

var legPattern = regexp.MustCompile(`\(([^()]*)\)`)

type legRequest struct {
	airport string
	class   airline.CabinClass
}

type tripRecord struct {
	reservationID string
	customerID    int
	date          time.Time
	legs          []legRequest
}

// airports: code,name,longitude,latitude
func parseAirports(rows [][]string) (*airline.AirportCatalog, error) {
	airports := make([]airline.Airport, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("airport row %d: expected 4 fields, got %d", i+1, len(row))
		}

		lon, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("airport row %d longitude: %w", i+1, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("airport row %d latitude: %w", i+1, err)
		}

		airports = append(airports, airline.NewAirport(strings.TrimSpace(row[0]), row[1],
			airline.Location{Longitude: lon, Latitude: lat}))
	}

	return airline.NewAirportCatalog(airports)
}

// customers: id,name,age,nationality
func parseCustomer(row []string, opts []airline.CustomerOption) (*airline.Customer, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("expected 4 fields, got %d", len(row))
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	age, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return nil, fmt.Errorf("customer age: %w", err)
	}

	return airline.NewCustomer(id, row[1], age, strings.TrimSpace(row[3]), opts...), nil
}

type segmentRecord struct {
	flightID   string
	dep, arr   string
	departure  time.Time
	arrival    time.Time
	distanceKm float64
}

// segments: flight_id,dep,arr,YYYY:MM:DD,HH:MM,HH:MM,distance_km
// An arrival clock earlier than the departure clock lands the next day.
func parseSegment(row []string) (segmentRecord, error) {
	if len(row) < 7 {
		return segmentRecord{}, fmt.Errorf("expected 7 fields, got %d", len(row))
	}

	day, err := time.Parse(segmentDateLayout, strings.TrimSpace(row[3]))
	if err != nil {
		return segmentRecord{}, fmt.Errorf("segment date: %w", err)
	}
	depClock, err := time.Parse(clockLayout, strings.TrimSpace(row[4]))
	if err != nil {
		return segmentRecord{}, fmt.Errorf("departure time: %w", err)
	}
	arrClock, err := time.Parse(clockLayout, strings.TrimSpace(row[5]))
	if err != nil {
		return segmentRecord{}, fmt.Errorf("arrival time: %w", err)
	}
	distance, err := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
	if err != nil {
		return segmentRecord{}, fmt.Errorf("distance: %w", err)
	}

	departure := atClock(day, depClock)
	arrival := atClock(day, arrClock)
	if !arrival.After(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	return segmentRecord{
		flightID:   strings.TrimSpace(row[0]),
		dep:        strings.TrimSpace(row[1]),
		arr:        strings.TrimSpace(row[2]),
		departure:  departure,
		arrival:    arrival,
		distanceKm: distance,
	}, nil
}

// trips: reservation_id,customer_id,YYYY-MM-DD,"[('YYZ','Economy'),...]"
func parseTrip(row []string) (tripRecord, error) {
	if len(row) < 4 {
		return tripRecord{}, fmt.Errorf("expected 4 fields, got %d", len(row))
	}

	cid, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return tripRecord{}, fmt.Errorf("customer id: %w", err)
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(row[2]))
	if err != nil {
		return tripRecord{}, fmt.Errorf("trip date: %w", err)
	}

	// an unquoted leg list is split by the csv reader, glue it back
	legs, err := parseLegs(strings.Join(row[3:], ","))
	if err != nil {
		return tripRecord{}, err
	}

	return tripRecord{
		reservationID: strings.TrimSpace(row[0]),
		customerID:    cid,
		date:          date,
		legs:          legs,
	}, nil
}

func parseLegs(raw string) ([]legRequest, error) {
	matches := legPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no legs in %q", raw)
	}

	legs := make([]legRequest, 0, len(matches))
	for _, m := range matches {
		parts := strings.Split(m[1], ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("malformed leg %q", m[0])
		}

		class, err := airline.ParseCabinClass(unquote(parts[1]))
		if err != nil {
			return nil, err
		}

		legs = append(legs, legRequest{airport: unquote(parts[0]), class: class})
	}

	return legs, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

func atClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
