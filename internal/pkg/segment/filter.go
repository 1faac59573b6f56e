package segment

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
)

type Kind string

const (
	KindReset    Kind = "reset"
	KindCustomer Kind = "customer"
	KindDuration Kind = "duration"
	KindLocation Kind = "location"
	KindDate     Kind = "date"
	KindTrip     Kind = "trip"
)

// Filter narrows a segment list. Value is interpreted per Kind:
//
//	customer  customer id
//	duration  Lnnn (shorter than nnn minutes) or Gnnn (longer)
//	location  XXX (either end), DXXX (departs), AXXX (arrives)
//	date      YYYY-MM-DD/YYYY-MM-DD or YYYY-MM-DD,YYYY-MM-DD, inclusive
//	trip      reservation id
//
// An invalid Value leaves the input unchanged.
type Filter struct {
	Kind  Kind   `json:"kind" validate:"required,oneof=reset customer duration location date trip"`
	Value string `json:"value" validate:"required_unless=Kind reset"`
}

// Directory resolves the customers a filter refers to.
type Directory interface {
	Customer(id int) (*airline.Customer, bool)
	Customers() []*airline.Customer
}

// Apply runs filters in order starting from all. A reset filter restores all.
func Apply(ctx context.Context, dir Directory, all []*airline.FlightSegment, filters []Filter) []*airline.FlightSegment {
	data := all
	for _, f := range filters {
		if f.Kind == KindReset {
			data = all
			continue
		}

		data = apply(ctx, dir, data, f)
	}

	return data
}

func apply(ctx context.Context, dir Directory, data []*airline.FlightSegment, f Filter) []*airline.FlightSegment {
	var (
		results []*airline.FlightSegment
		ok      bool
	)

	switch f.Kind {
	case KindCustomer:
		results, ok = byCustomer(dir, data, f.Value)
	case KindDuration:
		results, ok = byDuration(data, f.Value)
	case KindLocation:
		results, ok = byLocation(data, f.Value)
	case KindDate:
		results, ok = byDate(data, f.Value)
	case KindTrip:
		results, ok = byTrip(dir, data, f.Value)
	}

	if !ok {
		slog.DebugContext(ctx, "ignoring invalid filter",
			slog.String("kind", string(f.Kind)),
			slog.String("value", f.Value))
		return data
	}

	return results
}

func byCustomer(dir Directory, data []*airline.FlightSegment, value string) ([]*airline.FlightSegment, bool) {
	cid, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, false
	}
	if _, known := dir.Customer(cid); !known {
		return nil, false
	}

	return keep(data, func(seg *airline.FlightSegment) bool {
		return seg.CheckManifest(cid)
	}), true
}

func byDuration(data []*airline.FlightSegment, value string) ([]*airline.FlightSegment, bool) {
	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return nil, false
	}

	minutes, err := strconv.Atoi(value[1:])
	if err != nil {
		return nil, false
	}
	limit := time.Duration(minutes) * time.Minute

	switch value[0] {
	case 'L':
		return keep(data, func(seg *airline.FlightSegment) bool { return seg.Duration() < limit }), true
	case 'G':
		return keep(data, func(seg *airline.FlightSegment) bool { return seg.Duration() > limit }), true
	default:
		return nil, false
	}
}

func byLocation(data []*airline.FlightSegment, value string) ([]*airline.FlightSegment, bool) {
	value = strings.TrimSpace(value)

	switch len(value) {
	case 3:
		return keep(data, func(seg *airline.FlightSegment) bool {
			return seg.DepartureAirport() == value || seg.ArrivalAirport() == value
		}), true
	case 4:
		code := value[1:]
		switch value[0] {
		case 'D':
			return keep(data, func(seg *airline.FlightSegment) bool { return seg.DepartureAirport() == code }), true
		case 'A':
			return keep(data, func(seg *airline.FlightSegment) bool { return seg.ArrivalAirport() == code }), true
		}
	}

	return nil, false
}

func byDate(data []*airline.FlightSegment, value string) ([]*airline.FlightSegment, bool) {
	var parts []string
	switch {
	case strings.Contains(value, "/"):
		parts = strings.Split(value, "/")
	case strings.Contains(value, ","):
		parts = strings.Split(value, ",")
	default:
		return nil, false
	}
	if len(parts) != 2 {
		return nil, false
	}

	start, err := time.Parse(time.DateOnly, strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, false
	}
	end, err := time.Parse(time.DateOnly, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, false
	}

	return keep(data, func(seg *airline.FlightSegment) bool {
		dep, arr := seg.Times()
		return !dayOf(dep).Before(start) && !dayOf(arr).After(end)
	}), true
}

func byTrip(dir Directory, data []*airline.FlightSegment, value string) ([]*airline.FlightSegment, bool) {
	value = strings.TrimSpace(value)

	for _, c := range dir.Customers() {
		trip, found := c.Trip(value)
		if !found {
			continue
		}

		inTrip := make(map[*airline.FlightSegment]struct{})
		for _, seg := range trip.FlightSegments() {
			inTrip[seg] = struct{}{}
		}

		return keep(data, func(seg *airline.FlightSegment) bool {
			_, ok := inTrip[seg]
			return ok
		}), true
	}

	return nil, false
}

func keep(data []*airline.FlightSegment, pred func(*airline.FlightSegment) bool) []*airline.FlightSegment {
	results := make([]*airline.FlightSegment, 0, len(data))
	for _, seg := range data {
		if pred(seg) {
			results = append(results, seg)
		}
	}

	return results
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
