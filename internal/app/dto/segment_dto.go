package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/exception"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/loader"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/segment"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/utils"
)

type Duration struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

func NewDuration(minutes int64) Duration {
	return Duration{
		TotalMinutes: int(minutes),
		Formatted:    utils.ConvertMinutesToDuration(minutes),
	}
}

type Seats struct {
	CabinClass string `json:"cabin_class"`
	Capacity   int    `json:"capacity"`
	Available  int    `json:"available"`
}

type Segment struct {
	FlightID         string           `json:"flight_id"`
	DepartureAirport string           `json:"departure_airport"`
	ArrivalAirport   string           `json:"arrival_airport"`
	DepartureTime    string           `json:"departure_time"`
	ArrivalTime      string           `json:"arrival_time"`
	Duration         Duration         `json:"duration"`
	DistanceKm       float64          `json:"distance_km"`
	BaseCostPerKm    float64          `json:"base_cost_per_km"`
	DepartureAt      airline.Location `json:"departure_location"`
	ArrivalAt        airline.Location `json:"arrival_location"`
	Seats            []Seats          `json:"seats"`
}

func NewSegment(seg *airline.FlightSegment) Segment {
	dep, arr := seg.Times()
	depLoc, arrLoc := seg.Coordinates()

	out := Segment{
		FlightID:         seg.FlightID(),
		DepartureAirport: seg.DepartureAirport(),
		ArrivalAirport:   seg.ArrivalAirport(),
		DepartureTime:    dep.Format(time.RFC3339),
		ArrivalTime:      arr.Format(time.RFC3339),
		Duration:         NewDuration(int64(seg.Duration() / time.Minute)),
		DistanceKm:       seg.DistanceKm(),
		BaseCostPerKm:    seg.BaseCostPerKm(),
		DepartureAt:      depLoc,
		ArrivalAt:        arrLoc,
		Seats:            make([]Seats, 0, len(airline.CabinClasses)),
	}

	for _, class := range airline.CabinClasses {
		out.Seats = append(out.Seats, Seats{
			CabinClass: string(class),
			Capacity:   seg.SeatCapacity(class),
			Available:  seg.SeatAvailability(class),
		})
	}

	return out
}

type GetSegmentRequest struct {
	FlightID string `json:"flight_id" validate:"required"`
}

func (g *GetSegmentRequest) Validate() error {
	if err := ValidateSingleError(g); err != nil {
		return exception.New(http.StatusBadRequest, err.Error())
	}

	return nil
}

type FilterSegmentsRequest struct {
	Filters    []segment.Filter    `json:"filters" validate:"omitempty,dive"`
	SortOption *segment.SortOption `json:"sort_option,omitempty"`
	Limit      int                 `json:"limit,omitempty" validate:"omitempty,min=1,max=1000"`
}

func (f *FilterSegmentsRequest) Bind(r *http.Request) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (f *FilterSegmentsRequest) Validate() error {
	if err := ValidateSingleError(f); err != nil {
		return exception.New(http.StatusBadRequest, err.Error())
	}

	return nil
}

type FilterSegmentsResponse struct {
	Total    int       `json:"total"`
	Segments []Segment `json:"segments"`
}

type StatsResponse struct {
	loader.Stats
	TotalFlightFeeFormatted string `json:"total_flight_fee_formatted"`
}

func NewStatsResponse(stats loader.Stats) StatsResponse {
	return StatsResponse{
		Stats:                   stats,
		TotalFlightFeeFormatted: utils.FormatCost(stats.TotalFlightFee),
	}
}
