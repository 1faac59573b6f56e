package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ijalalfrz/airline-booking-service/internal/pkg/airline"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/exception"
	"github.com/ijalalfrz/airline-booking-service/internal/pkg/utils"
)

type BookTripLeg struct {
	FlightID   string `json:"flight_id" validate:"required"`
	CabinClass string `json:"cabin_class" validate:"required,cabin_class"`
}

// BookTripRequest books an itinerary for an existing customer. A reservation
// id is generated when none is supplied.
type BookTripRequest struct {
	ReservationID string        `json:"reservation_id,omitempty" validate:"omitempty,max=64"`
	CustomerID    int           `json:"customer_id" validate:"required,gt=0"`
	TripDate      string        `json:"trip_date" validate:"required,datetime=2006-01-02"`
	Legs          []BookTripLeg `json:"legs" validate:"required,min=1,dive"`
}

func (b *BookTripRequest) Bind(r *http.Request) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (b *BookTripRequest) Validate() error {
	if err := ValidateSingleError(b); err != nil {
		return exception.New(http.StatusBadRequest, err.Error())
	}

	return nil
}

// ParsedTripDate assumes Validate has passed.
func (b *BookTripRequest) ParsedTripDate() time.Time {
	date, _ := time.Parse(time.DateOnly, b.TripDate)
	return date
}

type CancelTripRequest struct {
	CustomerID    int    `json:"customer_id" validate:"required,gt=0"`
	ReservationID string `json:"reservation_id" validate:"required"`
}

func (c *CancelTripRequest) Bind(r *http.Request) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (c *CancelTripRequest) Validate() error {
	if err := ValidateSingleError(c); err != nil {
		return exception.New(http.StatusBadRequest, err.Error())
	}

	return nil
}

type GetCustomerRequest struct {
	CustomerID int `json:"customer_id" validate:"required,gt=0"`
}

func (g *GetCustomerRequest) Validate() error {
	if err := ValidateSingleError(g); err != nil {
		return exception.New(http.StatusBadRequest, err.Error())
	}

	return nil
}

type Price struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

func NewPrice(amount float64) Price {
	return Price{
		Amount:    utils.RoundCost(amount),
		Formatted: utils.FormatCost(amount),
	}
}

type TripLeg struct {
	FlightID         string `json:"flight_id"`
	CabinClass       string `json:"cabin_class"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
}

type Trip struct {
	ReservationID    string    `json:"reservation_id"`
	CustomerID       int       `json:"customer_id"`
	TripDate         string    `json:"trip_date"`
	Legs             []TripLeg `json:"legs"`
	Cost             Price     `json:"cost"`
	InFlightMinutes  int       `json:"in_flight_minutes"`
	TotalTripMinutes int       `json:"total_trip_minutes"`
	Duration         Duration  `json:"duration"`
}

func NewTrip(trip *airline.Trip, cost float64) Trip {
	legs := trip.Legs()
	out := Trip{
		ReservationID:    trip.ReservationID(),
		CustomerID:       trip.CustomerID(),
		TripDate:         trip.TripDate().Format(time.DateOnly),
		Legs:             make([]TripLeg, len(legs)),
		Cost:             NewPrice(cost),
		InFlightMinutes:  trip.InFlightMinutes(),
		TotalTripMinutes: trip.TotalTripMinutes(),
		Duration:         NewDuration(int64(trip.TotalTripMinutes())),
	}

	for i, leg := range legs {
		dep, arr := leg.Segment.Times()
		out.Legs[i] = TripLeg{
			FlightID:         leg.Segment.FlightID(),
			CabinClass:       string(leg.CabinClass),
			DepartureAirport: leg.Segment.DepartureAirport(),
			ArrivalAirport:   leg.Segment.ArrivalAirport(),
			DepartureTime:    dep.Format(time.RFC3339),
			ArrivalTime:      arr.Format(time.RFC3339),
		}
	}

	return out
}

type Customer struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Age                int    `json:"age"`
	Nationality        string `json:"nationality"`
	Status             string `json:"status"`
	Miles              int    `json:"miles"`
	LifetimeFlightCost Price  `json:"lifetime_flight_cost"`
	Trips              []Trip `json:"trips,omitempty"`
}

// NewCustomer renders c with its trips when withTrips is set.
func NewCustomer(c *airline.Customer, withTrips bool) Customer {
	out := Customer{
		ID:                 c.ID(),
		Name:               c.Name(),
		Age:                c.Age(),
		Nationality:        c.Nationality(),
		Status:             string(c.Status()),
		Miles:              c.Miles(),
		LifetimeFlightCost: NewPrice(c.LifetimeFlightCost()),
	}

	if withTrips {
		trips := c.Trips()
		out.Trips = make([]Trip, 0, len(trips))
		for _, trip := range trips {
			cost, _ := c.CostOfTrip(trip.ReservationID())
			out.Trips = append(out.Trips, NewTrip(trip, cost))
		}
	}

	return out
}

type BookTripResponse struct {
	Trip     Trip     `json:"trip"`
	Customer Customer `json:"customer"`
}

type CancelTripResponse struct {
	Trip     Trip     `json:"trip"`
	Customer Customer `json:"customer"`
}
