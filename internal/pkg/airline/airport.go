package airline

import (
	"fmt"
	"sort"
)

// Location is a (longitude, latitude) pair.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Airport is immutable after construction.
type Airport struct {
	id       string
	name     string
	location Location
}

func NewAirport(id, name string, location Location) Airport {
	return Airport{id: id, name: name, location: location}
}

// ID returns the IATA code.
func (a Airport) ID() string { return a.id }

func (a Airport) Name() string { return a.name }

func (a Airport) Location() Location { return a.location }

// AirportCatalog is a read-only lookup of airports by IATA code. It is
// built once by the loader and handed to whoever needs airport geometry.
type AirportCatalog struct {
	airports map[string]Airport
}

// NewAirportCatalog rejects duplicate codes.
func NewAirportCatalog(airports []Airport) (*AirportCatalog, error) {
	byID := make(map[string]Airport, len(airports))
	for _, a := range airports {
		if _, ok := byID[a.ID()]; ok {
			return nil, fmt.Errorf("duplicate airport %s", a.ID())
		}
		byID[a.ID()] = a
	}

	return &AirportCatalog{airports: byID}, nil
}

func (c *AirportCatalog) Get(id string) (Airport, bool) {
	a, ok := c.airports[id]
	return a, ok
}

// Location returns the coordinates of id, or false when unknown.
func (c *AirportCatalog) Location(id string) (Location, bool) {
	a, ok := c.airports[id]
	if !ok {
		return Location{}, false
	}

	return a.Location(), true
}

func (c *AirportCatalog) Len() int {
	return len(c.airports)
}

// All returns airports ordered by code.
func (c *AirportCatalog) All() []Airport {
	out := make([]Airport, 0, len(c.airports))
	for _, a := range c.airports {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})

	return out
}
