package airline

import (
	"fmt"
	"math"
	"strings"
)

// CabinClass is a fare category with its own seat pool.
type CabinClass string

const (
	Economy  CabinClass = "Economy"
	Business CabinClass = "Business"
)

// CabinClasses lists every bookable class in display order.
var CabinClasses = []CabinClass{Economy, Business}

// DefaultBaseCostPerKm is the base fare rate applied by the loader.
const DefaultBaseCostPerKm = 0.1225

// DefaultSeatCapacity is the seat layout of every segment unless overridden.
var DefaultSeatCapacity = map[CabinClass]int{
	Economy:  150,
	Business: 22,
}

// status miles earned per km flown
var mileageMultiplier = map[CabinClass]int{
	Economy:  1,
	Business: 5,
}

// fare multiplier applied to base_cost_per_km * distance_km
var costMultiplier = map[CabinClass]float64{
	Economy:  1.0,
	Business: 2.5,
}

// ParseCabinClass accepts the class name case-insensitively.
func ParseCabinClass(s string) (CabinClass, error) {
	for _, c := range CabinClasses {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownCabinClass)
}

func (c CabinClass) valid() bool {
	_, ok := costMultiplier[c]
	return ok
}

// Status is a frequent flyer tier.
type Status string

const (
	Prestige       Status = "Prestige"
	EliteLight     Status = "Elite-Light"
	EliteRegular   Status = "Elite-Regular"
	SuperElite     Status = "Super-Elite"
	SuperElitePlus Status = "Super-Elite-Plus"
)

// Tier is one row of the frequent flyer table.
type Tier struct {
	Status          Status
	MinMiles        int
	DiscountPercent float64
}

// Tiers is ordered by ascending MinMiles. A customer holds the last tier
// whose threshold has been reached.
var Tiers = []Tier{
	{Status: Prestige, MinMiles: 0, DiscountPercent: 0},
	{Status: EliteLight, MinMiles: 15000, DiscountPercent: 10},
	{Status: EliteRegular, MinMiles: 30000, DiscountPercent: 15},
	{Status: SuperElite, MinMiles: 50000, DiscountPercent: 20},
	{Status: SuperElitePlus, MinMiles: 100000, DiscountPercent: 25},
}

// StatusForMiles returns the tier reached with the given accrued miles.
func StatusForMiles(miles int) Status {
	status := Tiers[0].Status
	for _, tier := range Tiers {
		if miles < tier.MinMiles {
			break
		}
		status = tier.Status
	}

	return status
}

// DiscountPercent returns the fare discount granted by status.
func DiscountPercent(status Status) float64 {
	for _, tier := range Tiers {
		if tier.Status == status {
			return tier.DiscountPercent
		}
	}

	return 0
}

func statusRank(status Status) int {
	for i, tier := range Tiers {
		if tier.Status == status {
			return i
		}
	}

	return -1
}

// LegCost is the undiscounted fare of one leg.
func LegCost(seg *FlightSegment, class CabinClass) float64 {
	return seg.BaseCostPerKm() * seg.DistanceKm() * costMultiplier[class]
}

// LegMiles is the status miles earned on one leg, truncated to whole miles.
func LegMiles(seg *FlightSegment, class CabinClass) int {
	return int(math.Floor(seg.DistanceKm() * float64(mileageMultiplier[class])))
}

// ApplyDiscount reduces cost by the discount of status.
func ApplyDiscount(cost float64, status Status) float64 {
	return cost * (1 - DiscountPercent(status)/100)
}
