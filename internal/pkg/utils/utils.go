package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConvertMinutesToDuration convert minutes to duration format string
// Example: 125 -> "2h 5m"
func ConvertMinutesToDuration(durationInMinutes int64) string {

	h := durationInMinutes / 60
	m := durationInMinutes % 60

	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %dm", h, m)
}

// ConvertDurationToMinutes convert duration format string to minutes
// Example: "2h 30m" -> 150
func ConvertDurationToMinutes(duration string) int64 {
	var h, m int64
	fmt.Sscanf(duration, "%dh %dm", &h, &m)

	return h*60 + m
}

// RoundCost rounds a fare to whole cents.
func RoundCost(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCost formats a fare with thousands separators and two decimals.
// Example: 1234.5 -> "$1,234.50"
func FormatCost(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, d := range whole {
		if i != 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative && cents != 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents%100)
}
