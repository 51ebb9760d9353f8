package booking

import (
	"math"
	"time"

	"github.com/anuragmoyde/mentor4all-sub000/internal/availability"
)

// DurationMinutes is the whole number of minutes the window spans.
func DurationMinutes(w availability.Window) int {
	return int(w.Length() / time.Minute)
}

// Price charges hourlyRate pro rata for minutes, rounded to cents.
func Price(hourlyRate float64, minutes int) float64 {
	return math.Round(hourlyRate*float64(minutes)/60*100) / 100
}
