package recommendation

import (
	"math"

	"github.com/rydio/api/internal/models"
)

// EstimateCost returns round(hours × effectiveRate, 2) for the trip, or
// nil when the resolved duration is not positive. It never returns a
// negative value.
func EstimateCost(c *models.Criteria, v *models.VehicleCandidate) *float64 {
	hours := c.TripHours()
	if hours <= 0 {
		return nil
	}
	cost := round2(hours * v.EffectiveHourlyRate())
	if cost < 0 {
		return nil
	}
	return &cost
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
