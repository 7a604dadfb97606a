package personalization

import (
	"sort"

	"github.com/rydio/api/internal/models"
)

const (
	boostPerBooking = 0.05
	maxTypeBoost    = 0.20
	maxBrandBoost   = 0.15
)

// HistoryMatchCriterion is appended to matchedCriteria when a boost
// applied; it extends the engine's fixed dimension vocabulary.
const HistoryMatchCriterion = "Matches your usual choice"

// Apply boosts recommendations matching the rider's historical vehicle
// type and brand preferences, clamps scores to 1, and re-sorts with the
// same tie-breaks the base ranking uses. The input order is the base
// ranking, so unboosted entries keep their relative positions.
func Apply(profile *models.RiderProfile, recs []models.VehicleRecommendation) []models.VehicleRecommendation {
	if profile == nil || profile.TotalBookings == 0 || len(recs) == 0 {
		return recs
	}

	for i := range recs {
		rec := &recs[i]
		boost := 0.0

		if n := profile.TypeCounts[string(rec.VehicleType)]; n > 0 {
			boost += clampBoost(float64(n)*boostPerBooking, maxTypeBoost)
		}
		if n := profile.BrandCounts[rec.Brand]; n > 0 {
			boost += clampBoost(float64(n)*boostPerBooking, maxBrandBoost)
		}
		if boost == 0 {
			continue
		}

		rec.MatchScore += boost
		if rec.MatchScore > 1 {
			rec.MatchScore = 1
		}
		rec.MatchedCriteria = append(rec.MatchedCriteria, HistoryMatchCriterion)
		rec.Reason += " Based on your booking history, this matches your preferences."
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := &recs[i], &recs[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		ra, rb := effectiveHourlyRate(a), effectiveHourlyRate(b)
		if ra != rb {
			return ra < rb
		}
		return a.VehicleID < b.VehicleID
	})

	return recs
}

func clampBoost(boost, max float64) float64 {
	if boost > max {
		return max
	}
	return boost
}

func effectiveHourlyRate(rec *models.VehicleRecommendation) float64 {
	if rec.HourlyRate != nil {
		return *rec.HourlyRate
	}
	return rec.DailyRate / 24
}
