package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydio/api/internal/models"
)

func TestMatchedCriteriaVocabulary(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationShort,
	}
	v := testVehicle(1, models.VehicleTypeScooter, 2, 25)

	sc := scorer.Score(c, &v)
	matched := MatchedCriteria(DefaultWeights, &sc)

	assert.Equal(t, []string{"Seating capacity", "Vehicle type fit"}, matched)
}

func TestMatchedCriteriaThreshold(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	c := &models.Criteria{
		TripType:       models.TripTypeBusiness,
		PassengerCount: 1,
		Duration:       models.DurationShort,
	}
	// bicycle scores the business baseline for type, below threshold
	v := testVehicle(1, models.VehicleTypeBicycle, 1, 15)

	sc := scorer.Score(c, &v)
	matched := MatchedCriteria(DefaultWeights, &sc)

	assert.Contains(t, matched, "Seating capacity")
	assert.NotContains(t, matched, "Vehicle type fit")
}

func TestMatchedCriteriaWeatherAndBudget(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	weather := models.WeatherRainy
	budget := 1000.0
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 2,
		Duration:       models.DurationShort,
		Weather:        &weather,
		MaxBudget:      &budget,
	}
	v := testVehicle(1, models.VehicleTypeCar, 5, 90)

	sc := scorer.Score(c, &v)
	matched := MatchedCriteria(DefaultWeights, &sc)

	assert.Equal(t, []string{
		"Seating capacity",
		"Vehicle type fit",
		"Weather suitability",
		"Within budget",
	}, matched)
}

func TestBuildReasonTwoDimensions(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationShort,
	}
	v := testVehicle(1, models.VehicleTypeScooter, 2, 25)

	sc := scorer.Score(c, &v)
	reason := BuildReason(c, DefaultWeights, &sc)

	assert.Equal(t, "Offers seating for your group and the right vehicle class for your leisure trip.", reason)
}

func TestBuildReasonThreeStrongDimensions(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	weather := models.WeatherSunny
	c := &models.Criteria{
		TripType:       models.TripTypeSolo,
		PassengerCount: 1,
		Duration:       models.DurationShort,
		Weather:        &weather,
	}
	v := testVehicle(1, models.VehicleTypeBike, 2, 20)

	sc := scorer.Score(c, &v)
	reason := BuildReason(c, DefaultWeights, &sc)

	assert.Equal(t, "Offers seating for your group, the right vehicle class and weather suitability for your solo trip.", reason)
}

func TestBuildReasonLongDistanceLabel(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	c := &models.Criteria{
		TripType:       models.TripTypeLongDistance,
		PassengerCount: 2,
		Duration:       models.DurationLong,
	}
	v := testVehicle(1, models.VehicleTypeCar, 5, 90)

	sc := scorer.Score(c, &v)
	reason := BuildReason(c, DefaultWeights, &sc)

	assert.Contains(t, reason, "for your long-distance trip.")
}

func TestAnalyzeTripType(t *testing.T) {
	analysis := AnalyzeTripType(models.TripTypeFamily, nil)
	assert.Equal(t, "Family trips weight seating capacity and enclosed vehicles most heavily.", analysis)
}

func TestAnalyzeTripTypeWithRelaxations(t *testing.T) {
	analysis := AnalyzeTripType(models.TripTypeCity, []string{"location filter relaxed"})
	require.Contains(t, analysis, "City trips weight compact vehicles")
	assert.Contains(t, analysis, "Note: location filter relaxed to find available options.")
}
