package recommendation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydio/api/internal/models"
)

func intPtr(n int) *int              { return &n }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestNormalizeCriteriaDefaults(t *testing.T) {
	out, err := NormalizeCriteria(models.TripCriteria{})
	require.NoError(t, err)

	assert.Equal(t, models.TripTypeLeisure, out.TripType)
	assert.Equal(t, 1, out.PassengerCount)
	assert.Equal(t, models.DurationShort, out.Duration)
	assert.Nil(t, out.MaxBudget)
	assert.Nil(t, out.PreferredFuel)
	assert.Nil(t, out.Weather)
	assert.False(t, out.RequiresLuggage)
}

func TestNormalizeCriteriaNormalization(t *testing.T) {
	out, err := NormalizeCriteria(models.TripCriteria{
		TripType:          " Family ",
		PassengerCount:    intPtr(4),
		Duration:          "MEDIUM",
		Location:          "  Bengaluru ",
		PreferredFuelType: "electric",
		WeatherCondition:  "Rainy",
	})
	require.NoError(t, err)

	assert.Equal(t, models.TripTypeFamily, out.TripType)
	assert.Equal(t, 4, out.PassengerCount)
	assert.Equal(t, models.DurationMedium, out.Duration)
	assert.Equal(t, "Bengaluru", out.Location)
	require.NotNil(t, out.PreferredFuel)
	assert.Equal(t, models.FuelTypeElectric, *out.PreferredFuel)
	require.NotNil(t, out.Weather)
	assert.Equal(t, models.WeatherRainy, *out.Weather)
}

func TestNormalizeCriteriaRejections(t *testing.T) {
	tests := []struct {
		name  string
		raw   models.TripCriteria
		field string
	}{
		{"unknown trip type", models.TripCriteria{TripType: "commute"}, "tripType"},
		{"zero passengers", models.TripCriteria{PassengerCount: intPtr(0)}, "passengerCount"},
		{"too many passengers", models.TripCriteria{PassengerCount: intPtr(9)}, "passengerCount"},
		{"unknown duration", models.TripCriteria{Duration: "fortnight"}, "duration"},
		{"zero budget", models.TripCriteria{MaxBudget: floatPtr(0)}, "maxBudget"},
		{"negative budget", models.TripCriteria{MaxBudget: floatPtr(-50)}, "maxBudget"},
		{"unknown fuel", models.TripCriteria{PreferredFuelType: "steam"}, "preferredFuelType"},
		{"unknown weather", models.TripCriteria{WeatherCondition: "hail"}, "weatherCondition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeCriteria(tt.raw)
			var criteriaErr *CriteriaError
			require.ErrorAs(t, err, &criteriaErr)
			assert.Equal(t, tt.field, criteriaErr.Field)
		})
	}
}

func TestNormalizeCriteriaPassengerBounds(t *testing.T) {
	out, err := NormalizeCriteria(models.TripCriteria{PassengerCount: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, out.PassengerCount)
}

func TestNormalizeCriteriaDates(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Hour)

	t.Run("valid range", func(t *testing.T) {
		out, err := NormalizeCriteria(models.TripCriteria{
			StartDate: timePtr(start),
			EndDate:   timePtr(end),
		})
		require.NoError(t, err)
		assert.Equal(t, 5.0, out.TripHours())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NormalizeCriteria(models.TripCriteria{
			StartDate: timePtr(end),
			EndDate:   timePtr(start),
		})
		assert.True(t, errors.Is(err, ErrInvalidDateRange))
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := NormalizeCriteria(models.TripCriteria{
			StartDate: timePtr(start),
			EndDate:   timePtr(start),
		})
		assert.True(t, errors.Is(err, ErrInvalidDateRange))
	})

	t.Run("start without end", func(t *testing.T) {
		_, err := NormalizeCriteria(models.TripCriteria{StartDate: timePtr(start)})
		var criteriaErr *CriteriaError
		require.ErrorAs(t, err, &criteriaErr)
		assert.Equal(t, "endDate", criteriaErr.Field)
	})

	t.Run("end without start", func(t *testing.T) {
		_, err := NormalizeCriteria(models.TripCriteria{EndDate: timePtr(end)})
		var criteriaErr *CriteriaError
		require.ErrorAs(t, err, &criteriaErr)
		assert.Equal(t, "startDate", criteriaErr.Field)
	})
}

func TestTripHoursBuckets(t *testing.T) {
	tests := []struct {
		duration models.DurationBucket
		hours    float64
	}{
		{models.DurationShort, 3},
		{models.DurationMedium, 6},
		{models.DurationLong, 10},
	}
	for _, tt := range tests {
		c := models.Criteria{Duration: tt.duration}
		assert.Equal(t, tt.hours, c.TripHours())
	}
}
