package personalization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rydio/api/internal/models"
)

func TestInsightNoHistory(t *testing.T) {
	assert.Equal(t, NoHistoryInsight, Insight(nil))
	assert.Equal(t, NoHistoryInsight, Insight(&models.RiderProfile{}))
}

func TestInsightFavoriteType(t *testing.T) {
	tests := []struct {
		vehicleType models.VehicleType
		fragment    string
	}{
		{models.VehicleTypeScooter, "love scooters"},
		{models.VehicleTypeCar, "Cars are your go-to choice"},
		{models.VehicleTypeBike, "Bikes are your preferred ride"},
		{models.VehicleTypeBicycle, "love bicycles"},
	}

	for _, tt := range tests {
		profile := &models.RiderProfile{
			TotalBookings: 3,
			TypeCounts:    map[string]int{string(tt.vehicleType): 3},
		}
		assert.Contains(t, Insight(profile), tt.fragment)
	}
}

func TestInsightUnknownTypeFallsBack(t *testing.T) {
	profile := &models.RiderProfile{
		TotalBookings: 2,
		TypeCounts:    map[string]int{"HOVERCRAFT": 2},
	}
	assert.Contains(t, Insight(profile), "diverse booking history")
}

func TestFavoriteVehicleTypeTieBreak(t *testing.T) {
	profile := &models.RiderProfile{
		TotalBookings: 4,
		TypeCounts: map[string]int{
			string(models.VehicleTypeScooter): 2,
			string(models.VehicleTypeBike):    2,
		},
	}
	// alphabetical on equal counts keeps the result stable
	assert.Equal(t, string(models.VehicleTypeBike), profile.FavoriteVehicleType())
}
