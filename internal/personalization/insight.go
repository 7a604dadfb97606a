package personalization

import (
	"github.com/rydio/api/internal/models"
)

// NoHistoryInsight is the fallback for riders without bookings.
const NoHistoryInsight = "Start booking with us to get personalized recommendations based on your preferences!"

var typeInsights = map[string]string{
	string(models.VehicleTypeScooter): "You seem to love scooters! They're perfect for city commuting and solo rides, so we've prioritized similar options for you.",
	string(models.VehicleTypeCar):     "Cars are your go-to choice! Great for comfort and longer trips, so we've highlighted car options that match your style.",
	string(models.VehicleTypeBike):    "Bikes are your preferred ride! Economical and efficient for daily use, so we've surfaced similar options first.",
	string(models.VehicleTypeBicycle): "You're eco-conscious and love bicycles! Perfect for short distances and staying fit, so we've found some great cycling options.",
}

// Insight produces the one-sentence booking-history summary. A nil or
// empty profile yields the no-history fallback, never an error.
func Insight(profile *models.RiderProfile) string {
	if profile == nil || profile.TotalBookings == 0 {
		return NoHistoryInsight
	}
	if insight, ok := typeInsights[profile.FavoriteVehicleType()]; ok {
		return insight
	}
	return "Based on your diverse booking history, we've curated a mix of vehicle options to suit your varied needs."
}
