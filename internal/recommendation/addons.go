package recommendation

import (
	"github.com/rydio/api/internal/models"
)

const (
	maxAddOnsPerVehicle  = 3
	maxSuggestedAddOns   = 6
	addOnTopContributors = 3
)

// addOnRule maps trip context to accessory suggestions. Empty fields
// are wildcards. Rules are evaluated in order and duplicates are
// dropped keeping first-seen position, so earlier rules outrank later
// ones.
type addOnRule struct {
	tripType    models.TripType
	weather     models.WeatherCondition
	vehicleType models.VehicleType
	addOns      []string
}

var addOnRules = []addOnRule{
	{tripType: models.TripTypeFamily, vehicleType: models.VehicleTypeCar,
		addOns: []string{"Child Safety Seats", "Extra Insurance Coverage", "Roadside Assistance"}},
	{tripType: models.TripTypeBusiness, vehicleType: models.VehicleTypeCar,
		addOns: []string{"GPS Navigation System", "Mobile Charger", "Professional Cleaning"}},
	{tripType: models.TripTypeLongDistance, vehicleType: models.VehicleTypeCar,
		addOns: []string{"GPS Navigation System", "Emergency Kit", "Roadside Assistance"}},
	{tripType: models.TripTypeLeisure,
		addOns: []string{"Bluetooth Speaker", "Picnic Kit", "Camera Mount"}},
	{tripType: models.TripTypeSolo, vehicleType: models.VehicleTypeBike,
		addOns: []string{"Helmet", "Mobile Mount", "Basic Insurance"}},
	{tripType: models.TripTypeSolo, vehicleType: models.VehicleTypeScooter,
		addOns: []string{"Helmet", "Mobile Mount", "Basic Insurance"}},
	{tripType: models.TripTypeCity, vehicleType: models.VehicleTypeBike,
		addOns: []string{"Helmet", "Storage Box"}},
	{tripType: models.TripTypeCity, vehicleType: models.VehicleTypeScooter,
		addOns: []string{"Helmet", "Storage Box"}},
	{vehicleType: models.VehicleTypeBicycle,
		addOns: []string{"Safety Helmet", "Lock and Chain", "Water Bottle Holder"}},
	{weather: models.WeatherRainy,
		addOns: []string{"Rain Cover", "Waterproof Seat Covers"}},
	{weather: models.WeatherWinter,
		addOns: []string{"Seat Warmers", "Winter Emergency Kit"}},
}

func (r *addOnRule) matches(tt models.TripType, weather *models.WeatherCondition, vt models.VehicleType) bool {
	if r.tripType != "" && r.tripType != tt {
		return false
	}
	if r.weather != "" && (weather == nil || r.weather != *weather) {
		return false
	}
	if r.vehicleType != "" && vt != "" && r.vehicleType != vt {
		return false
	}
	return true
}

// RecommendAddOns returns up to three accessories for one vehicle in
// the given trip context. Lookup is a pure function of its inputs.
func RecommendAddOns(c *models.Criteria, vt models.VehicleType) []string {
	return lookupAddOns(c.TripType, c.Weather, vt, maxAddOnsPerVehicle)
}

// LookupAddOns serves the standalone add-ons endpoint, where the
// vehicle type may be unspecified (wildcard).
func LookupAddOns(tt models.TripType, weather *models.WeatherCondition, vt models.VehicleType) []string {
	return lookupAddOns(tt, weather, vt, maxSuggestedAddOns)
}

func lookupAddOns(tt models.TripType, weather *models.WeatherCondition, vt models.VehicleType, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for i := range addOnRules {
		rule := &addOnRules[i]
		if !rule.matches(tt, weather, vt) {
			continue
		}
		for _, addOn := range rule.addOns {
			if seen[addOn] {
				continue
			}
			seen[addOn] = true
			out = append(out, addOn)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

// SuggestedAddOns unions the add-ons of the top recommendations,
// deduplicated first-seen, capped for the response.
func SuggestedAddOns(recs []models.VehicleRecommendation) []string {
	top := recs
	if len(top) > addOnTopContributors {
		top = top[:addOnTopContributors]
	}
	out := make([]string, 0, maxSuggestedAddOns)
	seen := make(map[string]bool)
	for i := range top {
		for _, addOn := range top[i].RecommendedAddOns {
			if seen[addOn] {
				continue
			}
			seen[addOn] = true
			out = append(out, addOn)
			if len(out) == maxSuggestedAddOns {
				return out
			}
		}
	}
	return out
}
