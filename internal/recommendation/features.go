package recommendation

import (
	"github.com/rydio/api/internal/models"
)

// Dimension identifiers. These are the keys of every score breakdown
// and the vocabulary MatchedCriteria display names derive from.
const (
	DimCapacity  = "capacity"
	DimTypeClass = "type_class"
	DimFuel      = "fuel"
	DimWeather   = "weather"
	DimLuggage   = "luggage"
	DimPrice     = "price"
)

// baselineTypeClass is the score for a vehicle outside the preferred
// class for the trip type.
const baselineTypeClass = 0.3

// preferredClasses lists full-match vehicle types per trip type.
// Family is handled separately because it also depends on seat count;
// leisure accepts everything.
var preferredClasses = map[models.TripType][]models.VehicleType{
	models.TripTypeBusiness:     {models.VehicleTypeCar},
	models.TripTypeLongDistance: {models.VehicleTypeCar},
	models.TripTypeCity:         {models.VehicleTypeCar, models.VehicleTypeBike, models.VehicleTypeScooter},
	models.TripTypeSolo:         {models.VehicleTypeCar, models.VehicleTypeBike, models.VehicleTypeScooter},
}

// weatherFit is a domain heuristic, tunable. Open vehicles score low in
// rain and winter.
var weatherFit = map[models.WeatherCondition]map[models.VehicleType]float64{
	models.WeatherSunny: {
		models.VehicleTypeCar:     1,
		models.VehicleTypeScooter: 1,
		models.VehicleTypeBike:    1,
		models.VehicleTypeBicycle: 1,
	},
	models.WeatherRainy: {
		models.VehicleTypeCar:     1,
		models.VehicleTypeScooter: 1,
		models.VehicleTypeBike:    0.6,
		models.VehicleTypeBicycle: 0.4,
	},
	models.WeatherWinter: {
		models.VehicleTypeCar:     1,
		models.VehicleTypeScooter: 1,
		models.VehicleTypeBike:    0.6,
		models.VehicleTypeBicycle: 0.4,
	},
}

// Features holds a candidate's raw per-dimension scores, each in [0,1].
// Price is computed later by the scorer because it needs the estimated
// cost.
type Features struct {
	Capacity  float64
	TypeClass float64
	Fuel      float64
	Weather   float64
	Luggage   float64
}

// ExtractFeatures derives comparison features for one catalog entry
// against the normalized criteria.
func ExtractFeatures(c *models.Criteria, v *models.VehicleCandidate) Features {
	return Features{
		Capacity:  capacityFit(c.PassengerCount, v.SeatCount),
		TypeClass: typeClassFit(c, v),
		Fuel:      fuelFit(c.PreferredFuel, v.FuelType),
		Weather:   weatherScore(c.Weather, v.VehicleType),
		Luggage:   luggageFit(c.RequiresLuggage, v.VehicleType),
	}
}

func capacityFit(passengers, seats int) float64 {
	if seats >= passengers {
		return 1
	}
	if seats <= 0 {
		return 0
	}
	return float64(seats) / float64(passengers)
}

func typeClassFit(c *models.Criteria, v *models.VehicleCandidate) float64 {
	switch c.TripType {
	case models.TripTypeLeisure:
		return 1
	case models.TripTypeFamily:
		if v.VehicleType == models.VehicleTypeCar && v.SeatCount >= c.PassengerCount {
			return 1
		}
		return baselineTypeClass
	default:
		for _, vt := range preferredClasses[c.TripType] {
			if v.VehicleType == vt {
				return 1
			}
		}
		return baselineTypeClass
	}
}

func fuelFit(preferred *models.FuelType, actual models.FuelType) float64 {
	if preferred == nil || *preferred == actual {
		return 1
	}
	return 0
}

func weatherScore(weather *models.WeatherCondition, vt models.VehicleType) float64 {
	if weather == nil {
		return 1
	}
	return weatherFit[*weather][vt]
}

func luggageFit(required bool, vt models.VehicleType) float64 {
	if !required || vt == models.VehicleTypeCar {
		return 1
	}
	return 0.5
}
