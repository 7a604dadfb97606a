package models

import "time"

// VehicleType classifies catalog vehicles
type VehicleType string

const (
	VehicleTypeCar     VehicleType = "CAR"
	VehicleTypeBike    VehicleType = "BIKE"
	VehicleTypeScooter VehicleType = "SCOOTER"
	VehicleTypeBicycle VehicleType = "BICYCLE"
)

// FuelType enumerates the fuel options the fleet carries
type FuelType string

const (
	FuelTypePetrol   FuelType = "PETROL"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeElectric FuelType = "ELECTRIC"
	FuelTypeHybrid   FuelType = "HYBRID"
	FuelTypeCNG      FuelType = "CNG"
	FuelTypeNone     FuelType = "NONE"
)

// TripType describes the purpose of a trip
type TripType string

const (
	TripTypeSolo         TripType = "solo"
	TripTypeFamily       TripType = "family"
	TripTypeBusiness     TripType = "business"
	TripTypeLeisure      TripType = "leisure"
	TripTypeLongDistance TripType = "long_distance"
	TripTypeCity         TripType = "city"
)

// Duration buckets map to trip hours when explicit dates are absent
type DurationBucket string

const (
	DurationShort  DurationBucket = "short"
	DurationMedium DurationBucket = "medium"
	DurationLong   DurationBucket = "long"
)

// WeatherCondition is the expected weather during the trip
type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherWinter WeatherCondition = "winter"
)

// TripCriteria is the raw request body for smart recommendations.
// Optional fields stay pointers so the normalizer can tell "absent"
// from "zero value".
type TripCriteria struct {
	TripType          string     `json:"tripType,omitempty"`
	PassengerCount    *int       `json:"passengerCount,omitempty"`
	Duration          string     `json:"duration,omitempty"`
	Location          string     `json:"location,omitempty"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	MaxBudget         *float64   `json:"maxBudget,omitempty"`
	PreferredFuelType string     `json:"preferredFuelType,omitempty"`
	RequiresLuggage   bool       `json:"requiresLuggage,omitempty"`
	WeatherCondition  string     `json:"weatherCondition,omitempty"`
}

// Criteria is the fully-defaulted, validated form of TripCriteria.
// Built once at the boundary; downstream code never re-checks fields.
type Criteria struct {
	TripType        TripType
	PassengerCount  int
	Duration        DurationBucket
	Location        string
	StartDate       *time.Time
	EndDate         *time.Time
	MaxBudget       *float64
	PreferredFuel   *FuelType
	RequiresLuggage bool
	Weather         *WeatherCondition
}

// TripHours resolves the trip length in hours: explicit dates win,
// otherwise the bucket mapping (short 3h, medium 6h, long 10h).
func (c *Criteria) TripHours() float64 {
	if c.StartDate != nil && c.EndDate != nil {
		return c.EndDate.Sub(*c.StartDate).Hours()
	}
	switch c.Duration {
	case DurationMedium:
		return 6
	case DurationLong:
		return 10
	default:
		return 3
	}
}

// VehicleCandidate is one read-only catalog entry. The engine never
// mutates it; the snapshot provider refreshes the set wholesale.
type VehicleCandidate struct {
	ID          int64       `json:"id"`
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	VehicleType VehicleType `json:"vehicleType"`
	FuelType    FuelType    `json:"fuelType"`
	SeatCount   int         `json:"seatCount"`
	DailyRate   float64     `json:"dailyRate"`
	HourlyRate  *float64    `json:"hourlyRate,omitempty"`
	Location    string      `json:"location"`
	Available   bool        `json:"available"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}

// EffectiveHourlyRate falls back to dailyRate/24 when no hourly rate
// is published for the vehicle.
func (v *VehicleCandidate) EffectiveHourlyRate() float64 {
	if v.HourlyRate != nil {
		return *v.HourlyRate
	}
	return v.DailyRate / 24
}

// VehicleRecommendation is the per-vehicle output unit of the engine.
type VehicleRecommendation struct {
	VehicleID         int64              `json:"vehicleId"`
	Brand             string             `json:"brand"`
	Model             string             `json:"model"`
	VehicleType       VehicleType        `json:"vehicleType"`
	MatchScore        float64            `json:"matchScore"`
	ScoreBreakdown    map[string]float64 `json:"scoreBreakdown,omitempty"`
	Reason            string             `json:"reason"`
	MatchedCriteria   []string           `json:"matchedCriteria"`
	RecommendedAddOns []string           `json:"recommendedAddOns"`
	EstimatedCost     *float64           `json:"estimatedCost,omitempty"`
	ImageURL          string             `json:"imageUrl,omitempty"`
	Location          string             `json:"location,omitempty"`
	DailyRate         float64            `json:"dailyRate"`
	HourlyRate        *float64           `json:"hourlyRate,omitempty"`
}

// RecommendationResponse is the full payload for the smart endpoint.
type RecommendationResponse struct {
	Recommendations     []VehicleRecommendation `json:"recommendations"`
	SuggestedAddOns     []string                `json:"suggestedAddOns"`
	PersonalizedMessage string                  `json:"personalizedMessage"`
	EstimatedTotalCost  *float64                `json:"estimatedTotalCost,omitempty"`
	TripTypeAnalysis    string                  `json:"tripTypeAnalysis"`
}

// RiderProfile aggregates a user's booking history for personalization.
type RiderProfile struct {
	UserID        int64          `json:"userId"`
	TotalBookings int            `json:"totalBookings"`
	TypeCounts    map[string]int `json:"typeCounts"`
	BrandCounts   map[string]int `json:"brandCounts"`
	TopTripType   string         `json:"topTripType,omitempty"`
	AvgTripHours  float64        `json:"avgTripHours"`
}

// FavoriteVehicleType returns the most-booked vehicle type, empty when
// there is no history.
func (p *RiderProfile) FavoriteVehicleType() string {
	best, bestCount := "", 0
	for vt, n := range p.TypeCounts {
		if n > bestCount || (n == bestCount && vt < best) {
			best, bestCount = vt, n
		}
	}
	return best
}
