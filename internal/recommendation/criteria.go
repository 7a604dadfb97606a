package recommendation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rydio/api/internal/models"
)

// CriteriaError reports a rejected request field and the value received.
type CriteriaError struct {
	Field string
	Value string
}

func (e *CriteriaError) Error() string {
	return fmt.Sprintf("invalid criteria: field %q received %q", e.Field, e.Value)
}

// ErrInvalidDateRange means endDate is not after startDate.
var ErrInvalidDateRange = errors.New("endDate must be after startDate")

const (
	minPassengers = 1
	maxPassengers = 8
)

var validTripTypes = map[models.TripType]bool{
	models.TripTypeSolo:         true,
	models.TripTypeFamily:       true,
	models.TripTypeBusiness:     true,
	models.TripTypeLeisure:      true,
	models.TripTypeLongDistance: true,
	models.TripTypeCity:         true,
}

var validFuelTypes = map[models.FuelType]bool{
	models.FuelTypePetrol:   true,
	models.FuelTypeDiesel:   true,
	models.FuelTypeElectric: true,
	models.FuelTypeHybrid:   true,
	models.FuelTypeCNG:      true,
	models.FuelTypeNone:     true,
}

var validWeather = map[models.WeatherCondition]bool{
	models.WeatherSunny:  true,
	models.WeatherRainy:  true,
	models.WeatherWinter: true,
}

// NormalizeCriteria validates the raw request and fills defaults exactly
// once. Downstream stages trust the result and never re-check fields.
//
// Defaults: passengerCount 1, duration "short" when neither a bucket nor
// explicit dates were given, tripType "leisure" (the only class that
// treats every vehicle type as a full match, so an unstated purpose
// never penalizes a candidate).
func NormalizeCriteria(raw models.TripCriteria) (*models.Criteria, error) {
	out := &models.Criteria{
		TripType:        models.TripTypeLeisure,
		PassengerCount:  minPassengers,
		Duration:        models.DurationShort,
		Location:        strings.TrimSpace(raw.Location),
		RequiresLuggage: raw.RequiresLuggage,
	}

	if raw.TripType != "" {
		tt := models.TripType(strings.ToLower(strings.TrimSpace(raw.TripType)))
		if !validTripTypes[tt] {
			return nil, &CriteriaError{Field: "tripType", Value: raw.TripType}
		}
		out.TripType = tt
	}

	if raw.PassengerCount != nil {
		n := *raw.PassengerCount
		if n < minPassengers || n > maxPassengers {
			return nil, &CriteriaError{Field: "passengerCount", Value: fmt.Sprintf("%d", n)}
		}
		out.PassengerCount = n
	}

	if raw.Duration != "" {
		d := models.DurationBucket(strings.ToLower(strings.TrimSpace(raw.Duration)))
		switch d {
		case models.DurationShort, models.DurationMedium, models.DurationLong:
			out.Duration = d
		default:
			return nil, &CriteriaError{Field: "duration", Value: raw.Duration}
		}
	}

	switch {
	case raw.StartDate != nil && raw.EndDate != nil:
		if !raw.EndDate.After(*raw.StartDate) {
			return nil, ErrInvalidDateRange
		}
		out.StartDate = raw.StartDate
		out.EndDate = raw.EndDate
	case raw.StartDate != nil:
		return nil, &CriteriaError{Field: "endDate", Value: "missing"}
	case raw.EndDate != nil:
		return nil, &CriteriaError{Field: "startDate", Value: "missing"}
	}

	if raw.MaxBudget != nil {
		if *raw.MaxBudget <= 0 {
			return nil, &CriteriaError{Field: "maxBudget", Value: fmt.Sprintf("%g", *raw.MaxBudget)}
		}
		out.MaxBudget = raw.MaxBudget
	}

	if raw.PreferredFuelType != "" {
		ft := models.FuelType(strings.ToUpper(strings.TrimSpace(raw.PreferredFuelType)))
		if !validFuelTypes[ft] {
			return nil, &CriteriaError{Field: "preferredFuelType", Value: raw.PreferredFuelType}
		}
		out.PreferredFuel = &ft
	}

	if raw.WeatherCondition != "" {
		w := models.WeatherCondition(strings.ToLower(strings.TrimSpace(raw.WeatherCondition)))
		if !validWeather[w] {
			return nil, &CriteriaError{Field: "weatherCondition", Value: raw.WeatherCondition}
		}
		out.Weather = &w
	}

	return out, nil
}
