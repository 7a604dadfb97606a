package recommendation

import (
	"github.com/rydio/api/internal/models"
)

// Weights are the per-dimension base weights. They are configuration,
// not constants: callers may tune them when constructing the scorer.
type Weights struct {
	Capacity  float64
	TypeClass float64
	Fuel      float64
	Weather   float64
	Luggage   float64
	Price     float64
}

// DefaultWeights favor capacity and vehicle class, with budget and
// weather as softer pressure.
var DefaultWeights = Weights{
	Capacity:  0.25,
	TypeClass: 0.25,
	Fuel:      0.10,
	Weather:   0.15,
	Luggage:   0.10,
	Price:     0.15,
}

// Of returns the base weight for a dimension identifier.
func (w Weights) Of(dim string) float64 {
	switch dim {
	case DimCapacity:
		return w.Capacity
	case DimTypeClass:
		return w.TypeClass
	case DimFuel:
		return w.Fuel
	case DimWeather:
		return w.Weather
	case DimLuggage:
		return w.Luggage
	case DimPrice:
		return w.Price
	}
	return 0
}

// ScoredCandidate pairs a catalog entry with its normalized match score
// and the weighted contribution of each active dimension.
type ScoredCandidate struct {
	Vehicle       models.VehicleCandidate
	Score         float64
	Breakdown     map[string]float64
	EstimatedCost *float64
}

// Scorer computes match scores as a weight-normalized sum over active
// dimensions. Dimensions whose criterion is absent are excluded from
// numerator and denominator alike, so omitting an optional field never
// lowers a candidate's score.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score evaluates one candidate against the normalized criteria.
// Contributions accumulate in a fixed dimension order; float addition
// is not associative, so summing over the map would make the score
// depend on iteration order.
func (s *Scorer) Score(c *models.Criteria, v *models.VehicleCandidate) ScoredCandidate {
	f := ExtractFeatures(c, v)
	cost := EstimateCost(c, v)

	breakdown := make(map[string]float64, 6)
	sum, weightTotal := 0.0, 0.0
	add := func(dim string, weight, score float64) {
		contribution := weight * score
		breakdown[dim] = contribution
		sum += contribution
		weightTotal += weight
	}

	add(DimCapacity, s.weights.Capacity, f.Capacity)
	add(DimTypeClass, s.weights.TypeClass, f.TypeClass)
	if c.Weather != nil {
		add(DimWeather, s.weights.Weather, f.Weather)
	}
	if c.PreferredFuel != nil {
		add(DimFuel, s.weights.Fuel, f.Fuel)
	}
	if c.RequiresLuggage {
		add(DimLuggage, s.weights.Luggage, f.Luggage)
	}
	if c.MaxBudget != nil && cost != nil {
		add(DimPrice, s.weights.Price, priceFit(*cost, *c.MaxBudget))
	}

	return ScoredCandidate{
		Vehicle:       *v,
		Score:         sum / weightTotal,
		Breakdown:     breakdown,
		EstimatedCost: cost,
	}
}

// Weights exposes the scorer's weight table, used by the explainer to
// translate contributions back into dimension-level scores.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// priceFit is 1 within budget, then decays linearly to 0 at twice the
// budget. It is soft pressure only; over-budget vehicles are never
// excluded.
func priceFit(cost, budget float64) float64 {
	if cost <= budget {
		return 1
	}
	fit := 1 - (cost-budget)/budget
	if fit < 0 {
		return 0
	}
	return fit
}
