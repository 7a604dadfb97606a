package recommendation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rydio/api/internal/models"
)

// strongMatchRatio is the share of a dimension's max weight a
// contribution must reach to count as a matched criterion.
const strongMatchRatio = 0.6

// DisplayNames is the fixed matchedCriteria vocabulary.
var DisplayNames = map[string]string{
	DimCapacity:  "Seating capacity",
	DimTypeClass: "Vehicle type fit",
	DimFuel:      "Preferred fuel type",
	DimWeather:   "Weather suitability",
	DimLuggage:   "Luggage space",
	DimPrice:     "Within budget",
}

// reasonPhrases feed the templated explanation sentence.
var reasonPhrases = map[string]string{
	DimCapacity:  "seating for your group",
	DimTypeClass: "the right vehicle class",
	DimFuel:      "your preferred fuel",
	DimWeather:   "weather suitability",
	DimLuggage:   "luggage space",
	DimPrice:     "a price within budget",
}

// dimensionOrder breaks ties between equally-contributing dimensions so
// reasons come out identical across runs.
var dimensionOrder = []string{DimCapacity, DimTypeClass, DimWeather, DimPrice, DimFuel, DimLuggage}

// MatchedCriteria lists the display names of dimensions whose weighted
// contribution reached the strong-match threshold, in fixed order.
func MatchedCriteria(weights Weights, sc *ScoredCandidate) []string {
	matched := make([]string, 0, len(sc.Breakdown))
	for _, dim := range dimensionOrder {
		contribution, active := sc.Breakdown[dim]
		if !active {
			continue
		}
		if w := weights.Of(dim); w > 0 && contribution >= strongMatchRatio*w {
			matched = append(matched, DisplayNames[dim])
		}
	}
	return matched
}

// BuildReason assembles one explanatory sentence from the candidate's
// two or three highest-contributing dimensions.
func BuildReason(c *models.Criteria, weights Weights, sc *ScoredCandidate) string {
	type dimScore struct {
		dim   string
		ratio float64
	}

	ranked := make([]dimScore, 0, len(sc.Breakdown))
	for _, dim := range dimensionOrder {
		contribution, active := sc.Breakdown[dim]
		if !active {
			continue
		}
		w := weights.Of(dim)
		if w <= 0 {
			continue
		}
		ranked = append(ranked, dimScore{dim: dim, ratio: contribution / w})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ratio > ranked[j].ratio
	})

	take := 2
	if len(ranked) >= 3 && ranked[2].ratio >= strongMatchRatio {
		take = 3
	}
	if take > len(ranked) {
		take = len(ranked)
	}

	phrases := make([]string, 0, take)
	for _, ds := range ranked[:take] {
		phrases = append(phrases, reasonPhrases[ds.dim])
	}

	return fmt.Sprintf("Offers %s for your %s trip.", joinPhrases(phrases), tripTypeLabel(c.TripType))
}

func joinPhrases(phrases []string) string {
	switch len(phrases) {
	case 0:
		return "a balanced fit"
	case 1:
		return phrases[0]
	case 2:
		return phrases[0] + " and " + phrases[1]
	default:
		return strings.Join(phrases[:len(phrases)-1], ", ") + " and " + phrases[len(phrases)-1]
	}
}

func tripTypeLabel(tt models.TripType) string {
	if tt == models.TripTypeLongDistance {
		return "long-distance"
	}
	return string(tt)
}

// tripTypeAnalysis summarizes how the trip type shaped the ranking.
var tripTypeAnalysis = map[models.TripType]string{
	models.TripTypeSolo:         "Solo trips weight two-wheelers and compact vehicles for flexibility and cost.",
	models.TripTypeFamily:       "Family trips weight seating capacity and enclosed vehicles most heavily.",
	models.TripTypeBusiness:     "Business trips weight cars for reliability and a professional appearance.",
	models.TripTypeLeisure:      "Leisure trips treat every vehicle class equally and rank on overall fit.",
	models.TripTypeLongDistance: "Long-distance trips weight cars with comfort for extended journeys.",
	models.TripTypeCity:         "City trips weight compact vehicles that handle traffic and tight parking.",
}

// AnalyzeTripType returns the one-line ranking summary, with any
// relaxation notes merged in.
func AnalyzeTripType(tt models.TripType, relaxations []string) string {
	analysis := tripTypeAnalysis[tt]
	if analysis == "" {
		analysis = "Ranked on overall fit across your stated criteria."
	}
	if len(relaxations) > 0 {
		analysis += " Note: " + strings.Join(relaxations, "; ") + " to find available options."
	}
	return analysis
}
