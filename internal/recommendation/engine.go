package recommendation

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/models"
	"github.com/rydio/api/internal/personalization"
)

// CatalogProvider supplies the read-only fleet snapshot.
type CatalogProvider interface {
	Snapshot(ctx context.Context) ([]models.VehicleCandidate, error)
}

// ProfileProvider supplies a rider's aggregated booking history. It is
// best-effort: any error is logged and personalization is skipped.
type ProfileProvider interface {
	Profile(ctx context.Context, userID int64) (*models.RiderProfile, error)
}

// NoMatchMessage is returned when relaxation still yields no candidates.
const NoMatchMessage = "No vehicles currently match; try a different date or location"

const overBudgetNote = "All current matches exceed your budget; consider a shorter duration or a higher budget."

var (
	recommendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rydio_recommendation_requests_total",
		Help: "Recommendation requests by trip type",
	}, []string{"trip_type"})

	recommendRelaxed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rydio_recommendation_relaxed_total",
		Help: "Requests that needed filter relaxation",
	})

	recommendEmpty = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rydio_recommendation_empty_total",
		Help: "Requests with no candidates after relaxation",
	})
)

// Engine runs the full pipeline: validate → filter → score → rank →
// explain/cost/add-ons → assemble. One linear pass per request, no
// engine-owned state beyond the injected providers.
type Engine struct {
	catalog  CatalogProvider
	profiles ProfileProvider
	scorer   *Scorer
	ranker   *Ranker
	topK     int
	logger   *zap.Logger
}

// NewEngine wires the pipeline. profiles may be nil when the
// personalization collaborator is not deployed.
func NewEngine(catalog CatalogProvider, profiles ProfileProvider, weights Weights, topK int, logger *zap.Logger) *Engine {
	scorer := NewScorer(weights)
	return &Engine{
		catalog:  catalog,
		profiles: profiles,
		scorer:   scorer,
		ranker:   NewRanker(scorer),
		topK:     topK,
		logger:   logger,
	}
}

// Recommend produces the ranked, explained, costed response for one
// request. userID is nil for anonymous callers. k overrides the
// engine's top-K when positive.
func (e *Engine) Recommend(ctx context.Context, raw models.TripCriteria, userID *int64, k int) (*models.RecommendationResponse, error) {
	criteria, err := NormalizeCriteria(raw)
	if err != nil {
		return nil, err
	}
	recommendRequests.WithLabelValues(string(criteria.TripType)).Inc()

	snapshot, err := e.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if k <= 0 {
		k = e.topK
	}
	ranked, err := e.ranker.Rank(ctx, criteria, snapshot, k)
	if err != nil {
		return nil, err
	}
	if len(ranked.Relaxations) > 0 {
		recommendRelaxed.Inc()
	}

	recs := e.assembleRecommendations(criteria, ranked.Candidates)

	response := &models.RecommendationResponse{
		Recommendations:  recs,
		SuggestedAddOns:  SuggestedAddOns(recs),
		TripTypeAnalysis: AnalyzeTripType(criteria.TripType, ranked.Relaxations),
	}

	if len(recs) == 0 {
		recommendEmpty.Inc()
		response.PersonalizedMessage = NoMatchMessage
		return response, nil
	}

	response.PersonalizedMessage = e.buildMessage(criteria, recs, ranked.OverBudget)
	response.EstimatedTotalCost = recs[0].EstimatedCost

	if userID != nil && e.profiles != nil {
		e.personalize(ctx, *userID, response)
	}

	return response, nil
}

func (e *Engine) assembleRecommendations(criteria *models.Criteria, scored []ScoredCandidate) []models.VehicleRecommendation {
	recs := make([]models.VehicleRecommendation, 0, len(scored))
	for i := range scored {
		sc := &scored[i]
		v := &sc.Vehicle
		recs = append(recs, models.VehicleRecommendation{
			VehicleID:         v.ID,
			Brand:             v.Brand,
			Model:             v.Model,
			VehicleType:       v.VehicleType,
			MatchScore:        sc.Score,
			ScoreBreakdown:    sc.Breakdown,
			Reason:            BuildReason(criteria, e.scorer.Weights(), sc),
			MatchedCriteria:   MatchedCriteria(e.scorer.Weights(), sc),
			RecommendedAddOns: RecommendAddOns(criteria, v.VehicleType),
			EstimatedCost:     sc.EstimatedCost,
			ImageURL:          v.ImageURL,
			Location:          v.Location,
			DailyRate:         v.DailyRate,
			HourlyRate:        v.HourlyRate,
		})
	}
	return recs
}

var messageOpeners = map[models.TripType]string{
	models.TripTypeSolo:         "Great picks for your solo ride!",
	models.TripTypeFamily:       "Family-friendly options with room and safety for everyone!",
	models.TripTypeBusiness:     "Professional vehicles that make the right impression!",
	models.TripTypeLeisure:      "Fun options for your leisure plans!",
	models.TripTypeLongDistance: "Reliable vehicles ready for your long journey!",
	models.TripTypeCity:         "Nimble options for getting around town!",
}

func (e *Engine) buildMessage(criteria *models.Criteria, recs []models.VehicleRecommendation, overBudget bool) string {
	top := &recs[0]
	message := fmt.Sprintf("%s Our top pick is the %s %s with a %.0f%% match.",
		messageOpeners[criteria.TripType], top.Brand, top.Model, top.MatchScore*100)
	if overBudget {
		message += " " + overBudgetNote
	}
	return message
}

// personalize re-ranks with booking-history boosts and appends the
// insight sentence. Profile failures are never surfaced; the base
// response stands on its own.
func (e *Engine) personalize(ctx context.Context, userID int64, response *models.RecommendationResponse) {
	profile, err := e.profiles.Profile(ctx, userID)
	if err != nil {
		e.logger.Warn("personalization unavailable, skipping",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}
	if profile == nil || profile.TotalBookings == 0 {
		return
	}

	response.Recommendations = personalization.Apply(profile, response.Recommendations)
	response.SuggestedAddOns = SuggestedAddOns(response.Recommendations)
	if len(response.Recommendations) > 0 {
		response.EstimatedTotalCost = response.Recommendations[0].EstimatedCost
	}
	response.PersonalizedMessage += " " + personalization.Insight(profile)
}
