package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/catalog"
	"github.com/rydio/api/internal/middleware"
	"github.com/rydio/api/internal/models"
	"github.com/rydio/api/internal/personalization"
	"github.com/rydio/api/internal/recommendation"
)

var tracer = otel.Tracer("github.com/rydio/api/internal/handlers")

const quickTopK = 3

// RecommendationHandler exposes the matching engine over HTTP.
type RecommendationHandler struct {
	engine   *recommendation.Engine
	profiles recommendation.ProfileProvider
	logger   *zap.Logger
}

// NewRecommendationHandler creates the handler. profiles may be nil
// when the personalization collaborator is not deployed.
func NewRecommendationHandler(engine *recommendation.Engine, profiles recommendation.ProfileProvider, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		engine:   engine,
		profiles: profiles,
		logger:   logger,
	}
}

// Smart handles POST /recommendations/smart. Authentication is
// optional; authenticated callers get personalized re-ranking.
func (h *RecommendationHandler) Smart(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "SmartRecommendations")
	defer span.End()

	var req models.TripCriteria
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var userID *int64
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	response, err := h.engine.Recommend(ctx, req, userID, 0)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	respond(c, http.StatusOK, "Smart recommendations generated successfully", response)
}

// Quick handles GET /recommendations/quick: top-3, no personalization.
func (h *RecommendationHandler) Quick(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "QuickRecommendations")
	defer span.End()

	req := models.TripCriteria{
		TripType: c.Query("tripType"),
		Duration: c.Query("duration"),
	}
	if raw := c.Query("passengers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid criteria: field \"passengers\" received "+strconv.Quote(raw))
			return
		}
		req.PassengerCount = &n
	}

	response, err := h.engine.Recommend(ctx, req, nil, quickTopK)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	respond(c, http.StatusOK, "Quick recommendations generated", response.Recommendations)
}

var validVehicleTypes = map[models.VehicleType]bool{
	models.VehicleTypeCar:     true,
	models.VehicleTypeBike:    true,
	models.VehicleTypeScooter: true,
	models.VehicleTypeBicycle: true,
}

// AddOns handles GET /recommendations/add-ons. It is a pure rule-table
// lookup and never touches the catalog.
func (h *RecommendationHandler) AddOns(c *gin.Context) {
	criteria, err := recommendation.NormalizeCriteria(models.TripCriteria{
		TripType:         c.Query("tripType"),
		WeatherCondition: c.Query("weather"),
	})
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	vt := models.VehicleType(strings.ToUpper(strings.TrimSpace(c.Query("vehicleType"))))
	if vt != "" && !validVehicleTypes[vt] {
		respondError(c, http.StatusBadRequest, "invalid criteria: field \"vehicleType\" received "+strconv.Quote(c.Query("vehicleType")))
		return
	}

	addOns := recommendation.LookupAddOns(criteria.TripType, criteria.Weather, vt)
	respond(c, http.StatusOK, "Add-on recommendations generated", addOns)
}

// PersonalizedInsight handles GET /recommendations/personalized-insight
// (bearer auth required). Profile source failures degrade to the
// no-history insight, never to an error.
func (h *RecommendationHandler) PersonalizedInsight(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "PersonalizedInsight")
	defer span.End()

	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var profile *models.RiderProfile
	if h.profiles != nil {
		var err error
		profile, err = h.profiles.Profile(ctx, userID)
		if err != nil {
			h.logger.Warn("profile fetch failed, returning fallback insight",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			profile = nil
		}
	}

	respond(c, http.StatusOK, "Personalized insight generated", gin.H{
		"insight": personalization.Insight(profile),
	})
}

func (h *RecommendationHandler) respondEngineError(c *gin.Context, err error) {
	var criteriaErr *recommendation.CriteriaError
	switch {
	case errors.As(err, &criteriaErr):
		respondError(c, http.StatusBadRequest, criteriaErr.Error())
	case errors.Is(err, recommendation.ErrInvalidDateRange):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, "vehicle catalog is temporarily unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Error("recommendation pipeline failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to generate recommendations")
	}
}
