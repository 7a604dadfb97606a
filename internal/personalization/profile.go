package personalization

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/models"
)

// Querier is the subset of pgxpool.Pool the service needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Service aggregates a rider's booking history into a profile,
// cache-aside in redis. Every read is bounded by its own timeout so a
// slow profile source can never block the recommendation pipeline.
type Service struct {
	db       Querier
	redis    *redis.Client
	cacheTTL time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

func NewService(db Querier, redisClient *redis.Client, cacheTTL, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		timeout:  timeout,
		logger:   logger,
	}
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("reco:profile:%d", userID)
}

const historyQuery = `
	SELECT v.vehicle_type, v.brand, b.trip_type,
	       EXTRACT(EPOCH FROM (b.end_time - b.start_time)) / 3600.0
	FROM bookings b
	JOIN vehicles v ON v.id = b.vehicle_id
	WHERE b.user_id = $1`

// Profile returns the rider's aggregated history, or a zero-booking
// profile for users with none. Errors mean the source was unreachable
// within the timeout; callers treat that as "skip personalization".
func (s *Service) Profile(ctx context.Context, userID int64) (*models.RiderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, cacheKey(userID)).Result(); err == nil {
			var profile models.RiderProfile
			if err := json.Unmarshal([]byte(raw), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	profile, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.redis.Set(ctx, cacheKey(userID), data, s.cacheTTL).Err(); err != nil {
				s.logger.Debug("profile cache write failed", zap.Int64("user_id", userID), zap.Error(err))
			}
		}
	}

	return profile, nil
}

func (s *Service) aggregate(ctx context.Context, userID int64) (*models.RiderProfile, error) {
	rows, err := s.db.Query(ctx, historyQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profile := &models.RiderProfile{
		UserID:      userID,
		TypeCounts:  make(map[string]int),
		BrandCounts: make(map[string]int),
	}
	tripTypeCounts := make(map[string]int)
	totalHours := 0.0

	for rows.Next() {
		var vehicleType, brand, tripType string
		var hours float64
		if err := rows.Scan(&vehicleType, &brand, &tripType, &hours); err != nil {
			return nil, err
		}
		profile.TotalBookings++
		profile.TypeCounts[vehicleType]++
		profile.BrandCounts[brand]++
		if tripType != "" {
			tripTypeCounts[tripType]++
		}
		totalHours += hours
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if profile.TotalBookings > 0 {
		profile.AvgTripHours = totalHours / float64(profile.TotalBookings)
	}
	profile.TopTripType = topKey(tripTypeCounts)

	return profile, nil
}

// topKey picks the highest-count key, breaking ties alphabetically so
// the aggregate is stable.
func topKey(counts map[string]int) string {
	best, bestCount := "", 0
	for k, n := range counts {
		if n > bestCount || (n == bestCount && best != "" && k < best) {
			best, bestCount = k, n
		}
	}
	return best
}
