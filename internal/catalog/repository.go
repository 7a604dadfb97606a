package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/models"
)

// Querier is the subset of pgxpool.Pool the repository needs. Tests
// substitute a pgxmock pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository reads the vehicle fleet from postgres.
type Repository struct {
	db     Querier
	logger *zap.Logger
}

func NewRepository(db Querier, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

const listVehiclesQuery = `
	SELECT id, brand, model, vehicle_type, fuel_type, seat_count,
	       daily_rate, hourly_rate, location, status, image_url
	FROM vehicles
	ORDER BY id`

// ListVehicles returns every catalog entry. Rows without a positive
// daily rate cannot be costed and are excluded; the exclusion count is
// logged rather than failing the read.
func (r *Repository) ListVehicles(ctx context.Context) ([]models.VehicleCandidate, error) {
	rows, err := r.db.Query(ctx, listVehiclesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.VehicleCandidate
	malformed := 0
	for rows.Next() {
		var (
			v      models.VehicleCandidate
			status string
		)
		if err := rows.Scan(&v.ID, &v.Brand, &v.Model, &v.VehicleType, &v.FuelType,
			&v.SeatCount, &v.DailyRate, &v.HourlyRate, &v.Location, &status, &v.ImageURL); err != nil {
			return nil, err
		}
		if v.DailyRate <= 0 {
			malformed++
			continue
		}
		v.Available = status == "AVAILABLE"
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if malformed > 0 {
		r.logger.Warn("excluded malformed catalog entries",
			zap.Int("count", malformed),
		)
	}

	return vehicles, nil
}
