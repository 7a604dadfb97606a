package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rydio/api/internal/config"
	"github.com/rydio/api/internal/database"
)

type seedVehicle struct {
	brand       string
	model       string
	vehicleType string
	fuelType    string
	seatCount   int
	dailyRate   float64
	hourlyRate  *float64
	location    string
	imageURL    string
}

func hourly(rate float64) *float64 { return &rate }

// Demo fleet used by local environments and the staging deployment.
var fleet = []seedVehicle{
	{"Honda", "Activa 6G", "SCOOTER", "PETROL", 2, 400, hourly(25), "Bengaluru", "https://images.rydio.dev/activa-6g.jpg"},
	{"Maruti", "Swift", "CAR", "PETROL", 5, 1800, hourly(90), "Bengaluru", "https://images.rydio.dev/swift.jpg"},
	{"Hero", "Splendor Plus", "BIKE", "PETROL", 2, 350, hourly(20), "Mumbai", "https://images.rydio.dev/splendor-plus.jpg"},
	{"Hyundai", "i20", "CAR", "PETROL", 5, 2000, hourly(100), "Mumbai", "https://images.rydio.dev/i20.jpg"},
	{"Ola", "S1 Pro", "SCOOTER", "ELECTRIC", 2, 500, hourly(30), "Bengaluru", "https://images.rydio.dev/s1-pro.jpg"},
	{"Mahindra", "Thar", "CAR", "DIESEL", 4, 3500, hourly(175), "Goa", "https://images.rydio.dev/thar.jpg"},
	{"Trek", "City Bike", "BICYCLE", "NONE", 1, 200, hourly(15), "Goa", "https://images.rydio.dev/trek-city.jpg"},
	{"Toyota", "Innova Crysta", "CAR", "DIESEL", 7, 4000, nil, "Mumbai", "https://images.rydio.dev/innova.jpg"},
}

const insertVehicle = `
	INSERT INTO vehicles (brand, model, vehicle_type, fuel_type, seat_count,
	                      daily_rate, hourly_rate, location, image_url)
	SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
	WHERE NOT EXISTS (
		SELECT 1 FROM vehicles WHERE brand = $1 AND model = $2 AND location = $8
	)`

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	inserted := 0
	for _, v := range fleet {
		tag, err := db.Pool().Exec(ctx, insertVehicle,
			v.brand, v.model, v.vehicleType, v.fuelType, v.seatCount,
			v.dailyRate, v.hourlyRate, v.location, v.imageURL)
		if err != nil {
			logger.Fatal("failed to seed vehicle",
				zap.String("brand", v.brand),
				zap.String("model", v.model),
				zap.Error(err))
		}
		inserted += int(tag.RowsAffected())
	}

	logger.Info("seed complete",
		zap.Int("fleet_size", len(fleet)),
		zap.Int("inserted", inserted))
}
