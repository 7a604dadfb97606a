package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydio/api/internal/models"
)

func newTestRanker() *Ranker {
	return NewRanker(NewScorer(DefaultWeights))
}

func locatedVehicle(id int64, vt models.VehicleType, seats int, hourlyRate float64, location string) models.VehicleCandidate {
	v := testVehicle(id, vt, seats, hourlyRate)
	v.Location = location
	return v
}

func TestRankHardFilters(t *testing.T) {
	unavailable := testVehicle(1, models.VehicleTypeCar, 5, 90)
	unavailable.Available = false
	zeroSeats := testVehicle(2, models.VehicleTypeCar, 0, 90)
	elsewhere := locatedVehicle(3, models.VehicleTypeCar, 5, 90, "Mumbai")
	tooSmall := locatedVehicle(4, models.VehicleTypeScooter, 2, 30, "Bengaluru")
	match := locatedVehicle(5, models.VehicleTypeCar, 5, 90, "Bengaluru Central")

	c := &models.Criteria{
		TripType:       models.TripTypeFamily,
		PassengerCount: 4,
		Duration:       models.DurationShort,
		Location:       "bengaluru",
	}

	result, err := newTestRanker().Rank(context.Background(), c,
		[]models.VehicleCandidate{unavailable, zeroSeats, elsewhere, tooSmall, match}, 10)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, int64(5), result.Candidates[0].Vehicle.ID)
	assert.Empty(t, result.Relaxations)
}

func TestRankLocationRelaxation(t *testing.T) {
	elsewhere := locatedVehicle(1, models.VehicleTypeCar, 5, 90, "Mumbai")
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 2,
		Duration:       models.DurationShort,
		Location:       "Goa",
	}

	result, err := newTestRanker().Rank(context.Background(), c,
		[]models.VehicleCandidate{elsewhere}, 10)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, []string{"location filter relaxed"}, result.Relaxations)
}

func TestRankCapacityRelaxation(t *testing.T) {
	small := locatedVehicle(1, models.VehicleTypeCar, 4, 90, "Goa")
	c := &models.Criteria{
		TripType:       models.TripTypeFamily,
		PassengerCount: 7,
		Duration:       models.DurationShort,
		Location:       "Goa",
	}

	result, err := newTestRanker().Rank(context.Background(), c,
		[]models.VehicleCandidate{small}, 10)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Contains(t, result.Relaxations, "capacity requirement relaxed")
	// partial credit for the undersized vehicle
	assert.InDelta(t, 4.0/7.0, result.Candidates[0].Breakdown[DimCapacity]/DefaultWeights.Capacity, 1e-9)
}

func TestRankEmptyCatalog(t *testing.T) {
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationShort,
		Location:       "Goa",
	}

	result, err := newTestRanker().Rank(context.Background(), c, nil, 10)
	require.NoError(t, err)

	assert.Empty(t, result.Candidates)
	assert.Empty(t, result.Relaxations)
}

func TestRankDeterministicTieBreaks(t *testing.T) {
	// leisure with no optional criteria scores every candidate 1,
	// leaving ordering entirely to the tie-breaks
	expensive := testVehicle(3, models.VehicleTypeCar, 5, 90)
	cheap := testVehicle(2, models.VehicleTypeScooter, 2, 25)
	cheapHigherID := testVehicle(4, models.VehicleTypeBike, 2, 25)

	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationShort,
	}

	result, err := newTestRanker().Rank(context.Background(), c,
		[]models.VehicleCandidate{expensive, cheapHigherID, cheap}, 10)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 3)
	assert.Equal(t, int64(2), result.Candidates[0].Vehicle.ID)
	assert.Equal(t, int64(4), result.Candidates[1].Vehicle.ID)
	assert.Equal(t, int64(3), result.Candidates[2].Vehicle.ID)
}

func TestRankOrdersByScore(t *testing.T) {
	car := testVehicle(1, models.VehicleTypeCar, 5, 90)
	scooter := testVehicle(2, models.VehicleTypeScooter, 2, 25)

	c := &models.Criteria{
		TripType:       models.TripTypeFamily,
		PassengerCount: 4,
		Duration:       models.DurationShort,
	}

	result, err := newTestRanker().Rank(context.Background(), c,
		[]models.VehicleCandidate{scooter, car}, 10)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, int64(1), result.Candidates[0].Vehicle.ID)
}

func TestRankTruncatesToK(t *testing.T) {
	catalog := []models.VehicleCandidate{
		testVehicle(1, models.VehicleTypeCar, 5, 90),
		testVehicle(2, models.VehicleTypeScooter, 2, 25),
		testVehicle(3, models.VehicleTypeBike, 2, 20),
		testVehicle(4, models.VehicleTypeBicycle, 1, 15),
	}
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationShort,
	}

	result, err := newTestRanker().Rank(context.Background(), c, catalog, 3)
	require.NoError(t, err)

	assert.Len(t, result.Candidates, 3)
}

func TestRankOverBudgetFlag(t *testing.T) {
	budget := 50.0
	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationLong,
		MaxBudget:      &budget,
	}

	t.Run("all over budget", func(t *testing.T) {
		result, err := newTestRanker().Rank(context.Background(), c,
			[]models.VehicleCandidate{testVehicle(1, models.VehicleTypeCar, 5, 90)}, 10)
		require.NoError(t, err)
		assert.True(t, result.OverBudget)
	})

	t.Run("one within budget", func(t *testing.T) {
		result, err := newTestRanker().Rank(context.Background(), c,
			[]models.VehicleCandidate{
				testVehicle(1, models.VehicleTypeCar, 5, 90),
				testVehicle(2, models.VehicleTypeBicycle, 1, 5),
			}, 10)
		require.NoError(t, err)
		assert.False(t, result.OverBudget)
	})
}

func scoredIDs(scored []ScoredCandidate) []int64 {
	ids := make([]int64, len(scored))
	for i := range scored {
		ids[i] = scored[i].Vehicle.ID
	}
	return ids
}

func TestRankParallelMatchesSequential(t *testing.T) {
	// enough candidates to cross the fan-out threshold
	types := []models.VehicleType{
		models.VehicleTypeCar, models.VehicleTypeBike,
		models.VehicleTypeScooter, models.VehicleTypeBicycle,
	}
	catalog := make([]models.VehicleCandidate, 0, 2*parallelThreshold)
	for i := 1; i <= 2*parallelThreshold; i++ {
		catalog = append(catalog,
			testVehicle(int64(i), types[i%len(types)], 1+i%7, float64(10+(i*7)%90)))
	}

	weather := models.WeatherRainy
	budget := 200.0
	c := &models.Criteria{
		TripType:        models.TripTypeSolo,
		PassengerCount:  1,
		Duration:        models.DurationShort,
		Weather:         &weather,
		RequiresLuggage: true,
		MaxBudget:       &budget,
	}

	result, err := newTestRanker().Rank(context.Background(), c, catalog, len(catalog))
	require.NoError(t, err)
	require.Len(t, result.Candidates, len(catalog))
	require.Empty(t, result.Relaxations)

	// sequential reference: score candidates one by one in catalog
	// order and apply the same sort
	scorer := NewScorer(DefaultWeights)
	expected := make([]ScoredCandidate, len(catalog))
	for i := range catalog {
		expected[i] = scorer.Score(c, &catalog[i])
	}
	sortCandidates(expected)

	assert.Equal(t, scoredIDs(expected), scoredIDs(result.Candidates))

	again, err := newTestRanker().Rank(context.Background(), c, catalog, len(catalog))
	require.NoError(t, err)
	assert.Equal(t, scoredIDs(result.Candidates), scoredIDs(again.Candidates))
}

func TestRankCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &models.Criteria{
		TripType:       models.TripTypeLeisure,
		PassengerCount: 1,
		Duration:       models.DurationShort,
	}

	_, err := newTestRanker().Rank(ctx, c,
		[]models.VehicleCandidate{testVehicle(1, models.VehicleTypeCar, 5, 90)}, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
