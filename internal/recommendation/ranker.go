package recommendation

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rydio/api/internal/models"
)

// Fan out candidate scoring only for catalogs large enough to pay for
// the goroutine overhead.
const parallelThreshold = 128

// RankResult is the ordered, truncated candidate list plus notes about
// any filter relaxation applied to produce it.
type RankResult struct {
	Candidates  []ScoredCandidate
	Relaxations []string
	OverBudget  bool
}

// Ranker hard-filters the catalog, relaxes filters when nothing
// survives, scores the survivors, and returns the top K in a fully
// deterministic order.
type Ranker struct {
	scorer *Scorer
}

func NewRanker(scorer *Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank runs the filter → relax → score → sort → truncate sequence.
// The only error it can return is the context's, when the caller gave
// up mid-scoring.
func (r *Ranker) Rank(ctx context.Context, c *models.Criteria, catalog []models.VehicleCandidate, k int) (*RankResult, error) {
	result := &RankResult{}
	if len(catalog) == 0 {
		return result, nil
	}

	survivors := hardFilter(c, catalog, false, false)
	if len(survivors) == 0 && c.Location != "" {
		result.Relaxations = append(result.Relaxations, "location filter relaxed")
		survivors = hardFilter(c, catalog, true, false)
	}
	if len(survivors) == 0 {
		result.Relaxations = append(result.Relaxations, "capacity requirement relaxed")
		survivors = hardFilter(c, catalog, true, true)
	}
	if len(survivors) == 0 {
		return result, nil
	}

	scored, err := r.scoreAll(ctx, c, survivors)
	if err != nil {
		return nil, err
	}

	sortCandidates(scored)
	if len(scored) > k {
		scored = scored[:k]
	}
	result.Candidates = scored

	if c.MaxBudget != nil {
		result.OverBudget = allOverBudget(scored, *c.MaxBudget)
	}

	return result, nil
}

// hardFilter applies the pre-scoring exclusions: availability always,
// location substring and strict seating capacity unless relaxed.
func hardFilter(c *models.Criteria, catalog []models.VehicleCandidate, dropLocation, dropCapacity bool) []models.VehicleCandidate {
	var out []models.VehicleCandidate
	location := strings.ToLower(c.Location)
	for i := range catalog {
		v := &catalog[i]
		if !v.Available || v.SeatCount < 1 {
			continue
		}
		if !dropLocation && location != "" && !strings.Contains(strings.ToLower(v.Location), location) {
			continue
		}
		if !dropCapacity && v.SeatCount < c.PassengerCount {
			continue
		}
		out = append(out, *v)
	}
	return out
}

func (r *Ranker) scoreAll(ctx context.Context, c *models.Criteria, candidates []models.VehicleCandidate) ([]ScoredCandidate, error) {
	scored := make([]ScoredCandidate, len(candidates))

	if len(candidates) < parallelThreshold {
		for i := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scored[i] = r.scorer.Score(c, &candidates[i])
		}
		return scored, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(8, runtime.NumCPU()))
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = r.scorer.Score(c, &candidates[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

// sortCandidates orders by match score descending, then ascending
// effective hourly rate, then ascending vehicle ID. The explicit final
// tie-break makes the ordering reproducible for a fixed snapshot.
func sortCandidates(scored []ScoredCandidate) {
	sort.Slice(scored, func(i, j int) bool {
		a, b := &scored[i], &scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		ra, rb := a.Vehicle.EffectiveHourlyRate(), b.Vehicle.EffectiveHourlyRate()
		if ra != rb {
			return ra < rb
		}
		return a.Vehicle.ID < b.Vehicle.ID
	})
}

func allOverBudget(scored []ScoredCandidate, budget float64) bool {
	for i := range scored {
		if scored[i].EstimatedCost == nil || *scored[i].EstimatedCost <= budget {
			return false
		}
	}
	return len(scored) > 0
}
