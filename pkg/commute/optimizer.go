package commute

import (
	"math"
	"sort"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/gapfit/gapfit/pkg/geo"
	"github.com/gapfit/gapfit/pkg/location"
	log "github.com/sirupsen/logrus"
)

// Optimizer ranks candidate destinations for a free block. All weights and
// thresholds come from configuration so that ranking and the user-facing
// rationale wording stay driven by the same values.
type Optimizer struct {
	estimator *geo.WalkEstimator
	scoring   config.Scoring
}

func NewOptimizer(estimator *geo.WalkEstimator, scoring config.Scoring) *Optimizer {
	return &Optimizer{estimator: estimator, scoring: scoring}
}

// Rank filters candidates to those that fit the block and sorts them by
// ascending score. An empty result is not an error; it means nothing fits.
// Candidates with identical scores keep their input order.
func (o *Optimizer) Rank(origin, returnTo geo.Point, availableMinutes, activityMinutes int, candidates []location.Destination) ([]Option, error) {
	options := make([]Option, 0, len(candidates))

	for _, candidate := range candidates {
		outbound, err := o.estimator.Minutes(origin, candidate.Coordinates)
		if err != nil {
			return nil, err
		}
		ret, err := o.estimator.Minutes(candidate.Coordinates, returnTo)
		if err != nil {
			return nil, err
		}

		required := outbound + activityMinutes + ret + o.scoring.SafetyBufferMin
		if required > availableMinutes {
			log.Tracef("destination %s infeasible: needs %d of %d minutes", candidate.Id, required, availableMinutes)
			continue
		}

		spare := availableMinutes - (outbound + activityMinutes + ret)
		utilization := float64(required) / float64(availableMinutes)

		options = append(options, Option{
			Destination:         candidate,
			MinutesOutbound:     outbound,
			MinutesReturn:       ret,
			TotalCommuteMinutes: outbound + ret,
			SpareMinutes:        spare,
			Score:               o.score(outbound, ret, spare, utilization),
			Utilization:         utilization,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score < options[j].Score
	})

	return options, nil
}

// score combines four components, each tunable via config.Scoring. Lower is
// better.
func (o *Optimizer) score(outbound, ret, spare int, utilization float64) float64 {
	s := o.scoring

	score := float64(outbound+ret) * s.CommuteWeight
	score += math.Abs(float64(outbound-ret)) * s.ImbalanceWeight

	switch {
	case spare < s.MinSpareMin:
		score += s.TightSparePenalty
	case spare > s.MaxSpareMin:
		score += float64(spare) * s.ExcessSpareWeight
	}

	switch {
	case utilization >= s.UtilizationSweetLow && utilization <= s.UtilizationSweetHigh:
		score += s.SweetSpotBonus
	case utilization > s.UtilizationSweetHigh:
		score += s.OverUtilizationPenalty
	default:
		score += (1 - utilization) * s.UnderUtilizationWeight
	}

	return score
}
