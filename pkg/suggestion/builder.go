package suggestion

import (
	"fmt"
	"math"
	"strings"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/gapfit/gapfit/pkg/commute"
	"github.com/gapfit/gapfit/pkg/freetime"
)

const (
	confidenceStep  = 0.15
	confidenceFloor = 0.5
)

// Builder turns ranked commute options into user-facing suggestions. The
// rationale wording reads from the same scoring thresholds the optimizer
// ranks with, so the explanation can never contradict the ranking.
type Builder struct {
	scoring config.Scoring
}

func NewBuilder(scoring config.Scoring) *Builder {
	return &Builder{scoring: scoring}
}

// Build formats up to limit options for one block. Rank starts at 1 for the
// best option; confidence decays with rank down to a floor.
func (b *Builder) Build(block freetime.FreeBlock, options []commute.Option, activityMinutes, limit int) []Suggestion {
	if limit > 0 && len(options) > limit {
		options = options[:limit]
	}

	suggestions := make([]Suggestion, 0, len(options))
	for i, option := range options {
		rank := i + 1
		suggestion := Suggestion{
			Rank:            rank,
			Date:            block.Date,
			BlockStart:      block.Start,
			BlockEnd:        block.End,
			LocationId:      option.Destination.Id,
			LocationName:    option.Destination.Name,
			LocationAddress: option.Destination.Address,
			ActivityMinutes: activityMinutes,
			ConfidenceScore: confidence(rank),
			Reasoning:       b.reasoning(option),
			Commute: CommuteInfo{
				MinutesOutbound:     option.MinutesOutbound,
				MinutesReturn:       option.MinutesReturn,
				TotalCommuteMinutes: option.TotalCommuteMinutes,
				SpareMinutes:        option.SpareMinutes,
			},
		}
		if block.Previous != nil {
			suggestion.PreviousClass = block.Previous.CourseLabel
		}
		if block.Next != nil {
			suggestion.NextClass = block.Next.CourseLabel
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions
}

func confidence(rank int) float64 {
	c := 1.0 - confidenceStep*float64(rank-1)
	c = math.Max(c, confidenceFloor)
	return math.Round(c*100) / 100
}

func (b *Builder) reasoning(option commute.Option) string {
	s := b.scoring
	reasons := make([]string, 0, 3)

	switch {
	case option.TotalCommuteMinutes < s.CommuteExcellentMax:
		reasons = append(reasons, fmt.Sprintf("Excellent location - only %d min total commute", option.TotalCommuteMinutes))
	case option.TotalCommuteMinutes < s.CommuteGoodMax:
		reasons = append(reasons, fmt.Sprintf("Good location with %d min commute", option.TotalCommuteMinutes))
	default:
		reasons = append(reasons, fmt.Sprintf("Feasible with %d min commute", option.TotalCommuteMinutes))
	}

	sweetMid := (s.UtilizationSweetLow + s.UtilizationSweetHigh) / 2
	switch {
	case option.Utilization >= sweetMid:
		reasons = append(reasons, "Great use of your free time")
	case option.Utilization >= s.UtilizationSweetLow:
		reasons = append(reasons, "Efficient time usage")
	}

	switch {
	case option.SpareMinutes >= 2*s.MinSpareMin:
		reasons = append(reasons, fmt.Sprintf("%d min buffer for flexibility", option.SpareMinutes))
	case option.SpareMinutes >= s.MinSpareMin:
		reasons = append(reasons, "Comfortable timing")
	default:
		reasons = append(reasons, "Tight schedule - be prompt")
	}

	return strings.Join(reasons, ". ") + "."
}
