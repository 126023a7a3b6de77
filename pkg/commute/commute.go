package commute

import (
	"github.com/gapfit/gapfit/pkg/location"
)

// Option is one feasible destination for a free block, with its walking legs
// and ranking score. Options are computed per request and never stored.
type Option struct {
	Destination         location.Destination
	MinutesOutbound     int
	MinutesReturn       int
	TotalCommuteMinutes int
	SpareMinutes        int
	// Score ranks options, lower is better.
	Score float64
	// Utilization is the fraction of the free block consumed by commute,
	// activity and the safety buffer.
	Utilization float64
}
