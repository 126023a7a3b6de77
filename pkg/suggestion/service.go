package suggestion

import (
	"context"
	"fmt"

	"github.com/gapfit/gapfit/internal/event_bus"
	"github.com/gapfit/gapfit/pkg/commute"
	"github.com/gapfit/gapfit/pkg/freetime"
	"github.com/gapfit/gapfit/pkg/location"
	"github.com/gapfit/gapfit/pkg/student"
	log "github.com/sirupsen/logrus"
)

const (
	ProviderOptimizer = "optimizer"
	ProviderOracle    = "oracle"

	// suggestionsPerBlock caps how many options each block surfaces.
	suggestionsPerBlock = 3
)

// Request narrows one suggestion run. Zero values fall back to the student's
// settings and the default destination category.
type Request struct {
	ActivityMinutes int
	Category        string
}

type Service interface {
	Generate(ctx context.Context, request Request) (Result, error)
}

type ServiceImpl struct {
	freetimeService freetime.Service
	catalog         *location.Catalog
	optimizer       *commute.Optimizer
	builder         *Builder
	oracle          OracleClient
	bus             *event_bus.EventBus
}

// NewService wires the suggestion pipeline. oracle may be nil, in which case
// only the deterministic optimizer ranking is used.
func NewService(
	freetimeService freetime.Service,
	catalog *location.Catalog,
	optimizer *commute.Optimizer,
	builder *Builder,
	oracle OracleClient,
	bus *event_bus.EventBus,
) *ServiceImpl {
	return &ServiceImpl{
		freetimeService: freetimeService,
		catalog:         catalog,
		optimizer:       optimizer,
		builder:         builder,
		oracle:          oracle,
		bus:             bus,
	}
}

// Generate derives suggestions for every analyzable free block of the
// student's schedule. Blocks that cannot be analyzed are reported in
// Result.Skipped with the reason; "no feasible destination" is not a skip,
// it is simply a block contributing zero suggestions.
func (s *ServiceImpl) Generate(ctx context.Context, request Request) (Result, error) {
	current, err := student.CurrentStudent(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get current student: %w", err)
	}

	activityMinutes := request.ActivityMinutes
	if activityMinutes <= 0 {
		activityMinutes = current.Settings.ActivityMinutes
	}
	category := request.Category
	if category == "" {
		category = "gym"
	}

	blocks, err := s.freetimeService.GetFreeBlocks(ctx)
	if err != nil {
		return Result{}, err
	}

	candidates := s.catalog.ByCategory(category)
	result := Result{
		Suggestions: make([]Suggestion, 0),
		Skipped:     make([]SkippedBlock, 0),
		Provider:    ProviderOptimizer,
	}

	for _, block := range blocks {
		suggestions, skip, err := s.analyzeBlock(block, activityMinutes, candidates)
		if err != nil {
			return Result{}, err
		}
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		result.Suggestions = append(result.Suggestions, suggestions...)
	}

	if s.oracle != nil {
		s.applyOracle(ctx, blocks, candidates, activityMinutes, &result)
	}

	if s.bus != nil {
		_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.SuggestionsGenerated, event_bus.SuggestionsGeneratedData{
			StudentId:       current.Id,
			BlockCount:      len(blocks),
			SuggestionCount: len(result.Suggestions),
			SkippedBlocks:   len(result.Skipped),
			Provider:        result.Provider,
		}))
	}

	return result, nil
}

func (s *ServiceImpl) analyzeBlock(block freetime.FreeBlock, activityMinutes int, candidates []location.Destination) ([]Suggestion, *SkippedBlock, error) {
	if !block.Anchored() {
		return nil, &SkippedBlock{
			Date:   block.Date,
			Start:  block.Start,
			End:    block.End,
			Reason: "block is not between two classes",
		}, nil
	}

	if block.Previous.LocationRef == "" || block.Next.LocationRef == "" {
		return nil, &SkippedBlock{
			Date:   block.Date,
			Start:  block.Start,
			End:    block.End,
			Reason: "surrounding classes have no assigned location",
		}, nil
	}

	origin, ok := s.catalog.ByID(block.Previous.LocationRef)
	if !ok {
		return nil, &SkippedBlock{
			Date:   block.Date,
			Start:  block.Start,
			End:    block.End,
			Reason: fmt.Sprintf("unknown location id %q on preceding class", block.Previous.LocationRef),
		}, nil
	}
	returnTo, ok := s.catalog.ByID(block.Next.LocationRef)
	if !ok {
		return nil, &SkippedBlock{
			Date:   block.Date,
			Start:  block.Start,
			End:    block.End,
			Reason: fmt.Sprintf("unknown location id %q on following class", block.Next.LocationRef),
		}, nil
	}

	open := make([]location.Destination, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.OpenDuring(block.Start, block.End) {
			open = append(open, candidate)
		}
	}

	options, err := s.optimizer.Rank(origin.Coordinates, returnTo.Coordinates, block.AvailableMinutes, activityMinutes, open)
	if err != nil {
		return nil, nil, err
	}

	return s.builder.Build(block, options, activityMinutes, suggestionsPerBlock), nil, nil
}

// applyOracle overlays the oracle's reasoning and confidence on matching
// deterministic suggestions. Any failure leaves the deterministic result
// untouched; the oracle can refine the ranking's wording but never introduce
// a destination the optimizer ruled infeasible.
func (s *ServiceImpl) applyOracle(ctx context.Context, blocks []freetime.FreeBlock, candidates []location.Destination, activityMinutes int, result *Result) {
	oracleSuggestions, err := s.oracle.GenerateSuggestions(ctx, blocks, candidates, activityMinutes)
	if err != nil {
		log.Warnf("suggestion oracle unavailable, using optimizer ranking: %v", err)
		return
	}

	type key struct {
		date       string
		locationId string
	}
	byKey := make(map[key]OracleSuggestion, len(oracleSuggestions))
	for _, os := range oracleSuggestions {
		byKey[key{os.Date, os.LocationId}] = os
	}

	matched := 0
	for i := range result.Suggestions {
		if os, ok := byKey[key{result.Suggestions[i].Date, result.Suggestions[i].LocationId}]; ok {
			if os.Reasoning != "" {
				result.Suggestions[i].Reasoning = os.Reasoning
			}
			if os.Confidence > 0 && os.Confidence <= 1 {
				result.Suggestions[i].ConfidenceScore = os.Confidence
			}
			matched++
		}
	}

	if matched == 0 {
		log.Debug("oracle response matched no feasible suggestions, keeping optimizer output")
		return
	}
	result.Provider = ProviderOracle
	log.Debugf("oracle annotated %d of %d suggestions", matched, len(result.Suggestions))
}
