package app

import (
	"database/sql"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/gapfit/gapfit/internal/event_bus"
	"github.com/gapfit/gapfit/internal/utils"
	"github.com/gapfit/gapfit/pkg/commute"
	"github.com/gapfit/gapfit/pkg/freetime"
	"github.com/gapfit/gapfit/pkg/geo"
	"github.com/gapfit/gapfit/pkg/location"
	"github.com/gapfit/gapfit/pkg/schedule"
	"github.com/gapfit/gapfit/pkg/student"
	"github.com/gapfit/gapfit/pkg/suggestion"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	StudentRepo    student.Repository
	StudentService student.Service
	StudentHandler *student.Handler

	Catalog         *location.Catalog
	WalkEstimator   *geo.WalkEstimator
	LocationHandler *location.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService schedule.Service
	ScheduleHandler *schedule.Handler

	FreetimeService freetime.Service
	FreetimeHandler *freetime.Handler

	Optimizer         *commute.Optimizer
	SuggestionBuilder *suggestion.Builder
	OracleClient      suggestion.OracleClient
	SuggestionService suggestion.Service
	SuggestionHandler *suggestion.Handler

	HealthHandler *HealthHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.StudentRepo = student.NewRepository(db)
	deps.StudentService = student.NewService(deps.StudentRepo)
	deps.StudentHandler = student.NewHandler(deps.StudentService)

	catalog, err := location.LoadCatalog(cfg.Locations.File)
	if err != nil {
		return nil, err
	}
	deps.Catalog = catalog
	deps.WalkEstimator = geo.NewWalkEstimator(cfg.Walking)
	deps.LocationHandler = location.NewHandler(deps.Catalog, deps.WalkEstimator)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, func(id string) bool {
		_, ok := deps.Catalog.ByID(id)
		return ok
	})

	freetimeService, err := freetime.NewService(deps.ScheduleService, cfg.Day)
	if err != nil {
		return nil, err
	}
	deps.FreetimeService = freetimeService
	deps.FreetimeHandler = freetime.NewHandler(deps.FreetimeService)

	deps.Optimizer = commute.NewOptimizer(deps.WalkEstimator, cfg.Scoring)
	deps.SuggestionBuilder = suggestion.NewBuilder(cfg.Scoring)
	if cfg.Oracle.Enabled {
		deps.OracleClient = suggestion.NewOracleClient(cfg.Oracle)
	}
	deps.SuggestionService = suggestion.NewService(
		deps.FreetimeService,
		deps.Catalog,
		deps.Optimizer,
		deps.SuggestionBuilder,
		deps.OracleClient,
		deps.EventBus,
	)
	deps.SuggestionHandler = suggestion.NewHandler(deps.SuggestionService)

	deps.HealthHandler = NewHealthHandler(deps.Catalog, deps.EventBus, deps.Clock)

	return deps, nil
}
