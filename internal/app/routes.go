package app

import (
	"github.com/gapfit/gapfit/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Students
	r.HandleFunc("/api/student", deps.StudentHandler.CreateStudent).Methods("POST")
	r.HandleFunc("/api/student/current", deps.StudentHandler.CurrentStudent).Methods("GET")

	// Schedule
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.UploadSchedule).Methods("POST")
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/schedule/events", deps.ScheduleHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/schedule/locations", deps.ScheduleHandler.AssignLocations).Methods("PUT")
	r.HandleFunc("/api/schedule/free-blocks", deps.FreetimeHandler.GetFreeBlocks).Methods("GET")

	// Campus locations
	r.HandleFunc("/api/locations", deps.LocationHandler.ListDestinations).Methods("GET")
	r.HandleFunc("/api/locations/distance", deps.LocationHandler.MeasureDistance).Methods("POST")
	r.HandleFunc("/api/locations/{locationId}", deps.LocationHandler.GetDestination).Methods("GET")

	// Suggestions
	r.HandleFunc("/api/suggestions", deps.SuggestionHandler.GenerateSuggestions).Methods("POST")

	// Health
	r.HandleFunc("/api/health", deps.HealthHandler.GetHealth).Methods("GET")
}
