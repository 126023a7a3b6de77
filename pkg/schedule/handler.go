package schedule

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gapfit/gapfit/internal/rest"
	log "github.com/sirupsen/logrus"
)

type SummaryDTO struct {
	TotalClasses  int      `json:"totalClasses"`
	UniqueCourses []string `json:"uniqueCourses"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
	DroppedRules  int      `json:"droppedRules,omitempty"`
}

type EventDTO struct {
	UID         string `json:"uid"`
	CourseLabel string `json:"courseLabel"`
	Start       string `json:"start"`
	End         string `json:"end"`
	RawLocation string `json:"rawLocation,omitempty"`
	LocationId  string `json:"locationId,omitempty"`
}

type AssignmentDTO struct {
	CourseLabel string `json:"courseLabel"`
	LocationId  string `json:"locationId"`
}

// LocationChecker reports whether a destination id exists in the loaded
// reference set.
type LocationChecker func(id string) bool

type Handler struct {
	service       Service
	knownLocation LocationChecker
}

func NewHandler(service Service, knownLocation LocationChecker) *Handler {
	return &Handler{service: service, knownLocation: knownLocation}
}

// UploadSchedule accepts a calendar export, either as a raw ICS body or as
// JSON {"ics": "..."}.
func (h *Handler) UploadSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Uploading schedule")

	payload, err := readICSPayload(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	summary, err := h.service.UploadSchedule(r.Context(), payload)
	if err != nil {
		rest.WriteError(w, http.StatusUnprocessableEntity, "Could not parse calendar", err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func readICSPayload(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var request struct {
			ICS string `json:"ics"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			return nil, err
		}
		return []byte(request.ICS), nil
	}
	return io.ReadAll(r.Body)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			rest.WriteError(w, http.StatusNotFound, "No schedule uploaded", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.service.GetSchedule(r.Context())
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			rest.WriteError(w, http.StatusNotFound, "No schedule uploaded", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]EventDTO, 0, len(events))
	for _, event := range events {
		response = append(response, eventToDTO(event))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// AssignLocations attaches destination ids to all occurrences of the named
// courses. Fuzzy building-name matching happens upstream; only resolved ids
// are accepted here.
func (h *Handler) AssignLocations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Assigning class locations")

	var request struct {
		Assignments []AssignmentDTO `json:"assignments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if len(request.Assignments) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "No assignments provided", "")
		return
	}

	updatedByCourse := make(map[string]int, len(request.Assignments))
	for _, assignment := range request.Assignments {
		if assignment.CourseLabel == "" || assignment.LocationId == "" {
			rest.WriteError(w, http.StatusBadRequest, "Assignment requires courseLabel and locationId", "")
			return
		}
		if !h.knownLocation(assignment.LocationId) {
			rest.WriteError(w, http.StatusNotFound, "Unknown location", assignment.LocationId)
			return
		}
		updated, err := h.service.AssignLocation(r.Context(), assignment.CourseLabel, assignment.LocationId)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		updatedByCourse[assignment.CourseLabel] = updated
	}

	response := struct {
		UpdatedByCourse map[string]int `json:"updatedByCourse"`
	}{UpdatedByCourse: updatedByCourse}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func summaryToDTO(summary Summary) SummaryDTO {
	dto := SummaryDTO{
		TotalClasses:  summary.TotalClasses,
		UniqueCourses: summary.UniqueCourses,
		DroppedRules:  summary.DroppedRules,
	}
	if !summary.StartDate.IsZero() {
		dto.StartDate = summary.StartDate.Format("2006-01-02")
		dto.EndDate = summary.EndDate.Format("2006-01-02")
	}
	return dto
}

func eventToDTO(event Event) EventDTO {
	return EventDTO{
		UID:         event.UID,
		CourseLabel: event.CourseLabel,
		Start:       event.Start.Format(time.RFC3339),
		End:         event.End.Format(time.RFC3339),
		RawLocation: event.RawLocation,
		LocationId:  event.LocationRef,
	}
}
