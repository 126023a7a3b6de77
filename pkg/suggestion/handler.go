package suggestion

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gapfit/gapfit/internal/rest"
	"github.com/gapfit/gapfit/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type SuggestionDTO struct {
	Rank            int            `json:"rank"`
	Date            string         `json:"date"`
	StartTime       string         `json:"startTime"`
	EndTime         string         `json:"endTime"`
	LocationId      string         `json:"locationId"`
	LocationName    string         `json:"locationName"`
	LocationAddress string         `json:"locationAddress,omitempty"`
	ActivityMinutes int            `json:"activityMinutes"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Reasoning       string         `json:"reasoning"`
	Commute         CommuteInfoDTO `json:"commute"`
	PreviousClass   string         `json:"previousClass,omitempty"`
	NextClass       string         `json:"nextClass,omitempty"`
}

type CommuteInfoDTO struct {
	MinutesOutbound     int `json:"minutesOutbound"`
	MinutesReturn       int `json:"minutesReturn"`
	TotalCommuteMinutes int `json:"totalCommuteMinutes"`
	SpareMinutes        int `json:"spareMinutes"`
}

type SkippedBlockDTO struct {
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type ResultDTO struct {
	Suggestions []SuggestionDTO   `json:"suggestions"`
	Skipped     []SkippedBlockDTO `json:"skippedBlocks"`
	Provider    string            `json:"provider"`
}

// GenerateSuggestions runs the suggestion pipeline for the current student.
func (h *Handler) GenerateSuggestions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Generating suggestions")

	var request struct {
		ActivityMinutes int    `json:"activityMinutes"`
		Category        string `json:"category"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
			return
		}
	}
	if request.ActivityMinutes < 0 {
		rest.WriteError(w, http.StatusBadRequest, "activityMinutes must be positive", "")
		return
	}

	result, err := h.service.Generate(r.Context(), Request{
		ActivityMinutes: request.ActivityMinutes,
		Category:        request.Category,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			rest.WriteError(w, http.StatusNotFound, "No schedule uploaded", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(resultToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func resultToDTO(result Result) ResultDTO {
	dto := ResultDTO{
		Suggestions: make([]SuggestionDTO, 0, len(result.Suggestions)),
		Skipped:     make([]SkippedBlockDTO, 0, len(result.Skipped)),
		Provider:    result.Provider,
	}
	for _, s := range result.Suggestions {
		dto.Suggestions = append(dto.Suggestions, SuggestionDTO{
			Rank:            s.Rank,
			Date:            s.Date,
			StartTime:       s.BlockStart.Format("15:04"),
			EndTime:         s.BlockEnd.Format("15:04"),
			LocationId:      s.LocationId,
			LocationName:    s.LocationName,
			LocationAddress: s.LocationAddress,
			ActivityMinutes: s.ActivityMinutes,
			ConfidenceScore: s.ConfidenceScore,
			Reasoning:       s.Reasoning,
			Commute: CommuteInfoDTO{
				MinutesOutbound:     s.Commute.MinutesOutbound,
				MinutesReturn:       s.Commute.MinutesReturn,
				TotalCommuteMinutes: s.Commute.TotalCommuteMinutes,
				SpareMinutes:        s.Commute.SpareMinutes,
			},
			PreviousClass: s.PreviousClass,
			NextClass:     s.NextClass,
		})
	}
	for _, skipped := range result.Skipped {
		dto.Skipped = append(dto.Skipped, SkippedBlockDTO{
			Date:   skipped.Date,
			Start:  skipped.Start.Format(time.RFC3339),
			End:    skipped.End.Format(time.RFC3339),
			Reason: skipped.Reason,
		})
	}
	return dto
}
