package freetime

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

type FreeBlockDTO struct {
	Date             string `json:"date"`
	Start            string `json:"start"`
	End              string `json:"end"`
	AvailableMinutes int    `json:"availableMinutes"`
	PreviousClass    string `json:"previousClass,omitempty"`
	NextClass        string `json:"nextClass,omitempty"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetFreeBlocks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Listing free blocks")

	blocks, err := h.service.GetFreeBlocks(r.Context())
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			rest.WriteError(w, http.StatusNotFound, "No schedule uploaded", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]FreeBlockDTO, 0, len(blocks))
	for _, block := range blocks {
		response = append(response, blockToDTO(block))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func blockToDTO(block FreeBlock) FreeBlockDTO {
	dto := FreeBlockDTO{
		Date:             block.Date,
		Start:            block.Start.Format(time.RFC3339),
		End:              block.End.Format(time.RFC3339),
		AvailableMinutes: block.AvailableMinutes,
	}
	if block.Previous != nil {
		dto.PreviousClass = block.Previous.CourseLabel
	}
	if block.Next != nil {
		dto.NextClass = block.Next.CourseLabel
	}
	return dto
}
