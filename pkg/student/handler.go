package student

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gapfit/gapfit/internal/rest"
	log "github.com/sirupsen/logrus"
)

type StudentDTO struct {
	Id              string `json:"id"`
	DisplayName     string `json:"displayName"`
	Timezone        string `json:"timezone,omitempty"`
	ActivityMinutes int    `json:"activityMinutes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new student")

	var request StudentDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	created, err := h.service.CreateStudent(r.Context(), Student{
		DisplayName: request.DisplayName,
		Settings: Settings{
			Timezone:        request.Timezone,
			ActivityMinutes: request.ActivityMinutes,
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(studentToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CurrentStudent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current, err := h.service.GetCurrentStudent(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoStudent) {
			rest.WriteError(w, http.StatusNotFound, "Student not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(studentToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func studentToDTO(s Student) StudentDTO {
	return StudentDTO{
		Id:              s.Id,
		DisplayName:     s.DisplayName,
		Timezone:        s.Settings.Timezone,
		ActivityMinutes: s.Settings.ActivityMinutes,
	}
}
