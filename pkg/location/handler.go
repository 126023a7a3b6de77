package location

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gapfit/gapfit/internal/rest"
	"github.com/gapfit/gapfit/pkg/geo"
	log "github.com/sirupsen/logrus"
)

type DestinationDTO struct {
	Id          string           `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address,omitempty"`
	Coordinates geo.Point        `json:"coordinates"`
	Category    string           `json:"category"`
	Hours       map[string]Hours `json:"hours,omitempty"`
}

type Handler struct {
	catalog   *Catalog
	estimator *geo.WalkEstimator
}

func NewHandler(catalog *Catalog, estimator *geo.WalkEstimator) *Handler {
	return &Handler{catalog: catalog, estimator: estimator}
}

// ListDestinations returns the loaded reference set, optionally filtered by
// category.
func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	category := r.URL.Query().Get("category")
	var destinations []Destination
	if category != "" {
		destinations = h.catalog.ByCategory(category)
	} else {
		destinations = h.catalog.All()
	}

	response := make([]DestinationDTO, 0, len(destinations))
	for _, d := range destinations {
		response = append(response, destinationToDTO(d))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["locationId"]
	destination, ok := h.catalog.ByID(id)
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Unknown location", id)
		return
	}
	if err := json.NewEncoder(w).Encode(destinationToDTO(destination)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// MeasureDistance is a diagnostic endpoint returning distance and walking
// time between two known destinations.
func (h *Handler) MeasureDistance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Measuring distance between two locations")

	var request struct {
		FromId string `json:"fromId"`
		ToId   string `json:"toId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	from, ok := h.catalog.ByID(request.FromId)
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Unknown location", request.FromId)
		return
	}
	to, ok := h.catalog.ByID(request.ToId)
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Unknown location", request.ToId)
		return
	}

	info, err := h.estimator.Measure(from.Coordinates, to.Coordinates)
	if err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinates) {
			rest.WriteError(w, http.StatusUnprocessableEntity, "Invalid coordinates in location data", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		From string `json:"from"`
		To   string `json:"to"`
		geo.Info
	}{From: from.Name, To: to.Name, Info: info}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func destinationToDTO(d Destination) DestinationDTO {
	return DestinationDTO{
		Id:          d.Id,
		Name:        d.Name,
		Address:     d.Address,
		Coordinates: d.Coordinates,
		Category:    d.Category,
		Hours:       d.Hours,
	}
}
