package location

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gapfit/gapfit/pkg/geo"
	log "github.com/sirupsen/logrus"
)

// Catalog holds the immutable destination reference set for the process
// lifetime. It is safe for concurrent readers; nothing mutates it after load.
type Catalog struct {
	all  []Destination
	byId map[string]Destination
}

type destinationFile struct {
	Locations []destinationRecord `json:"locations"`
}

type destinationRecord struct {
	Id          string           `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Type        string           `json:"type"`
	Coordinates geo.Point        `json:"coordinates"`
	Hours       map[string]hours `json:"hours"`
}

type hours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// LoadCatalog reads the destination dataset from a JSON file. Every entry
// must carry valid coordinates; a bad entry fails the whole load since the
// dataset is reference data and a silent skip would hide a data-integrity
// problem.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations file %s: %w", path, err)
	}

	var parsed destinationFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid locations file %s: %w", path, err)
	}

	catalog := &Catalog{
		all:  make([]Destination, 0, len(parsed.Locations)),
		byId: make(map[string]Destination, len(parsed.Locations)),
	}
	for _, record := range parsed.Locations {
		if record.Id == "" {
			return nil, fmt.Errorf("locations file %s: entry %q has no id", path, record.Name)
		}
		if err := record.Coordinates.Validate(); err != nil {
			return nil, fmt.Errorf("locations file %s: entry %q: %w", path, record.Id, err)
		}
		destination := Destination{
			Id:          record.Id,
			Name:        record.Name,
			Address:     record.Address,
			Coordinates: record.Coordinates,
			Category:    record.Type,
		}
		if record.Hours != nil {
			destination.Hours = make(map[string]Hours, len(record.Hours))
			for day, h := range record.Hours {
				destination.Hours[day] = Hours{Open: h.Open, Close: h.Close}
			}
		}
		catalog.all = append(catalog.all, destination)
		catalog.byId[destination.Id] = destination
	}

	log.Infof("Loaded %d campus locations from %s", len(catalog.all), path)
	return catalog, nil
}

// NewCatalog builds a catalog from in-memory destinations. Used by tests and
// by callers that already hold the dataset.
func NewCatalog(destinations []Destination) *Catalog {
	catalog := &Catalog{
		all:  append([]Destination(nil), destinations...),
		byId: make(map[string]Destination, len(destinations)),
	}
	for _, d := range catalog.all {
		catalog.byId[d.Id] = d
	}
	return catalog
}

// All returns every destination in the dataset.
func (c *Catalog) All() []Destination {
	return c.all
}

// ByID looks up a destination by its id.
func (c *Catalog) ByID(id string) (Destination, bool) {
	d, ok := c.byId[id]
	return d, ok
}

// ByCategory returns the destinations with the given category, in dataset
// order.
func (c *Catalog) ByCategory(category string) []Destination {
	matches := make([]Destination, 0)
	for _, d := range c.all {
		if d.Category == category {
			matches = append(matches, d)
		}
	}
	return matches
}

// Size returns the number of destinations loaded.
func (c *Catalog) Size() int {
	return len(c.all)
}
