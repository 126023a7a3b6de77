package schedule

import (
	"bytes"
	"errors"
	"fmt"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
)

// EventDefinition is the normalized form of one VEVENT from an uploaded
// calendar: either a single dated class or the anchor of a recurring one.
type EventDefinition struct {
	UID         string
	CourseLabel string
	Anchor      RecurrenceRule
	RawLocation string
	Description string
}

// Recurring reports whether the definition carries a recurrence rule.
func (d EventDefinition) Recurring() bool {
	return d.Anchor.RuleText != ""
}

// ParseICS parses an ICS payload into event definitions. Individual VEVENTs
// that cannot be parsed are logged and skipped; the rest of the calendar
// survives. An empty or structurally invalid payload fails as a whole.
func ParseICS(body []byte) ([]EventDefinition, error) {
	if len(body) == 0 {
		return nil, errors.New("empty calendar payload")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid calendar format: %w", err)
	}

	definitions := make([]EventDefinition, 0)
	for _, component := range cal.Events() {
		definition, perr := parseVEvent(component)
		if perr != nil {
			log.Warnf("skipping calendar event: %v", perr)
			continue
		}
		definitions = append(definitions, definition)
	}

	log.Debugf("parsed calendar: %d event definitions", len(definitions))
	return definitions, nil
}

func parseVEvent(ve *ical.VEvent) (EventDefinition, error) {
	var out EventDefinition

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("event %s: missing or invalid DTSTART: %w", out.UID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, fmt.Errorf("event %s: missing or invalid DTEND: %w", out.UID, err)
	}
	if !end.After(start) {
		return out, fmt.Errorf("event %s: end is not after start", out.UID)
	}
	out.Anchor.AnchorStart = start
	out.Anchor.AnchorEnd = end

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.CourseLabel = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.RawLocation = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.Anchor.RuleText = p.Value
	}

	return out, nil
}
