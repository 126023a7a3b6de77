package schedule

import (
	"fmt"
	"regexp"
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrences caps a single rule expansion. Bounded rules stay far below
// this; the cap is a guard against pathological COUNT/UNTIL values. Expansion
// stops at the cap rather than materializing the full set first.
const maxOccurrences = 1000

var untilUTCMarker = regexp.MustCompile(`(UNTIL=\d{8}T\d{6})Z`)

// ExpandRecurrence evaluates a recurrence rule against its anchor occurrence
// and returns the concrete occurrences, each preserving the anchor's duration.
//
// Rule engines mishandle rules whose UNTIL timestamp is marked UTC ("Z")
// when the anchor is timezone-naive. The rule is therefore evaluated against
// a naive copy of the anchor (offset stripped, remembered separately); if
// parsing fails, the UTC marker is stripped from UNTIL and parsing retried
// once. The anchor's offset is re-applied uniformly to every produced
// instant. Occurrences that cross a DST boundary keep the anchor's offset
// and may be off by the DST shift; that approximation is accepted, not
// corrected here.
func ExpandRecurrence(rule RecurrenceRule) ([]Occurrence, error) {
	if !rule.AnchorEnd.After(rule.AnchorStart) {
		return nil, fmt.Errorf("%w: anchor end is not after anchor start", ErrMalformedRecurrenceRule)
	}
	duration := rule.AnchorEnd.Sub(rule.AnchorStart)

	zoneName, offsetSec := rule.AnchorStart.Zone()
	naiveAnchor := stripOffset(rule.AnchorStart)

	r, err := rrule.StrToRRule(rule.RuleText)
	if err != nil {
		retryText := untilUTCMarker.ReplaceAllString(rule.RuleText, "$1")
		if retryText == rule.RuleText {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedRecurrenceRule, rule.RuleText, err)
		}
		r, err = rrule.StrToRRule(retryText)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedRecurrenceRule, rule.RuleText, err)
		}
	}

	if r.OrigOptions.Count == 0 && r.OrigOptions.Until.IsZero() {
		return nil, fmt.Errorf("%w: rule %q has no terminating condition", ErrMalformedRecurrenceRule, rule.RuleText)
	}

	r.DTStart(naiveAnchor)

	starts := make([]time.Time, 0)
	next := r.Iterator()
	for len(starts) < maxOccurrences {
		instant, ok := next()
		if !ok {
			break
		}
		starts = append(starts, instant)
	}

	zone := time.FixedZone(zoneName, offsetSec)
	occurrences := make([]Occurrence, 0, len(starts))
	for _, naiveStart := range starts {
		start := applyOffset(naiveStart, zone)
		occurrences = append(occurrences, Occurrence{
			Start: start,
			End:   start.Add(duration),
		})
	}

	return occurrences, nil
}

// stripOffset returns t's wall-clock reading as a UTC instant, discarding
// the original offset.
func stripOffset(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// applyOffset reinterprets a naive instant's wall clock in the given fixed
// zone.
func applyOffset(t time.Time, zone *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}
