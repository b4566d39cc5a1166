package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status represents a task's lifecycle state. The integer values are the
// storage representation; the wire representation is the lowercase label.
type Status int

const (
	StatusPending   Status = 0
	StatusCompleted Status = 1
	StatusCancelled Status = 2
)

// ValidStatuses lists every status in storage order.
var ValidStatuses = []Status{StatusPending, StatusCompleted, StatusCancelled}

var statusLabels = map[Status]string{
	StatusPending:   "pending",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

// Label returns the wire label for the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// IsValid reports whether the status is one of the defined states.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusFromLabel resolves a wire label to a status. Matching is
// case-insensitive and ignores surrounding whitespace.
func StatusFromLabel(label string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for status, l := range statusLabels {
		if l == normalized {
			return status, true
		}
	}
	return 0, false
}

// MarshalJSON renders the status as its label.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

// UnmarshalJSON parses a status from its label.
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	status, ok := StatusFromLabel(label)
	if !ok {
		return fmt.Errorf("unknown status %q", label)
	}
	*s = status
	return nil
}
