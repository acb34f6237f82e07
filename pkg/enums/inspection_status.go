package enums

import "fmt"

// InspectionStatus labels where an inspection record sits in its lifecycle.
// The store intentionally enforces no transition graph: any value may be
// written at any time.
type InspectionStatus string

const (
	InspectionStatusDraft     InspectionStatus = "draft"
	InspectionStatusPending   InspectionStatus = "pending"
	InspectionStatusCompleted InspectionStatus = "completed"
)

var validInspectionStatuses = []InspectionStatus{
	InspectionStatusDraft,
	InspectionStatusPending,
	InspectionStatusCompleted,
}

// String returns the literal string for the status.
func (s InspectionStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s InspectionStatus) IsValid() bool {
	for _, candidate := range validInspectionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInspectionStatus converts raw input into an InspectionStatus.
func ParseInspectionStatus(value string) (InspectionStatus, error) {
	for _, candidate := range validInspectionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inspection status %q", value)
}
