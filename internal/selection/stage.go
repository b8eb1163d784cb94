package selection

import "github.com/martin/hirepilot/internal/types"

// Stage identifies which pipeline boundary a selection run serves. Each
// stage re-partitions the current surviving cohort and maps the two halves
// to its own pair of statuses.
type Stage int

// Selection stages.
const (
	// StageResume partitions applicants when resume collection ends.
	StageResume Stage = iota
	// StageHR partitions the surviving cohort when the coding round ends.
	StageHR
)

// String returns the stage name for logging.
func (s Stage) String() string {
	if s == StageHR {
		return "hr"
	}
	return "resume"
}

// Statuses returns the selected and rejected status for the stage.
func (s Stage) Statuses() (selected, rejected types.Status) {
	if s == StageHR {
		return types.StatusShortlistedForHR, types.StatusNotShortlistedForHR
	}
	return types.StatusShortlisted, types.StatusNotSelected
}
