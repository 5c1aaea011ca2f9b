package service

import "civictrack/models"

// StageState classifies one lifecycle stage relative to a complaint's status
type StageState string

const (
	StageDone     StageState = "done"
	StageActive   StageState = "active"
	StageUpcoming StageState = "upcoming"
)

// Label returns the human label shown under a tracking step.
func (s StageState) Label() string {
	switch s {
	case StageDone:
		return "Completed"
	case StageActive:
		return "Current step"
	default:
		return "Upcoming"
	}
}

// StageView is one row of the tracking timeline
type StageView struct {
	Step  int           `json:"step"` // 1-based
	Stage models.Status `json:"stage"`
	State StageState    `json:"state"`
	Label string        `json:"label"`
}

// StageIndex returns the lifecycle position of status.
// Empty or unrecognized statuses map to 0 (Pending).
func StageIndex(status models.Status) int {
	for i, st := range models.Lifecycle {
		if st == status {
			return i
		}
	}
	return 0
}

// TrackStages classifies every lifecycle stage against the current status.
func TrackStages(status models.Status) []StageView {
	current := StageIndex(status)
	views := make([]StageView, 0, len(models.Lifecycle))
	for i, stage := range models.Lifecycle {
		state := StageUpcoming
		switch {
		case i < current:
			state = StageDone
		case i == current:
			state = StageActive
		}
		views = append(views, StageView{
			Step:  i + 1,
			Stage: stage,
			State: state,
			Label: state.Label(),
		})
	}
	return views
}

// forwardTransitions lists the status changes a government actor may make.
var forwardTransitions = map[models.Status][]models.Status{
	models.StatusPending:    {models.StatusApproved},
	models.StatusApproved:   {models.StatusInProgress, models.StatusResolved},
	models.StatusInProgress: {models.StatusResolved},
	models.StatusResolved:   {},
}

// NextTransitions returns the legal next statuses from status.
// Unrecognized statuses are treated as Pending.
func NextTransitions(status models.Status) []models.Status {
	if !status.IsKnown() {
		status = models.StatusPending
	}
	next := forwardTransitions[status]
	return append([]models.Status(nil), next...)
}

// CanTransition reports whether from -> to is a legal forward transition.
func CanTransition(from, to models.Status) bool {
	for _, st := range NextTransitions(from) {
		if st == to {
			return true
		}
	}
	return false
}
