package service

import (
	"testing"

	"civictrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackStagesHasOneActiveStage(t *testing.T) {
	for idx, status := range models.Lifecycle {
		t.Run(string(status), func(t *testing.T) {
			stages := TrackStages(status)
			require.Len(t, stages, len(models.Lifecycle))

			active := 0
			for i, st := range stages {
				assert.Equal(t, i+1, st.Step)
				assert.Equal(t, models.Lifecycle[i], st.Stage)
				switch {
				case i < idx:
					assert.Equal(t, StageDone, st.State)
					assert.Equal(t, "Completed", st.Label)
				case i == idx:
					assert.Equal(t, StageActive, st.State)
					assert.Equal(t, "Current step", st.Label)
					active++
				default:
					assert.Equal(t, StageUpcoming, st.State)
					assert.Equal(t, "Upcoming", st.Label)
				}
			}
			assert.Equal(t, 1, active)
		})
	}
}

func TestUnknownStatusTracksAsPending(t *testing.T) {
	for _, status := range []models.Status{"", "Escalated", "pending"} {
		assert.Equal(t, 0, StageIndex(status), "status %q", status)
		assert.Equal(t, TrackStages(models.StatusPending), TrackStages(status), "status %q", status)
	}
}

func TestNextTransitions(t *testing.T) {
	tests := []struct {
		from models.Status
		want []models.Status
	}{
		{models.StatusPending, []models.Status{models.StatusApproved}},
		{models.StatusApproved, []models.Status{models.StatusInProgress, models.StatusResolved}},
		{models.StatusInProgress, []models.Status{models.StatusResolved}},
		{models.StatusResolved, []models.Status{}},
		{"Escalated", []models.Status{models.StatusApproved}},
	}
	for _, tt := range tests {
		got := NextTransitions(tt.from)
		assert.ElementsMatch(t, tt.want, got, "from %q", tt.from)
	}

	// callers may not mutate the table
	next := NextTransitions(models.StatusApproved)
	next[0] = models.StatusPending
	assert.Equal(t, models.StatusInProgress, NextTransitions(models.StatusApproved)[0])
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusPending, models.StatusApproved))
	assert.True(t, CanTransition(models.StatusApproved, models.StatusResolved))
	assert.True(t, CanTransition(models.StatusInProgress, models.StatusResolved))

	assert.False(t, CanTransition(models.StatusPending, models.StatusResolved))
	assert.False(t, CanTransition(models.StatusPending, models.StatusPending))
	assert.False(t, CanTransition(models.StatusResolved, models.StatusPending))
	assert.False(t, CanTransition(models.StatusInProgress, models.StatusApproved))
	assert.False(t, CanTransition(models.StatusApproved, "Closed"))
}
