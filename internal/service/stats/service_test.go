package stats

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/praxisops/dienstplan-api/internal/model"
)

func assignedShift(status model.ShiftStatus) *model.Shift {
	return &model.Shift{
		TeamMemberID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Status:       status,
	}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, 0)

	assert.Equal(t, 0, got.TotalShifts)
	assert.Equal(t, 0, got.CoveredShifts)
	assert.Equal(t, 0, got.CoverageRate)
	assert.Equal(t, 0, got.ActiveViolations)
}

func TestComputeCoverageRounding(t *testing.T) {
	// 7 of 10 covered: five confirmed, two scheduled, the rest cancelled or
	// completed.
	shifts := []*model.Shift{}
	for i := 0; i < 5; i++ {
		shifts = append(shifts, assignedShift(model.ShiftStatusConfirmed))
	}
	for i := 0; i < 2; i++ {
		shifts = append(shifts, assignedShift(model.ShiftStatusScheduled))
	}
	shifts = append(shifts,
		assignedShift(model.ShiftStatusCancelled),
		assignedShift(model.ShiftStatusCancelled),
		assignedShift(model.ShiftStatusCompleted),
	)

	got := Compute(shifts, 3)

	assert.Equal(t, 10, got.TotalShifts)
	assert.Equal(t, 7, got.CoveredShifts)
	assert.Equal(t, 70, got.CoverageRate)
	assert.Equal(t, 3, got.PendingSwaps)
}

func TestComputeRoundsHalfUp(t *testing.T) {
	shifts := []*model.Shift{
		assignedShift(model.ShiftStatusScheduled),
		assignedShift(model.ShiftStatusScheduled),
		assignedShift(model.ShiftStatusCancelled),
	}

	// 2/3 = 66.67 rounds to 67.
	assert.Equal(t, 67, Compute(shifts, 0).CoverageRate)
}

func TestComputeBounds(t *testing.T) {
	all := []*model.Shift{
		assignedShift(model.ShiftStatusScheduled),
		assignedShift(model.ShiftStatusConfirmed),
	}
	none := []*model.Shift{
		assignedShift(model.ShiftStatusCancelled),
	}

	assert.Equal(t, 100, Compute(all, 0).CoverageRate)
	assert.Equal(t, 0, Compute(none, 0).CoverageRate)
}

func TestComputeViolationsAlwaysZero(t *testing.T) {
	got := Compute([]*model.Shift{assignedShift(model.ShiftStatusScheduled)}, 5)
	assert.Equal(t, 0, got.ActiveViolations)
}
