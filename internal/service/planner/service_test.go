package planner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/service/settings"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
	"github.com/praxisops/dienstplan-api/pkg/logger"
)

type fakeShiftRepo struct {
	shifts []*model.Shift
}

func (r *fakeShiftRepo) Create(_ context.Context, s *model.Shift) error {
	r.shifts = append(r.shifts, s)
	return nil
}

func (r *fakeShiftRepo) CreateBatch(_ context.Context, shifts []*model.Shift) error {
	r.shifts = append(r.shifts, shifts...)
	return nil
}

func (r *fakeShiftRepo) Get(_ context.Context, _ uuid.UUID) (*model.Shift, error) {
	return nil, apperrors.NewNotFound("shift")
}

func (r *fakeShiftRepo) Update(_ context.Context, _ *model.Shift) error { return nil }
func (r *fakeShiftRepo) Delete(_ context.Context, _ uuid.UUID) error    { return nil }

func (r *fakeShiftRepo) ListByRange(_ context.Context, f *model.ShiftFilters) ([]*model.Shift, error) {
	out := []*model.Shift{}
	for _, s := range r.shifts {
		if s.ShiftDate >= f.DateStart && s.ShiftDate <= f.DateEnd {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAvailabilityRepo struct {
	rules []*model.Availability
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, _ *model.Availability) error { return nil }
func (r *fakeAvailabilityRepo) Get(_ context.Context, _ uuid.UUID) (*model.Availability, error) {
	return nil, apperrors.NewNotFound("availability")
}
func (r *fakeAvailabilityRepo) Update(_ context.Context, _ *model.Availability) error { return nil }
func (r *fakeAvailabilityRepo) Delete(_ context.Context, _ uuid.UUID) error           { return nil }

func (r *fakeAvailabilityRepo) List(_ context.Context, _ uuid.UUID) ([]*model.Availability, error) {
	return r.rules, nil
}

func (r *fakeAvailabilityRepo) ListByMember(_ context.Context, _ uuid.UUID) ([]*model.Availability, error) {
	return r.rules, nil
}

type fakeSwapRepo struct {
	pending []*model.SwapRequest
}

func (r *fakeSwapRepo) Create(_ context.Context, _ *model.SwapRequest, _ *model.OutboxEvent) error {
	return nil
}

func (r *fakeSwapRepo) Get(_ context.Context, _ uuid.UUID) (*model.SwapRequest, error) {
	return nil, apperrors.NewNotFound("swap request")
}

func (r *fakeSwapRepo) List(_ context.Context, _ uuid.UUID, status *model.SwapStatus) ([]*model.SwapRequest, error) {
	if status != nil && *status != model.SwapStatusPending {
		return nil, nil
	}
	return r.pending, nil
}

func (r *fakeSwapRepo) Approve(_ context.Context, _, _ uuid.UUID, _ *model.OutboxEvent) (*model.SwapRequest, error) {
	return nil, apperrors.NewNotFound("swap request")
}

func (r *fakeSwapRepo) Reject(_ context.Context, _, _ uuid.UUID, _ *model.OutboxEvent) (*model.SwapRequest, error) {
	return nil, apperrors.NewNotFound("swap request")
}

func (r *fakeSwapRepo) CountPending(_ context.Context, _ uuid.UUID) (int, error) {
	return len(r.pending), nil
}

type fakeMemberRepo struct {
	members []*model.TeamMember
}

func (r *fakeMemberRepo) Get(_ context.Context, _ uuid.UUID) (*model.TeamMember, error) {
	return nil, apperrors.NewNotFound("team member")
}

func (r *fakeMemberRepo) List(_ context.Context, _ uuid.UUID) ([]*model.TeamMember, error) {
	return r.members, nil
}

func (r *fakeMemberRepo) ListByRole(_ context.Context, _ uuid.UUID, _ string) ([]*model.TeamMember, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	days int
}

func (r *fakeSettingsRepo) GetPlannerDays(_ context.Context, _ uuid.UUID) (int, error) {
	if r.days == 0 {
		return 0, apperrors.NewNotFound("practice settings")
	}
	return r.days, nil
}

func newFixture(plannerDays int) (*Service, *fakeShiftRepo, *fakeSwapRepo, *fakeMemberRepo) {
	shiftRepo := &fakeShiftRepo{}
	swapRepo := &fakeSwapRepo{}
	memberRepo := &fakeMemberRepo{}
	settingsSvc := settings.NewService(&fakeSettingsRepo{days: plannerDays}, model.DefaultPlannerDays, logger.NewLogger(nil))
	svc := NewService(shiftRepo, &fakeAvailabilityRepo{}, swapRepo, memberRepo, settingsSvc)
	return svc, shiftRepo, swapRepo, memberRepo
}

func TestGetWeekScheduleGrid(t *testing.T) {
	svc, _, _, _ := newFixture(0)

	// Wednesday resolves to the Monday-anchored default five-day grid.
	ws, err := svc.GetWeekSchedule(context.Background(), uuid.New(), "2024-06-05")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-03", ws.WeekStart)
	assert.Equal(t, []string{
		"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07",
	}, ws.Days)
}

func TestGetWeekScheduleSevenDayPractice(t *testing.T) {
	svc, _, _, _ := newFixture(7)

	ws, err := svc.GetWeekSchedule(context.Background(), uuid.New(), "2024-06-03")
	require.NoError(t, err)

	require.Len(t, ws.Days, 7)
	assert.Equal(t, "2024-06-09", ws.Days[6])
}

func TestGetWeekScheduleFiltersShiftsToGrid(t *testing.T) {
	svc, shiftRepo, swapRepo, memberRepo := newFixture(0)

	inWeek := &model.Shift{
		ShiftDate:    "2024-06-04",
		TeamMemberID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
		Status:       model.ShiftStatusScheduled,
	}
	saturday := &model.Shift{ShiftDate: "2024-06-08", Status: model.ShiftStatusScheduled}
	nextWeek := &model.Shift{ShiftDate: "2024-06-10", Status: model.ShiftStatusScheduled}
	shiftRepo.shifts = []*model.Shift{inWeek, saturday, nextWeek}

	swapRepo.pending = []*model.SwapRequest{{Status: model.SwapStatusPending}}
	memberRepo.members = []*model.TeamMember{
		{ID: uuid.New(), FirstName: "Anna", LastName: "Weber"},
		{ID: uuid.New(), FirstName: "Ben", LastName: "Koch"},
	}

	ws, err := svc.GetWeekSchedule(context.Background(), uuid.New(), "2024-06-03")
	require.NoError(t, err)

	require.Len(t, ws.TeamMembers, 2)

	// Five-day grid excludes the Saturday shift and next week's.
	require.Len(t, ws.Shifts, 1)
	assert.Equal(t, "2024-06-04", ws.Shifts[0].ShiftDate)
	assert.Equal(t, 1, ws.Stats.PendingSwaps)
	assert.Equal(t, 1, ws.Stats.TotalShifts)
	assert.Equal(t, 100, ws.Stats.CoverageRate)
}

func TestGetWeekScheduleInvalidDate(t *testing.T) {
	svc, _, _, _ := newFixture(0)

	_, err := svc.GetWeekSchedule(context.Background(), uuid.New(), "June 3rd")
	assert.True(t, apperrors.IsValidation(err))
}
