package planner

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	"github.com/praxisops/dienstplan-api/internal/schedule"
	"github.com/praxisops/dienstplan-api/internal/service/settings"
	"github.com/praxisops/dienstplan-api/internal/service/stats"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

// Service assembles the full week payload the planner UI renders in one
// request.
type Service struct {
	shiftRepo        repository.ShiftRepository
	availabilityRepo repository.AvailabilityRepository
	swapRepo         repository.SwapRepository
	memberRepo       repository.TeamMemberRepository
	settings         *settings.Service
}

func NewService(
	shiftRepo repository.ShiftRepository,
	availabilityRepo repository.AvailabilityRepository,
	swapRepo repository.SwapRepository,
	memberRepo repository.TeamMemberRepository,
	settingsSvc *settings.Service,
) *Service {
	return &Service{
		shiftRepo:        shiftRepo,
		availabilityRepo: availabilityRepo,
		swapRepo:         swapRepo,
		memberRepo:       memberRepo,
		settings:         settingsSvc,
	}
}

// GetWeekSchedule returns the grid and everything on it for the week
// containing the given date. Any date inside the week selects the same
// Monday-anchored grid.
func (s *Service) GetWeekSchedule(ctx context.Context, practiceID uuid.UUID, week string) (*model.WeekSchedule, error) {
	anchorDate, err := schedule.ParseDate(week)
	if err != nil {
		return nil, apperrors.NewValidation("invalid week date")
	}

	days := s.settings.PlannerDays(ctx, practiceID)
	anchor := schedule.StartOfWeek(anchorDate)
	grid := schedule.WeekDayStrings(anchor, days)

	shifts, err := s.shiftRepo.ListByRange(ctx, &model.ShiftFilters{
		PracticeID: practiceID,
		DateStart:  grid[0],
		DateEnd:    schedule.WeekEnd(anchor, days).Format(model.DateLayout),
	})
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.List(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	availability, err := s.availabilityRepo.List(ctx, practiceID)
	if err != nil {
		return nil, err
	}

	pendingStatus := model.SwapStatusPending
	pendingSwaps, err := s.swapRepo.List(ctx, practiceID, &pendingStatus)
	if err != nil {
		return nil, err
	}

	return &model.WeekSchedule{
		WeekStart:    grid[0],
		Days:         grid,
		TeamMembers:  members,
		Shifts:       shifts,
		Availability: availability,
		PendingSwaps: pendingSwaps,
		Stats:        stats.Compute(shifts, len(pendingSwaps)),
	}, nil
}
