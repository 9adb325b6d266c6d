package stats

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
)

type Service struct {
	shiftRepo repository.ShiftRepository
	swapRepo  repository.SwapRepository
}

func NewService(shiftRepo repository.ShiftRepository, swapRepo repository.SwapRepository) *Service {
	return &Service{shiftRepo: shiftRepo, swapRepo: swapRepo}
}

// GetStats recomputes the summary numbers for the given date range from
// current state. Nothing here is cached or stored.
func (s *Service) GetStats(ctx context.Context, practiceID uuid.UUID, dateStart, dateEnd string) (model.ScheduleStats, error) {
	shifts, err := s.shiftRepo.ListByRange(ctx, &model.ShiftFilters{
		PracticeID: practiceID,
		DateStart:  dateStart,
		DateEnd:    dateEnd,
	})
	if err != nil {
		return model.ScheduleStats{}, err
	}

	pending, err := s.swapRepo.CountPending(ctx, practiceID)
	if err != nil {
		return model.ScheduleStats{}, err
	}

	return Compute(shifts, pending), nil
}

// Compute derives the stats for a set of shifts. A shift counts as covered
// while it is scheduled or confirmed. Violation tracking is not wired up yet,
// so active_violations is always zero; the field stays in the payload so
// clients do not break when it arrives.
func Compute(shifts []*model.Shift, pendingSwaps int) model.ScheduleStats {
	covered := 0
	for _, shift := range shifts {
		if shift.Live() {
			covered++
		}
	}

	rate := 0
	if len(shifts) > 0 {
		rate = int(math.Round(float64(covered) / float64(len(shifts)) * 100))
	}

	return model.ScheduleStats{
		PendingSwaps:     pendingSwaps,
		ActiveViolations: 0,
		TotalShifts:      len(shifts),
		CoveredShifts:    covered,
		CoverageRate:     rate,
	}
}
