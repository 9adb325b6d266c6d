package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type Service struct {
	repo repository.AvailabilityRepository
}

func NewService(repo repository.AvailabilityRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, practiceID uuid.UUID) ([]*model.Availability, error) {
	return s.repo.List(ctx, practiceID)
}

func (s *Service) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.Availability, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *Service) Create(ctx context.Context, practiceID uuid.UUID, req *model.CreateAvailabilityRequest) (*model.Availability, error) {
	memberID, err := uuid.Parse(req.TeamMemberID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid team member ID")
	}

	a := &model.Availability{
		PracticeID:   practiceID,
		TeamMemberID: memberID,
		Type:         req.Type,
		IsRecurring:  req.IsRecurring,
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: req.SpecificDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	}

	if err := validateScope(a); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAvailabilityRequest) (*model.Availability, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.IsRecurring != nil {
		a.IsRecurring = *req.IsRecurring
	}
	if req.DayOfWeek != nil {
		a.DayOfWeek = req.DayOfWeek
	}
	if req.SpecificDate != nil {
		a.SpecificDate = req.SpecificDate
	}
	if req.StartTime != nil {
		a.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		a.EndTime = req.EndTime
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	if err := validateScope(a); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// MatchesForDate returns every rule covering the given yyyy-MM-dd date.
// Recurring and one-off rules may both match the same day; no precedence is
// applied, callers show all of them.
func MatchesForDate(rules []*model.Availability, date string) []*model.Availability {
	matched := []*model.Availability{}
	for _, rule := range rules {
		scope, ok := rule.Scope()
		if !ok {
			continue
		}
		if scope.MatchesDate(date) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// A rule is either recurring on a weekday or pinned to one date, never both
// and never neither.
func validateScope(a *model.Availability) error {
	if a.IsRecurring {
		if a.DayOfWeek == nil {
			return apperrors.NewValidation("day_of_week is required for recurring availability")
		}
		if *a.DayOfWeek < 0 || *a.DayOfWeek > 6 {
			return apperrors.NewValidation("day_of_week must be between 0 and 6")
		}
		a.SpecificDate = nil
	} else {
		if a.SpecificDate == nil {
			return apperrors.NewValidation("specific_date is required for one-off availability")
		}
		a.DayOfWeek = nil
	}

	if a.StartTime != nil && a.EndTime != nil && *a.StartTime >= *a.EndTime {
		return apperrors.NewValidation("start_time must be before end_time")
	}
	return nil
}
