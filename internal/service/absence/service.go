package absence

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type Service struct {
	holidayRepo repository.HolidayRequestRepository
	sickRepo    repository.SickLeaveRepository
}

func NewService(holidayRepo repository.HolidayRequestRepository, sickRepo repository.SickLeaveRepository) *Service {
	return &Service{holidayRepo: holidayRepo, sickRepo: sickRepo}
}

func (s *Service) ListHolidayRequests(ctx context.Context, practiceID uuid.UUID) ([]*model.HolidayRequest, error) {
	return s.holidayRepo.List(ctx, practiceID)
}

func (s *Service) CreateHolidayRequest(ctx context.Context, practiceID uuid.UUID, req *model.CreateHolidayRequest) (*model.HolidayRequest, error) {
	memberID, err := uuid.Parse(req.TeamMemberID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid team member ID")
	}
	if err := validateDateOrder(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	r := &model.HolidayRequest{
		PracticeID:   practiceID,
		TeamMemberID: memberID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
		Status:       model.AbsenceStatusPending,
	}
	if err := s.holidayRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ApproveHolidayRequest(ctx context.Context, id uuid.UUID, req *model.ReviewRequest) (*model.HolidayRequest, error) {
	return s.reviewHolidayRequest(ctx, id, req, model.AbsenceStatusApproved)
}

func (s *Service) RejectHolidayRequest(ctx context.Context, id uuid.UUID, req *model.ReviewRequest) (*model.HolidayRequest, error) {
	return s.reviewHolidayRequest(ctx, id, req, model.AbsenceStatusRejected)
}

func (s *Service) reviewHolidayRequest(ctx context.Context, id uuid.UUID, req *model.ReviewRequest, status model.AbsenceStatus) (*model.HolidayRequest, error) {
	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid reviewer ID")
	}
	return s.holidayRepo.Review(ctx, id, reviewerID, status)
}

func (s *Service) ListSickLeaves(ctx context.Context, practiceID uuid.UUID) ([]*model.SickLeave, error) {
	return s.sickRepo.List(ctx, practiceID)
}

func (s *Service) CreateSickLeave(ctx context.Context, practiceID uuid.UUID, req *model.CreateSickLeaveRequest) (*model.SickLeave, error) {
	memberID, err := uuid.Parse(req.TeamMemberID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid team member ID")
	}
	if err := validateDateOrder(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	l := &model.SickLeave{
		PracticeID:   practiceID,
		TeamMemberID: memberID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Notes:        req.Notes,
	}
	if err := s.sickRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteSickLeave(ctx context.Context, id uuid.UUID) error {
	return s.sickRepo.Delete(ctx, id)
}

// Dates are yyyy-MM-dd strings; lexical order equals calendar order.
func validateDateOrder(start, end string) error {
	if start > end {
		return apperrors.NewValidation("start_date must not be after end_date")
	}
	return nil
}
