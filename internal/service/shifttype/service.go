package shifttype

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type Service struct {
	repo repository.ShiftTypeRepository
}

func NewService(repo repository.ShiftTypeRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, practiceID uuid.UUID, activeOnly bool) ([]*model.ShiftType, error) {
	return s.repo.List(ctx, practiceID, activeOnly)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ShiftType, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, practiceID uuid.UUID, req *model.CreateShiftTypeRequest) (*model.ShiftType, error) {
	if req.StartTime >= req.EndTime {
		return nil, apperrors.NewValidation("start_time must be before end_time")
	}

	st := &model.ShiftType{
		PracticeID:   practiceID,
		Name:         req.Name,
		ShortName:    req.ShortName,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		Color:        req.Color,
		MinStaff:     req.MinStaff,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateShiftTypeRequest) (*model.ShiftType, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.ShortName != nil {
		st.ShortName = *req.ShortName
	}
	if req.StartTime != nil {
		st.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		st.EndTime = *req.EndTime
	}
	if req.BreakMinutes != nil {
		st.BreakMinutes = *req.BreakMinutes
	}
	if req.Color != nil {
		st.Color = *req.Color
	}
	if req.MinStaff != nil {
		st.MinStaff = *req.MinStaff
	}
	// Deactivating hides the type from pickers; existing shifts keep it.
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if st.StartTime >= st.EndTime {
		return nil, apperrors.NewValidation("start_time must be before end_time")
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
