package shift

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type Service struct {
	repo     repository.ShiftRepository
	typeRepo repository.ShiftTypeRepository
	outbox   repository.OutboxRepository
}

func NewService(repo repository.ShiftRepository, typeRepo repository.ShiftTypeRepository, outbox repository.OutboxRepository) *Service {
	return &Service{
		repo:     repo,
		typeRepo: typeRepo,
		outbox:   outbox,
	}
}

func (s *Service) ListByRange(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error) {
	if filters.DateStart == "" || filters.DateEnd == "" {
		return nil, apperrors.NewValidation("start and end dates are required")
	}
	if filters.DateStart > filters.DateEnd {
		return nil, apperrors.NewValidation("start date must not be after end date")
	}
	return s.repo.ListByRange(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, practiceID uuid.UUID, req *model.CreateShiftRequest) (*model.Shift, error) {
	if req.TeamMemberID == "" || req.ShiftTypeID == "" || req.ShiftDate == "" {
		return nil, apperrors.NewValidation("team_member_id, shift_type_id and shift_date are required")
	}

	memberID, err := uuid.Parse(req.TeamMemberID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid team member ID")
	}
	typeID, err := uuid.Parse(req.ShiftTypeID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid shift type ID")
	}

	shift := &model.Shift{
		PracticeID:   practiceID,
		TeamMemberID: uuid.NullUUID{UUID: memberID, Valid: true},
		ShiftTypeID:  typeID,
		ShiftDate:    req.ShiftDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       model.ShiftStatusScheduled,
		Notes:        req.Notes,
	}

	// Times default from the shift type when the request leaves them out.
	if shift.StartTime == "" || shift.EndTime == "" {
		if st, _ := s.GetShiftType(ctx, typeID); st != nil {
			if shift.StartTime == "" {
				shift.StartTime = st.StartTime
			}
			if shift.EndTime == "" {
				shift.EndTime = st.EndTime
			}
		}
	}

	if err := validateTimes(shift.StartTime, shift.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.emit(ctx, model.EventShiftCreated, shift)
	return shift, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateShiftRequest) (*model.Shift, error) {
	shift, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TeamMemberID != nil {
		memberID, err := uuid.Parse(*req.TeamMemberID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid team member ID")
		}
		shift.TeamMemberID = uuid.NullUUID{UUID: memberID, Valid: true}
	}
	if req.ShiftTypeID != nil {
		typeID, err := uuid.Parse(*req.ShiftTypeID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid shift type ID")
		}
		shift.ShiftTypeID = typeID
	}
	if req.ShiftDate != nil {
		shift.ShiftDate = *req.ShiftDate
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.Status != nil {
		shift.Status = *req.Status
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}

	if err := validateTimes(shift.StartTime, shift.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, err
	}

	s.emit(ctx, model.EventShiftUpdated, shift)
	return shift, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, model.EventShiftDeleted, map[string]interface{}{"id": id})
	return nil
}

// GetShiftType resolves display and time metadata for a shift. A missing
// type is a valid outcome, not an error: callers fall back to the unknown
// defaults.
func (s *Service) GetShiftType(ctx context.Context, id uuid.UUID) (*model.ShiftType, error) {
	st, err := s.typeRepo.Get(ctx, id)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ShiftTypeDisplay returns the name and color to render a shift with,
// degrading gracefully when the type no longer resolves.
func ShiftTypeDisplay(st *model.ShiftType) (name, color string) {
	if st == nil {
		return model.UnknownShiftTypeName, model.UnknownShiftTypeColor
	}
	return st.Name, st.Color
}

// Times are HH:mm strings; lexical order equals clock order.
func validateTimes(start, end string) error {
	if start == "" || end == "" {
		return apperrors.NewValidation("start_time and end_time are required")
	}
	if start >= end {
		return apperrors.NewValidation("start_time must be before end_time")
	}
	return nil
}

// Event emission is best effort here: the shift write has already committed,
// and a lost notification must not undo it.
func (s *Service) emit(ctx context.Context, eventType string, payload interface{}) {
	event, err := model.NewOutboxEvent(eventType, payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to build outbox event")
		return
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to enqueue outbox event")
	}
}
