package template

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	"github.com/praxisops/dienstplan-api/internal/schedule"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

// Placeholder span for shifts whose type no longer resolves. The projection
// still goes through; a manager fixes the times afterwards.
const (
	fallbackStartTime = "00:00"
	fallbackEndTime   = "23:59"
)

type Service struct {
	repo       repository.TemplateRepository
	shiftRepo  repository.ShiftRepository
	typeRepo   repository.ShiftTypeRepository
	memberRepo repository.TeamMemberRepository
	outbox     repository.OutboxRepository
}

func NewService(
	repo repository.TemplateRepository,
	shiftRepo repository.ShiftRepository,
	typeRepo repository.ShiftTypeRepository,
	memberRepo repository.TeamMemberRepository,
	outbox repository.OutboxRepository,
) *Service {
	return &Service{
		repo:       repo,
		shiftRepo:  shiftRepo,
		typeRepo:   typeRepo,
		memberRepo: memberRepo,
		outbox:     outbox,
	}
}

func (s *Service) List(ctx context.Context, practiceID uuid.UUID) ([]*model.ScheduleTemplate, error) {
	return s.repo.List(ctx, practiceID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ScheduleTemplate, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, practiceID uuid.UUID, req *model.CreateTemplateRequest) (*model.ScheduleTemplate, error) {
	shifts, err := buildTemplateShifts(req.Shifts)
	if err != nil {
		return nil, err
	}

	t := &model.ScheduleTemplate{
		PracticeID:  practiceID,
		Name:        req.Name,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		Shifts:      shifts,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateTemplateRequest) (*model.ScheduleTemplate, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.IsDefault != nil {
		t.IsDefault = *req.IsDefault
	}
	if req.Shifts != nil {
		shifts, err := buildTemplateShifts(req.Shifts)
		if err != nil {
			return nil, err
		}
		t.Shifts = shifts
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Apply projects a template onto the week containing weekAnchor and commits
// the resulting shifts in one all-or-nothing batch. The template itself is
// never touched, and existing shifts in the week are neither overwritten nor
// deduplicated against: applying twice doubles the rows.
func (s *Service) Apply(ctx context.Context, id uuid.UUID, week string) ([]*model.Shift, error) {
	anchor, err := schedule.ParseDate(week)
	if err != nil {
		return nil, apperrors.NewValidation("invalid week date")
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// One directory query per distinct role filter; rules without a filter
	// need no members at all.
	membersByRole := map[string][]*model.TeamMember{}
	for _, rule := range t.Shifts {
		if rule.RoleFilter == nil {
			continue
		}
		role := *rule.RoleFilter
		if _, seen := membersByRole[role]; seen {
			continue
		}
		members, err := s.memberRepo.ListByRole(ctx, t.PracticeID, role)
		if err != nil {
			return nil, err
		}
		membersByRole[role] = members
	}

	types := map[uuid.UUID]*model.ShiftType{}
	for _, rule := range t.Shifts {
		if _, seen := types[rule.ShiftTypeID]; seen {
			continue
		}
		st, err := s.typeRepo.Get(ctx, rule.ShiftTypeID)
		if apperrors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		types[rule.ShiftTypeID] = st
	}

	shifts := Project(t, schedule.StartOfWeek(anchor), membersByRole, types)
	if len(shifts) == 0 {
		return shifts, nil
	}

	if err := s.shiftRepo.CreateBatch(ctx, shifts); err != nil {
		return nil, err
	}

	s.emit(ctx, model.EventTemplateApplied, map[string]interface{}{
		"template_id": t.ID,
		"week":        schedule.StartOfWeek(anchor).Format(model.DateLayout),
		"shift_count": len(shifts),
	})
	return shifts, nil
}

// Project expands template rules into concrete proposed shifts for the week
// starting at anchor (a Monday). A rule with a role filter fans out to one
// shift per member holding that role; a rule without one yields a single
// unassigned planning slot.
func Project(t *model.ScheduleTemplate, anchor time.Time, membersByRole map[string][]*model.TeamMember, types map[uuid.UUID]*model.ShiftType) []*model.Shift {
	shifts := []*model.Shift{}
	for _, rule := range t.Shifts {
		date := anchor.AddDate(0, 0, rule.DayOfWeek).Format(model.DateLayout)

		start, end := fallbackStartTime, fallbackEndTime
		if st := types[rule.ShiftTypeID]; st != nil {
			start, end = st.StartTime, st.EndTime
		}

		proto := model.Shift{
			PracticeID:  t.PracticeID,
			ShiftTypeID: rule.ShiftTypeID,
			ShiftDate:   date,
			StartTime:   start,
			EndTime:     end,
			Status:      model.ShiftStatusScheduled,
		}

		if rule.RoleFilter == nil {
			slot := proto
			shifts = append(shifts, &slot)
			continue
		}

		for _, m := range membersByRole[*rule.RoleFilter] {
			assigned := proto
			assigned.TeamMemberID = uuid.NullUUID{UUID: m.ID, Valid: true}
			shifts = append(shifts, &assigned)
		}
	}
	return shifts
}

func buildTemplateShifts(inputs []model.TemplateShiftInput) ([]model.TemplateShift, error) {
	shifts := make([]model.TemplateShift, 0, len(inputs))
	for _, in := range inputs {
		typeID, err := uuid.Parse(in.ShiftTypeID)
		if err != nil {
			return nil, apperrors.NewValidation("invalid shift type ID in template shift")
		}
		shifts = append(shifts, model.TemplateShift{
			DayOfWeek:   in.DayOfWeek,
			ShiftTypeID: typeID,
			RoleFilter:  in.RoleFilter,
		})
	}
	return shifts, nil
}

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
