package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

func (r *holidayRequestRepository) Create(ctx context.Context, h *model.HolidayRequest) error {
	query := `
		INSERT INTO holiday_requests (
			id, practice_id, team_member_id, start_date, end_date, reason,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	h.ID = uuid.New()
	h.Status = model.AbsenceStatusPending
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.PracticeID, h.TeamMemberID, h.StartDate, h.EndDate, h.Reason,
		h.Status, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create holiday request: %w", err)
	}
	return nil
}

func (r *holidayRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.HolidayRequest, error) {
	var h model.HolidayRequest
	err := r.db.GetContext(ctx, &h, `
		SELECT id, practice_id, team_member_id, start_date, end_date, reason,
			   status, reviewed_at, reviewed_by, created_at, updated_at
		FROM holiday_requests
		WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("holiday request")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday request: %w", err)
	}
	return &h, nil
}

func (r *holidayRequestRepository) List(ctx context.Context, practiceID uuid.UUID) ([]*model.HolidayRequest, error) {
	requests := []*model.HolidayRequest{}
	err := r.db.SelectContext(ctx, &requests, `
		SELECT id, practice_id, team_member_id, start_date, end_date, reason,
			   status, reviewed_at, reviewed_by, created_at, updated_at
		FROM holiday_requests
		WHERE practice_id = $1
		ORDER BY created_at DESC
	`, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday requests: %w", err)
	}
	return requests, nil
}

// Review transitions pending → approved/rejected under a row lock; a request
// already reviewed yields InvalidStateError.
func (r *holidayRequestRepository) Review(ctx context.Context, id, reviewerID uuid.UUID, status model.AbsenceStatus) (*model.HolidayRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var h model.HolidayRequest
	err = tx.GetContext(ctx, &h, `
		SELECT id, practice_id, team_member_id, start_date, end_date, reason,
			   status, reviewed_at, reviewed_by, created_at, updated_at
		FROM holiday_requests
		WHERE id = $1
		FOR UPDATE
	`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("holiday request")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock holiday request: %w", err)
	}
	if h.Status.Terminal() {
		return nil, apperrors.NewInvalidState(fmt.Sprintf("holiday request is already %s", h.Status))
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE holiday_requests
		SET status = $1, reviewed_at = $2, reviewed_by = $3, updated_at = $2
		WHERE id = $4
	`, status, now, reviewerID, id); err != nil {
		return nil, fmt.Errorf("failed to review holiday request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit holiday review: %w", err)
	}

	h.Status = status
	h.ReviewedAt = &now
	h.ReviewedBy = uuid.NullUUID{UUID: reviewerID, Valid: true}
	h.UpdatedAt = now
	return &h, nil
}

func (r *sickLeaveRepository) Create(ctx context.Context, s *model.SickLeave) error {
	query := `
		INSERT INTO sick_leaves (
			id, practice_id, team_member_id, start_date, end_date, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.PracticeID, s.TeamMemberID, s.StartDate, s.EndDate, s.Notes,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sick leave: %w", err)
	}
	return nil
}

func (r *sickLeaveRepository) List(ctx context.Context, practiceID uuid.UUID) ([]*model.SickLeave, error) {
	leaves := []*model.SickLeave{}
	err := r.db.SelectContext(ctx, &leaves, `
		SELECT id, practice_id, team_member_id, start_date, end_date, notes,
			   created_at, updated_at
		FROM sick_leaves
		WHERE practice_id = $1
		ORDER BY start_date DESC
	`, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	return leaves, nil
}

func (r *sickLeaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sick_leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sick leave: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("sick leave")
	}
	return nil
}
