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

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	query := `
		INSERT INTO shifts (
			id, practice_id, team_member_id, shift_type_id,
			shift_date, start_time, end_time, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	shift.ID = uuid.New()
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		shift.ID,
		shift.PracticeID,
		shift.TeamMemberID,
		shift.ShiftTypeID,
		shift.ShiftDate,
		shift.StartTime,
		shift.EndTime,
		shift.Status,
		shift.Notes,
		shift.CreatedAt,
		shift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

// CreateBatch inserts all shifts in one transaction. Template application
// relies on this being all-or-nothing: a failed row rolls back every row.
func (r *shiftRepository) CreateBatch(ctx context.Context, shifts []*model.Shift) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO shifts (
			id, practice_id, team_member_id, shift_type_id,
			shift_date, start_time, end_time, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	now := time.Now()
	for _, shift := range shifts {
		shift.ID = uuid.New()
		shift.CreatedAt = now
		shift.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, query,
			shift.ID,
			shift.PracticeID,
			shift.TeamMemberID,
			shift.ShiftTypeID,
			shift.ShiftDate,
			shift.StartTime,
			shift.EndTime,
			shift.Status,
			shift.Notes,
			shift.CreatedAt,
			shift.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create shift for %s: %w", shift.ShiftDate, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shifts: %w", err)
	}
	return nil
}

func (r *shiftRepository) Get(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `
		SELECT id, practice_id, team_member_id, shift_type_id,
			   shift_date, start_time, end_time, status, notes,
			   created_at, updated_at
		FROM shifts
		WHERE id = $1
	`
	var shift model.Shift
	err := r.db.GetContext(ctx, &shift, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("shift")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return &shift, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	query := `
		UPDATE shifts
		SET team_member_id = $1, shift_type_id = $2, shift_date = $3,
			start_time = $4, end_time = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	shift.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		shift.TeamMemberID,
		shift.ShiftTypeID,
		shift.ShiftDate,
		shift.StartTime,
		shift.EndTime,
		shift.Status,
		shift.Notes,
		shift.UpdatedAt,
		shift.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("shift")
	}
	return nil
}

func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("shift")
	}
	return nil
}

func (r *shiftRepository) ListByRange(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error) {
	query := `
		SELECT id, practice_id, team_member_id, shift_type_id,
			   shift_date, start_time, end_time, status, notes,
			   created_at, updated_at
		FROM shifts
		WHERE practice_id = $1
		AND shift_date >= $2
		AND shift_date <= $3
	`
	args := []interface{}{filters.PracticeID, filters.DateStart, filters.DateEnd}

	if filters.TeamMemberID != nil {
		query += " AND team_member_id = $4"
		args = append(args, *filters.TeamMemberID)
	}

	query += " ORDER BY shift_date ASC, start_time ASC"

	shifts := []*model.Shift{}
	err := r.db.SelectContext(ctx, &shifts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}
