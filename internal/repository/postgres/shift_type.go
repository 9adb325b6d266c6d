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

func (r *shiftTypeRepository) Create(ctx context.Context, st *model.ShiftType) error {
	query := `
		INSERT INTO shift_types (
			id, practice_id, name, short_name, start_time, end_time,
			break_minutes, color, min_staff, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	st.ID = uuid.New()
	st.CreatedAt = time.Now()
	st.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		st.ID,
		st.PracticeID,
		st.Name,
		st.ShortName,
		st.StartTime,
		st.EndTime,
		st.BreakMinutes,
		st.Color,
		st.MinStaff,
		st.IsActive,
		st.CreatedAt,
		st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift type: %w", err)
	}
	return nil
}

func (r *shiftTypeRepository) Get(ctx context.Context, id uuid.UUID) (*model.ShiftType, error) {
	query := `
		SELECT id, practice_id, name, short_name, start_time, end_time,
			   break_minutes, color, min_staff, is_active, created_at, updated_at
		FROM shift_types
		WHERE id = $1
	`
	var st model.ShiftType
	err := r.db.GetContext(ctx, &st, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("shift type")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift type: %w", err)
	}
	return &st, nil
}

func (r *shiftTypeRepository) Update(ctx context.Context, st *model.ShiftType) error {
	query := `
		UPDATE shift_types
		SET name = $1, short_name = $2, start_time = $3, end_time = $4,
			break_minutes = $5, color = $6, min_staff = $7, is_active = $8, updated_at = $9
		WHERE id = $10
	`
	st.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		st.Name,
		st.ShortName,
		st.StartTime,
		st.EndTime,
		st.BreakMinutes,
		st.Color,
		st.MinStaff,
		st.IsActive,
		st.UpdatedAt,
		st.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("shift type")
	}
	return nil
}

// Delete refuses to remove a type still referenced by shifts; the constraint
// lives in the database so concurrent inserts cannot slip past the check.
func (r *shiftTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM shift_types
		WHERE id = $1
		AND NOT EXISTS (SELECT 1 FROM shifts WHERE shift_type_id = $1)
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, getErr := r.Get(ctx, id); getErr == nil {
			return apperrors.NewInvalidState("shift type is still referenced by shifts")
		}
		return apperrors.NewNotFound("shift type")
	}
	return nil
}

func (r *shiftTypeRepository) List(ctx context.Context, practiceID uuid.UUID, activeOnly bool) ([]*model.ShiftType, error) {
	query := `
		SELECT id, practice_id, name, short_name, start_time, end_time,
			   break_minutes, color, min_staff, is_active, created_at, updated_at
		FROM shift_types
		WHERE practice_id = $1
	`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY start_time ASC, name ASC"

	types := []*model.ShiftType{}
	err := r.db.SelectContext(ctx, &types, query, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	return types, nil
}
