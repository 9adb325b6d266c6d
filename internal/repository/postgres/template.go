package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

func (r *templateRepository) Create(ctx context.Context, t *model.ScheduleTemplate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schedule_templates (id, practice_id, name, description, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.PracticeID, t.Name, t.Description, t.IsDefault, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	if err := insertTemplateShifts(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit template: %w", err)
	}
	return nil
}

func insertTemplateShifts(ctx context.Context, tx *sqlx.Tx, t *model.ScheduleTemplate) error {
	query := `
		INSERT INTO template_shifts (id, template_id, day_of_week, shift_type_id, role_filter)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i := range t.Shifts {
		ts := &t.Shifts[i]
		ts.ID = uuid.New()
		ts.TemplateID = t.ID
		if _, err := tx.ExecContext(ctx, query, ts.ID, ts.TemplateID, ts.DayOfWeek, ts.ShiftTypeID, ts.RoleFilter); err != nil {
			return fmt.Errorf("failed to create template shift: %w", err)
		}
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, id uuid.UUID) (*model.ScheduleTemplate, error) {
	var t model.ScheduleTemplate
	err := r.db.GetContext(ctx, &t, `
		SELECT id, practice_id, name, description, is_default, created_at, updated_at
		FROM schedule_templates
		WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("template")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := r.loadShifts(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *templateRepository) loadShifts(ctx context.Context, t *model.ScheduleTemplate) error {
	shifts := []model.TemplateShift{}
	err := r.db.SelectContext(ctx, &shifts, `
		SELECT id, template_id, day_of_week, shift_type_id, role_filter
		FROM template_shifts
		WHERE template_id = $1
		ORDER BY day_of_week ASC
	`, t.ID)
	if err != nil {
		return fmt.Errorf("failed to load template shifts: %w", err)
	}
	t.Shifts = shifts
	return nil
}

// Update replaces the rule set wholesale; partial rule edits arrive as the
// full new list from the template editor.
func (r *templateRepository) Update(ctx context.Context, t *model.ScheduleTemplate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, `
		UPDATE schedule_templates
		SET name = $1, description = $2, is_default = $3, updated_at = $4
		WHERE id = $5
	`, t.Name, t.Description, t.IsDefault, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("template")
	}

	if t.Shifts != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM template_shifts WHERE template_id = $1`, t.ID); err != nil {
			return fmt.Errorf("failed to clear template shifts: %w", err)
		}
		if err := insertTemplateShifts(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit template: %w", err)
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("template")
	}
	return nil
}

func (r *templateRepository) List(ctx context.Context, practiceID uuid.UUID) ([]*model.ScheduleTemplate, error) {
	templates := []*model.ScheduleTemplate{}
	err := r.db.SelectContext(ctx, &templates, `
		SELECT id, practice_id, name, description, is_default, created_at, updated_at
		FROM schedule_templates
		WHERE practice_id = $1
		ORDER BY is_default DESC, name ASC
	`, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	for _, t := range templates {
		if err := r.loadShifts(ctx, t); err != nil {
			return nil, err
		}
	}
	return templates, nil
}
