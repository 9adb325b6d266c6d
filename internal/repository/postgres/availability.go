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

func (r *availabilityRepository) Create(ctx context.Context, a *model.Availability) error {
	query := `
		INSERT INTO availability (
			id, practice_id, team_member_id, availability_type, is_recurring,
			day_of_week, specific_date, start_time, end_time, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PracticeID,
		a.TeamMemberID,
		a.Type,
		a.IsRecurring,
		a.DayOfWeek,
		a.SpecificDate,
		a.StartTime,
		a.EndTime,
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Get(ctx context.Context, id uuid.UUID) (*model.Availability, error) {
	query := `
		SELECT id, practice_id, team_member_id, availability_type, is_recurring,
			   day_of_week, specific_date, start_time, end_time, notes,
			   created_at, updated_at
		FROM availability
		WHERE id = $1
	`
	var a model.Availability
	err := r.db.GetContext(ctx, &a, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("availability")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return &a, nil
}

func (r *availabilityRepository) Update(ctx context.Context, a *model.Availability) error {
	query := `
		UPDATE availability
		SET availability_type = $1, is_recurring = $2, day_of_week = $3,
			specific_date = $4, start_time = $5, end_time = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	a.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		a.Type,
		a.IsRecurring,
		a.DayOfWeek,
		a.SpecificDate,
		a.StartTime,
		a.EndTime,
		a.Notes,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("availability")
	}
	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("availability")
	}
	return nil
}

func (r *availabilityRepository) List(ctx context.Context, practiceID uuid.UUID) ([]*model.Availability, error) {
	query := `
		SELECT id, practice_id, team_member_id, availability_type, is_recurring,
			   day_of_week, specific_date, start_time, end_time, notes,
			   created_at, updated_at
		FROM availability
		WHERE practice_id = $1
		ORDER BY created_at DESC
	`
	rules := []*model.Availability{}
	err := r.db.SelectContext(ctx, &rules, query, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return rules, nil
}

func (r *availabilityRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*model.Availability, error) {
	query := `
		SELECT id, practice_id, team_member_id, availability_type, is_recurring,
			   day_of_week, specific_date, start_time, end_time, notes,
			   created_at, updated_at
		FROM availability
		WHERE team_member_id = $1
		ORDER BY created_at DESC
	`
	rules := []*model.Availability{}
	err := r.db.SelectContext(ctx, &rules, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability for member: %w", err)
	}
	return rules, nil
}
