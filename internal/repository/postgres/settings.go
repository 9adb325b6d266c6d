package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

func (r *settingsRepository) GetPlannerDays(ctx context.Context, practiceID uuid.UUID) (int, error) {
	var days int
	err := r.db.GetContext(ctx, &days, `
		SELECT planner_days FROM practice_settings WHERE practice_id = $1
	`, practiceID)
	if err == sql.ErrNoRows {
		return 0, apperrors.NewNotFound("practice settings")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get planner days: %w", err)
	}
	return days, nil
}
