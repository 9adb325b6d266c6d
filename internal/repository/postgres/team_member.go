package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

// team_members is owned by the HR module; this repository only reads it.

func (r *teamMemberRepository) Get(ctx context.Context, id uuid.UUID) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.GetContext(ctx, &m, `
		SELECT id, practice_id, first_name, last_name, role, email, avatar_url
		FROM team_members
		WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("team member")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return &m, nil
}

func (r *teamMemberRepository) List(ctx context.Context, practiceID uuid.UUID) ([]*model.TeamMember, error) {
	members := []*model.TeamMember{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT id, practice_id, first_name, last_name, role, email, avatar_url
		FROM team_members
		WHERE practice_id = $1
		ORDER BY last_name ASC, first_name ASC
	`, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

func (r *teamMemberRepository) ListByRole(ctx context.Context, practiceID uuid.UUID, role string) ([]*model.TeamMember, error) {
	members := []*model.TeamMember{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT id, practice_id, first_name, last_name, role, email, avatar_url
		FROM team_members
		WHERE practice_id = $1 AND role = $2
		ORDER BY last_name ASC, first_name ASC
	`, practiceID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members by role: %w", err)
	}
	return members, nil
}
