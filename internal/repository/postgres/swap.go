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

const swapColumns = `
	id, practice_id, requester_id, target_id, requester_shift_id, target_shift_id,
	status, reason, ai_recommendation, created_at, reviewed_at, reviewed_by
`

func (r *swapRepository) Create(ctx context.Context, req *model.SwapRequest, event *model.OutboxEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The service assigns the ID up front so the outbox payload carries it.
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = model.SwapStatusPending
	req.CreatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO swap_requests (
			id, practice_id, requester_id, target_id, requester_shift_id,
			target_shift_id, status, reason, ai_recommendation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		req.ID,
		req.PracticeID,
		req.RequesterID,
		req.TargetID,
		req.RequesterShiftID,
		req.TargetShiftID,
		req.Status,
		req.Reason,
		req.AIRecommendation,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create swap request: %w", err)
	}

	if err := insertOutboxTx(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit swap request: %w", err)
	}
	return nil
}

func (r *swapRepository) Get(ctx context.Context, id uuid.UUID) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.GetContext(ctx, &req, `SELECT `+swapColumns+` FROM swap_requests WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("swap request")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get swap request: %w", err)
	}
	return &req, nil
}

func (r *swapRepository) List(ctx context.Context, practiceID uuid.UUID, status *model.SwapStatus) ([]*model.SwapRequest, error) {
	query := `SELECT ` + swapColumns + ` FROM swap_requests WHERE practice_id = $1`
	args := []interface{}{practiceID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	requests := []*model.SwapRequest{}
	err := r.db.SelectContext(ctx, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}
	return requests, nil
}

func (r *swapRepository) CountPending(ctx context.Context, practiceID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM swap_requests WHERE practice_id = $1 AND status = $2
	`, practiceID, model.SwapStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending swap requests: %w", err)
	}
	return count, nil
}

// Approve runs the whole transition as one transaction: the request row is
// locked, verified pending, flipped to approved, and the two shifts exchange
// their team_member_id. A concurrent reviewer blocks on the row lock and then
// observes the terminal status.
func (r *swapRepository) Approve(ctx context.Context, id, reviewerID uuid.UUID, event *model.OutboxEvent) (*model.SwapRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	req, err := lockPendingRequest(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	// Lock both shifts in a stable order so two overlapping approvals that
	// touch the same shifts cannot deadlock.
	type shiftOwner struct {
		ID           uuid.UUID     `db:"id"`
		TeamMemberID uuid.NullUUID `db:"team_member_id"`
	}
	owners := []shiftOwner{}
	err = tx.SelectContext(ctx, &owners, `
		SELECT id, team_member_id FROM shifts
		WHERE id IN ($1, $2)
		ORDER BY id
		FOR UPDATE
	`, req.RequesterShiftID, req.TargetShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock shifts: %w", err)
	}
	if len(owners) != 2 {
		return nil, apperrors.NewInvalidState("a referenced shift no longer exists")
	}

	byID := map[uuid.UUID]uuid.NullUUID{}
	for _, o := range owners {
		byID[o.ID] = o.TeamMemberID
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE swap_requests SET status = $1, reviewed_at = $2, reviewed_by = $3 WHERE id = $4
	`, model.SwapStatusApproved, now, reviewerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve swap request: %w", err)
	}

	for _, pair := range [][2]uuid.UUID{
		{req.RequesterShiftID, req.TargetShiftID},
		{req.TargetShiftID, req.RequesterShiftID},
	} {
		if _, err := tx.ExecContext(ctx, `
			UPDATE shifts SET team_member_id = $1, updated_at = $2 WHERE id = $3
		`, byID[pair[1]], now, pair[0]); err != nil {
			return nil, fmt.Errorf("failed to exchange shift assignment: %w", err)
		}
	}

	if err := insertOutboxTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit swap approval: %w", err)
	}

	req.Status = model.SwapStatusApproved
	req.ReviewedAt = &now
	req.ReviewedBy = uuid.NullUUID{UUID: reviewerID, Valid: true}
	return req, nil
}

func (r *swapRepository) Reject(ctx context.Context, id, reviewerID uuid.UUID, event *model.OutboxEvent) (*model.SwapRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	req, err := lockPendingRequest(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE swap_requests SET status = $1, reviewed_at = $2, reviewed_by = $3 WHERE id = $4
	`, model.SwapStatusRejected, now, reviewerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reject swap request: %w", err)
	}

	if err := insertOutboxTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit swap rejection: %w", err)
	}

	req.Status = model.SwapStatusRejected
	req.ReviewedAt = &now
	req.ReviewedBy = uuid.NullUUID{UUID: reviewerID, Valid: true}
	return req, nil
}

func lockPendingRequest(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := tx.GetContext(ctx, &req, `
		SELECT `+swapColumns+` FROM swap_requests WHERE id = $1 FOR UPDATE
	`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("swap request")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock swap request: %w", err)
	}
	if req.Status != model.SwapStatusPending {
		return nil, apperrors.NewInvalidState(fmt.Sprintf("swap request is already %s", req.Status))
	}
	return &req, nil
}

func insertOutboxTx(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	if event == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, status, retry_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.EventType, event.Payload, event.Status, event.RetryCount, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}
