package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
)

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, status, retry_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.EventType, event.Payload, event.Status, event.RetryCount, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// ClaimPending atomically flips a batch of due events to PROCESSING and
// returns them, so concurrent worker replicas never pick up the same event.
// Events stuck in PROCESSING (a worker died mid-relay) are reclaimed after a
// grace period; the broker contract is at-least-once either way.
func (r *outboxRepository) ClaimPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	events := []*model.OutboxEvent{}
	err := r.db.SelectContext(ctx, &events, `
		UPDATE outbox_events
		SET status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE (status = $2 AND (retry_at IS NULL OR retry_at <= NOW()))
			   OR (status = $1 AND updated_at < NOW() - INTERVAL '5 minutes')
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_type, payload, status, error_message, retry_count,
				  retry_at, created_at, processed_at, updated_at
	`, model.OutboxStatusProcessing, model.OutboxStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error {
	var processedAt *time.Time
	if status == model.OutboxStatusProcessed {
		now := time.Now()
		processedAt = &now
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox_events
		SET status = $1, error_message = $2, retry_at = $3, processed_at = $4,
			retry_count = retry_count + CASE WHEN $3::timestamptz IS NULL THEN 0 ELSE 1 END,
			updated_at = NOW()
		WHERE id = $5
	`, status, errorMessage, retryAt, processedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update outbox event status: %w", err)
	}
	return nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2
	`, model.OutboxStatusProcessed, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed events: %w", err)
	}
	return result.RowsAffected()
}
