package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/repository"
	"github.com/praxisops/dienstplan-api/pkg/logger"
	"github.com/praxisops/dienstplan-api/pkg/messaging"
	"github.com/praxisops/dienstplan-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize       int
	PollInterval    time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	RetentionPeriod time.Duration
}

// OutboxProcessor drains pending outbox rows and relays them to the broker.
// Multiple replicas are safe; the repository claims each batch atomically.
// Delivery is at-least-once: a worker dying between publish and the status
// update leads to a redelivery, never a loss.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		panic("MaxRetries must be greater than 0")
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	p.logger.Info("Starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "Failed to process events")
			}
		case <-cleanup.C:
			p.cleanupProcessed(ctx)
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.ClaimPending(ctx, p.config.BatchSize)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("claim_pending_events", "error").Inc()
		return fmt.Errorf("failed to claim pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("claim_pending_events", "success").Inc()

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error(err, "Failed to process event",
				"event_id", event.ID.String(),
				"event_type", event.EventType)
		}
	}

	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	err := p.broker.Publish(ctx, event.EventType, event.Payload)
	if err == nil {
		p.metrics.OutboxEventsProcessed.Inc()
		return p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil, nil)
	}

	errStr := err.Error()

	// Exhausted retries park the event as failed; until then it stays
	// pending with a growing backoff.
	if event.RetryCount+1 >= p.config.MaxRetries {
		p.metrics.OutboxEventsFailed.Inc()
		if updateErr := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusFailed, &errStr, nil); updateErr != nil {
			p.logger.Error(updateErr, "Failed to update event status", "event_id", event.ID.String())
		}
		return err
	}

	p.metrics.OutboxRetries.WithLabelValues(event.EventType).Inc()
	retryAt := time.Now().Add(p.config.RetryDelay * time.Duration(event.RetryCount+1))
	if updateErr := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusPending, &errStr, &retryAt); updateErr != nil {
		p.logger.Error(updateErr, "Failed to schedule event retry", "event_id", event.ID.String())
	}
	return err
}

func (p *OutboxProcessor) cleanupProcessed(ctx context.Context) {
	if p.config.RetentionPeriod <= 0 {
		return
	}
	deleted, err := p.repo.DeleteProcessedBefore(ctx, time.Now().Add(-p.config.RetentionPeriod))
	if err != nil {
		p.logger.Error(err, "Failed to clean up processed events")
		return
	}
	if deleted > 0 {
		p.logger.Info("Cleaned up processed outbox events", "deleted", deleted)
	}
}
