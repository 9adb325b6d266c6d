package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/pkg/logger"
	"github.com/praxisops/dienstplan-api/pkg/metrics"
)

// Registered once; promauto panics on duplicate registration.
var testMetrics = metrics.NewMetrics("test", "outbox")

type statusUpdate struct {
	id      uuid.UUID
	status  model.OutboxStatus
	retryAt *time.Time
}

type fakeOutboxRepo struct {
	claimed  []*model.OutboxEvent
	claimErr error
	updates  []statusUpdate
}

func (r *fakeOutboxRepo) Create(_ context.Context, _ *model.OutboxEvent) error { return nil }

func (r *fakeOutboxRepo) ClaimPending(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	if r.claimErr != nil {
		return nil, r.claimErr
	}
	if len(r.claimed) > limit {
		return r.claimed[:limit], nil
	}
	return r.claimed, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OutboxStatus, _ *string, retryAt *time.Time) error {
	r.updates = append(r.updates, statusUpdate{id: id, status: status, retryAt: retryAt})
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeBroker struct {
	published []string
	err       error
}

func (b *fakeBroker) Publish(_ context.Context, topic string, _ interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, topic)
	return nil
}

func (b *fakeBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

func newProcessor(repo *fakeOutboxRepo, broker *fakeBroker) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:    10,
		PollInterval: time.Second,
		MaxRetries:   3,
		RetryDelay:   time.Second,
	}, logger.NewLogger(nil), testMetrics)
}

func pendingEvent(t *testing.T, retries int) *model.OutboxEvent {
	t.Helper()
	e, err := model.NewOutboxEvent(model.EventShiftCreated, map[string]interface{}{"id": uuid.New()})
	require.NoError(t, err)
	e.RetryCount = retries
	return e
}

func TestProcessEventsRelaysAndMarksProcessed(t *testing.T) {
	repo := &fakeOutboxRepo{claimed: []*model.OutboxEvent{pendingEvent(t, 0), pendingEvent(t, 0)}}
	broker := &fakeBroker{}
	p := newProcessor(repo, broker)

	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, []string{model.EventShiftCreated, model.EventShiftCreated}, broker.published)
	require.Len(t, repo.updates, 2)
	for _, u := range repo.updates {
		assert.Equal(t, model.OutboxStatusProcessed, u.status)
		assert.Nil(t, u.retryAt)
	}
}

func TestPublishFailureSchedulesRetryWithBackoff(t *testing.T) {
	event := pendingEvent(t, 1)
	repo := &fakeOutboxRepo{claimed: []*model.OutboxEvent{event}}
	p := newProcessor(repo, &fakeBroker{err: errors.New("broker down")})

	require.NoError(t, p.processEvents(context.Background()))

	require.Len(t, repo.updates, 1)
	u := repo.updates[0]
	assert.Equal(t, event.ID, u.id)
	assert.Equal(t, model.OutboxStatusPending, u.status)
	require.NotNil(t, u.retryAt)
	// Backoff grows with the retry count: second failure waits two delays.
	assert.WithinDuration(t, time.Now().Add(2*time.Second), *u.retryAt, time.Second)
}

func TestExhaustedRetriesParkEventAsFailed(t *testing.T) {
	event := pendingEvent(t, 2)
	repo := &fakeOutboxRepo{claimed: []*model.OutboxEvent{event}}
	p := newProcessor(repo, &fakeBroker{err: errors.New("broker down")})

	require.NoError(t, p.processEvents(context.Background()))

	require.Len(t, repo.updates, 1)
	assert.Equal(t, model.OutboxStatusFailed, repo.updates[0].status)
	assert.Nil(t, repo.updates[0].retryAt)
}

func TestClaimFailureIsReturned(t *testing.T) {
	repo := &fakeOutboxRepo{claimErr: errors.New("connection refused")}
	p := newProcessor(repo, &fakeBroker{})

	assert.Error(t, p.processEvents(context.Background()))
}
