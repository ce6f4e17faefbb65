package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ibrohimkomilov001-web/kinobot/internal/domain/events"
	"github.com/ibrohimkomilov001-web/kinobot/internal/infrastructure/metrics"
)

type mockNotifier struct {
	received []*events.Envelope
	err      error
}

func (m *mockNotifier) Notify(_ context.Context, env *events.Envelope) error {
	m.received = append(m.received, env)
	return m.err
}

func newTestHandlers(notifier Notifier) *Handlers {
	return NewHandlers(notifier, metrics.GetDefaultMetrics(), zerolog.Nop())
}

func TestHandleEvent_DecodesEnvelope(t *testing.T) {
	env, err := events.NewEnvelope(events.TopicReferralCredited, events.ReferralCredited{ReferrerID: 7, ReferredID: 8, Bonus: 500}, time.Now())
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)

	notifier := &mockNotifier{}
	err = newTestHandlers(notifier).HandleEvent(context.Background(), kafka.Message{Topic: events.TopicReferralCredited, Value: data})
	require.NoError(t, err)
	require.Len(t, notifier.received, 1)

	var payload events.ReferralCredited
	require.NoError(t, notifier.received[0].Decode(&payload))
	require.Equal(t, int64(7), payload.ReferrerID)
	require.Equal(t, int64(500), payload.Bonus)
}

func TestHandleEvent_FallsBackToTopicAsType(t *testing.T) {
	notifier := &mockNotifier{}
	err := newTestHandlers(notifier).HandleEvent(context.Background(), kafka.Message{
		Topic: events.TopicWithdrawalResolved,
		Value: []byte(`{"event_id":"e1","payload":{}}`),
	})
	require.NoError(t, err)
	require.Equal(t, events.TopicWithdrawalResolved, notifier.received[0].Type)
}

func TestHandleEvent_InvalidJSON(t *testing.T) {
	notifier := &mockNotifier{}
	err := newTestHandlers(notifier).HandleEvent(context.Background(), kafka.Message{Topic: "t", Value: []byte("{")})
	require.Error(t, err)
	require.Empty(t, notifier.received)
}

func TestHandleEvent_PropagatesNotifyError(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("telegram down")}
	err := newTestHandlers(notifier).HandleEvent(context.Background(), kafka.Message{
		Topic: events.TopicPremiumResolved,
		Value: []byte(`{"event_id":"e2","type":"kinobot.premium.resolved","payload":{}}`),
	})
	require.EqualError(t, err, "telegram down")
}
