package publisher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
	"github.com/riskibarqy/tournament-engine/internal/platform/resilience"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1700000000000-0", f.err)
}

func sampleEvent() usecase.Event {
	return usecase.Event{
		Type:         usecase.EventBracketAdvanced,
		TournamentID: "ipl-2026",
		OccurredAt:   time.Date(2026, 5, 26, 18, 0, 0, 0, time.UTC),
		Payload:      map[string]any{"team_id": "csk", "match_number": 60},
	}
}

func TestRedisStreamPublisher_Publish(t *testing.T) {
	t.Parallel()

	stream := &fakeStream{}
	p := NewRedisStreamPublisher(stream, RedisStreamConfig{Stream: "cup.events", MaxLen: 1000}, logging.NewNop())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, stream.args, 1)

	args := stream.args[0]
	assert.Equal(t, "cup.events", args.Stream)
	assert.Equal(t, int64(1000), args.MaxLen)
	assert.True(t, args.Approx)

	values, ok := args.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, usecase.EventBracketAdvanced, values["type"])
	assert.Equal(t, "ipl-2026", values["tournament_id"])
	assert.Equal(t, "2026-05-26T18:00:00Z", values["occurred_at"])

	var payload map[string]any
	require.NoError(t, sonic.UnmarshalString(values["data"].(string), &payload))
	assert.Equal(t, "csk", payload["team_id"])
}

func TestRedisStreamPublisher_DefaultsAndErrors(t *testing.T) {
	t.Parallel()

	stream := &fakeStream{err: errors.New("READONLY")}
	p := NewRedisStreamPublisher(stream, RedisStreamConfig{}, nil)

	event := sampleEvent()
	event.Payload = nil
	err := p.Publish(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xadd stream=tournament.events")

	values := stream.args[0].Values.(map[string]any)
	assert.Equal(t, "{}", values["data"])
	assert.Zero(t, stream.args[0].MaxLen)
}

func TestWebhookPublisher_DeliversEvent(t *testing.T) {
	t.Parallel()

	var gotBody []byte
	var gotAuth, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("X-Event-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)

	p, err := NewWebhookPublisher(WebhookConfig{URL: server.URL + "/hooks/cricket", Token: "s3cret"}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	assert.Equal(t, "Bearer s3cret", gotAuth)
	assert.Equal(t, usecase.EventBracketAdvanced, gotType)

	var decoded usecase.Event
	require.NoError(t, sonic.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "ipl-2026", decoded.TournamentID)
	assert.Equal(t, "csk", decoded.Payload["team_id"])
}

func TestWebhookPublisher_OpensCircuitOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	p, err := NewWebhookPublisher(WebhookConfig{
		URL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		err := p.Publish(context.Background(), sampleEvent())
		require.ErrorIs(t, err, errWebhookTransient)
	}
	err = p.Publish(context.Background(), sampleEvent())
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWebhookPublisher_ClientErrorsKeepCircuitClosed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("unknown event"))
	}))
	t.Cleanup(server.Close)

	p, err := NewWebhookPublisher(WebhookConfig{
		URL:            server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	}, logging.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := p.Publish(context.Background(), sampleEvent())
		require.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.Contains(t, err.Error(), "status=400 body=unknown event")
	}
}

func TestNewWebhookPublisher_RejectsBadURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://events.local", "http://"} {
		if _, err := NewWebhookPublisher(WebhookConfig{URL: raw}, nil); err == nil {
			t.Fatalf("expected error for url %q", raw)
		}
	}
}
