package publisher

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

const defaultStream = "tournament.events"

// streamAdder is the slice of the redis client the publisher needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type RedisStreamConfig struct {
	Stream string
	// MaxLen caps the stream with approximate trimming; zero keeps every entry.
	MaxLen int64
}

// RedisStreamPublisher appends tournament events to a Redis stream.
type RedisStreamPublisher struct {
	client streamAdder
	stream string
	maxLen int64
	logger *logging.Logger
}

func NewRedisStreamPublisher(client streamAdder, cfg RedisStreamConfig, logger *logging.Logger) *RedisStreamPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	stream := strings.TrimSpace(cfg.Stream)
	if stream == "" {
		stream = defaultStream
	}
	return &RedisStreamPublisher{
		client: client,
		stream: stream,
		maxLen: cfg.MaxLen,
		logger: logger,
	}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(strings.TrimSpace(redisURL))
	if err != nil {
		return nil, crerr.Wrap(err, "parse REDIS_URL")
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}
	return client, nil
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, event usecase.Event) error {
	data, err := encodePayload(event.Payload)
	if err != nil {
		return crerr.Wrapf(err, "encode %s payload", event.Type)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":          event.Type,
			"tournament_id": event.TournamentID,
			"occurred_at":   event.OccurredAt.UTC().Format(time.RFC3339Nano),
			"data":          data,
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return crerr.Wrapf(err, "xadd stream=%s type=%s", p.stream, event.Type)
	}
	p.logger.DebugContext(ctx, "event appended to stream", "stream", p.stream, "type", event.Type, "entry_id", id)
	return nil
}

func encodePayload(payload map[string]any) (string, error) {
	if payload == nil {
		return "{}", nil
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
