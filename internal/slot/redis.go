package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the payload under a redis key and announces every write on
// <key>:changes. Each slot tags its announcements with a random origin id and
// ignores its own, so a context never observes its own writes.
type RedisSlot struct {
	client  *redis.Client
	key     string
	channel string
	origin  string
	logger  *log.Logger
}

// RedisOptions configure a RedisSlot.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Logger   *log.Logger
}

// envelope is the pub/sub message body.
type envelope struct {
	Origin  string `json:"origin"`
	Value   []byte `json:"value,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

func encodeEnvelope(e envelope) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeEnvelope(payload string) (envelope, error) {
	var e envelope
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return envelope{}, err
	}
	return e, nil
}

// NewRedisSlot connects to redis and verifies the connection.
func NewRedisSlot(ctx context.Context, opts RedisOptions) (*RedisSlot, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	if !ValidKey(key) {
		return nil, fmt.Errorf("invalid slot key %q", key)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &RedisSlot{
		client:  client,
		key:     key,
		channel: key + ":changes",
		origin:  uuid.NewString(),
		logger:  loggerOrDefault(opts.Logger),
	}, nil
}

// Key implements Slot.
func (s *RedisSlot) Key() string { return s.key }

// Read implements Slot.
func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	return value, nil
}

// Write implements Slot. The value and its announcement go out in one
// MULTI/EXEC so subscribers never see an announcement for a stale value.
func (s *RedisSlot) Write(ctx context.Context, value []byte) error {
	msg, err := encodeEnvelope(envelope{Origin: s.origin, Value: value})
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key, value, 0)
		pipe.Publish(ctx, s.channel, msg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Watch implements Slot.
func (s *RedisSlot) Watch(ctx context.Context) (<-chan Change, error) {
	sub := s.client.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", s.channel, err)
	}

	events := make(chan Change, 16)
	go func() {
		defer close(events)
		defer func() { _ = sub.Close() }()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				e, err := decodeEnvelope(msg.Payload)
				if err != nil {
					s.logger.Warn("ignoring malformed slot announcement", "channel", s.channel, "err", err)
					continue
				}
				if e.Origin == s.origin {
					continue
				}
				select {
				case events <- Change{Key: s.key, Value: e.Value, Deleted: e.Deleted}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

// Close implements Slot.
func (s *RedisSlot) Close() error {
	return s.client.Close()
}
