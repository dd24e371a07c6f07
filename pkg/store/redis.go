package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"holdem-server/pkg/holdem"
)

// Redis keeps sessions in redis
// Keys expire after the TTL so abandoned tables are cleaned up.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRedis returns a store backed by the client
// A TTL of zero never expires.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		prefix: "holdem:",
	}
}

var _ Store = (*Redis)(nil)

func (r *Redis) sessionKey(tableID string) string {
	return r.prefix + "session:" + tableID
}

func (r *Redis) stacksKey(tableID string) string {
	return r.prefix + "stacks:" + tableID
}

// Load returns the session at the table
func (r *Redis) Load(ctx context.Context, tableID string) (*holdem.Session, error) {
	b, err := r.client.Get(ctx, r.sessionKey(tableID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return decode(b)
}

// Save replaces the session at the table
func (r *Redis) Save(ctx context.Context, s *holdem.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.sessionKey(s.TableID), b, r.ttl).Err()
}

// Delete removes the table
func (r *Redis) Delete(ctx context.Context, tableID string) error {
	return r.client.Del(ctx, r.sessionKey(tableID), r.stacksKey(tableID)).Err()
}

// LoadStacks returns the stacks at the table
func (r *Redis) LoadStacks(ctx context.Context, tableID string) (map[string]int, error) {
	values, err := r.client.HGetAll(ctx, r.stacksKey(tableID)).Result()
	if err != nil {
		return nil, err
	}

	stacks := make(map[string]int, len(values))
	for id, v := range values {
		stack, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}

		stacks[id] = stack
	}

	return stacks, nil
}

// SaveStacks replaces the stacks at the table
func (r *Redis) SaveStacks(ctx context.Context, tableID string, stacks map[string]int) error {
	key := r.stacksKey(tableID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(stacks) == 0 {
			return nil
		}

		values := make(map[string]interface{}, len(stacks))
		for id, stack := range stacks {
			values[id] = stack
		}

		pipe.HSet(ctx, key, values)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}

		return nil
	})

	return err
}
