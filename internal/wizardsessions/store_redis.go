package wizardsessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"promptstudio/internal/shared/util"
	"promptstudio/internal/wizard"
)

const redisKeyPrefix = "promptstudio:wizard:"

// RedisOptions configures the Redis-backed store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisStore keeps one hash per session: field = question id, value = the
// JSON array of selected option ids.
type RedisStore struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisStore connects and pings Redis.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreWithClient(rdb, opts.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(rdb *goredis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Answers(ctx context.Context, key string) ([]wizard.Answer, error) {
	raw, err := s.rdb.HGetAll(ctx, redisKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return decodeAnswers(raw)
}

func (s *RedisStore) SetAnswer(ctx context.Context, key string, a wizard.Answer) error {
	value, err := encodeSelection(a.SelectedOptionIDs)
	if err != nil {
		return err
	}
	k := redisKey(key)
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, k, a.QuestionID, value)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set answer: %w", err)
	}
	return nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func redisKey(sessionKey string) string {
	return redisKeyPrefix + util.HashKey(sessionKey)
}

func encodeSelection(optionIDs []string) (string, error) {
	if optionIDs == nil {
		optionIDs = []string{}
	}
	b, err := json.Marshal(optionIDs)
	if err != nil {
		return "", fmt.Errorf("encode selection: %w", err)
	}
	return string(b), nil
}

func decodeAnswers(raw map[string]string) ([]wizard.Answer, error) {
	out := make([]wizard.Answer, 0, len(raw))
	for qid, value := range raw {
		var opts []string
		if err := json.Unmarshal([]byte(value), &opts); err != nil {
			return nil, fmt.Errorf("decode selection for %s: %w", qid, err)
		}
		out = append(out, wizard.Answer{QuestionID: qid, SelectedOptionIDs: opts})
	}
	return out, nil
}

// Ping reports whether Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
