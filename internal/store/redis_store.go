package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"

	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
)

var _ Store = (*RedisStore)(nil)

const redisKeyPrefix = "workoutsched"

type RedisStore struct {
	client *redis.Client
}

type NewRedisClientParams struct {
	Addr           string
	Password       string
	TracingEnabled bool
}

func NewRedisClient(params NewRedisClientParams) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     params.Addr,
		Password: params.Password,
		DB:       0, // use default DB
	})
	if params.TracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}
	return rdb
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(owner string, doc DocType) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, doc, owner)
}

func (s *RedisStore) Load(ctx context.Context, owner string, doc DocType) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := s.client.Get(ctx, redisKey(owner, doc)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", doc, err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, owner string, doc DocType, data []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.client.Set(ctx, redisKey(owner, doc), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", doc, err)
	}
	return nil
}

func (s *RedisStore) Owners(ctx context.Context, doc DocType) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.owners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	prefix := fmt.Sprintf("%s:%s:", redisKeyPrefix, doc)
	var (
		owners []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan %s: %w", doc, err)
		}
		for _, k := range keys {
			owners = append(owners, strings.TrimPrefix(k, prefix))
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	sort.Strings(owners)
	return owners, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
