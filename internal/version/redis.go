package version

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis — реестр версий поверх Redis. INCR атомарен на стороне сервера,
// поэтому конкурентные инкременты по одному ключу не теряются, а счётчики
// переживают рестарт процесса и разделяются между инстансами сервиса.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// для реестра указанного вида. Ключи имеют вид "admin:ver:<kind>:<id>".
func NewRedis(redisURL string, kind Kind) (*Redis, error) {
	const op = "version.NewRedis"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Redis{rdb: rdb, prefix: "admin:ver:" + string(kind) + ":"}, nil
}

func (r *Redis) key(accountID int64) string {
	return r.prefix + strconv.FormatInt(accountID, 10)
}

// Get возвращает текущее значение счётчика; 0 для незнакомого ключа.
func (r *Redis) Get(ctx context.Context, accountID int64) (int64, error) {
	const op = "version.redis.Get"

	v, err := r.rdb.Get(ctx, r.key(accountID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Increment атомарно увеличивает счётчик и возвращает новое значение.
func (r *Redis) Increment(ctx context.Context, accountID int64) (int64, error) {
	const op = "version.redis.Increment"

	v, err := r.rdb.Incr(ctx, r.key(accountID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Close закрывает клиент Redis.
func (r *Redis) Close() error { return r.rdb.Close() }

var _ Registry = (*Redis)(nil)
