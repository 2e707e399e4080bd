package store

import (
	"context"

	"twitch_vatsim_stats/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRedisKey    = "tvs:settings"
	redisUpdateRetries = 5
)

var ErrUpdateConflict = errors.New("settings changed concurrently")

// RedisStore shares the settings between processes, Update uses WATCH/MULTI.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{
		client: client,
		key:    key,
	}
}

func (rs *RedisStore) Get(ctx context.Context) (models.Settings, error) {
	return rs.load(ctx, rs.client)
}

func (rs *RedisStore) Update(ctx context.Context, apply func(*models.Settings) error) (models.Settings, error) {
	var updated models.Settings

	txf := func(tx *redis.Tx) error {
		settings, err := rs.load(ctx, tx)
		if err != nil {
			return err
		}

		if err = apply(&settings); err != nil {
			return err
		}
		normalize(&settings)

		data, err := jsoniter.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "encode settings")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rs.key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = settings
		return nil
	}

	for i := 0; i < redisUpdateRetries; i++ {
		err := rs.client.Watch(ctx, txf, rs.key)
		if err == nil {
			return updated, nil
		}
		if err == redis.TxFailedErr {
			logrus.Warnf("settings update conflict, attempt %d", i+1)
			continue
		}
		return models.Settings{}, err
	}

	return models.Settings{}, ErrUpdateConflict
}

func (rs *RedisStore) load(ctx context.Context, cmd redis.Cmdable) (settings models.Settings, err error) {
	data, err := cmd.Get(ctx, rs.key).Bytes()
	if err == redis.Nil {
		normalize(&settings)
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, errors.Wrap(err, "redis get settings")
	}

	if err = jsoniter.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, errors.Wrap(err, "decode settings")
	}
	normalize(&settings)

	return settings, nil
}
