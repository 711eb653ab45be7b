// SPDX-License-Identifier: ice License 1.0

package redisstore

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	appCfg "github.com/ice-blockchain/playfab/config"
	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/storage"
)

func MustConnect(ctx context.Context, applicationYAMLKey string) storage.Store {
	var cfg storage.Config
	appCfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.Storage.Redis.URL = appCfg.Env(applicationYAMLKey, "PLAYFAB_REDIS_URL", cfg.Storage.Redis.URL)
	st, err := Connect(ctx, &cfg.Storage.Redis, applicationYAMLKey)
	log.Panic(errors.Wrapf(err, "[%v] failed to connect to redis", applicationYAMLKey)) //nolint:revive // That's intended.

	return st
}

// Connect keeps every group in its own hash, named `playfab:<group>`.
func Connect(ctx context.Context, cfg *storage.RedisConfig, clientName string) (storage.Store, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid redis url")
	}
	if opts.Username == "" {
		opts.Username = cfg.User
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	opts.ClientName = clientName
	opts.MaxRetries = maxRetries
	opts.MinRetryBackoff = minRetryBackoff
	opts.MaxRetryBackoff = maxRetryBackoff
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = readWriteTimeout
	opts.WriteTimeout = readWriteTimeout
	opts.ConnMaxIdleTime = connMaxIdleTime
	opts.ContextTimeoutEnabled = true
	opts.PoolFIFO = true
	opts.PoolSize = cfg.PoolSize
	if opts.PoolSize <= 0 {
		opts.PoolSize = connectionsPerCore * runtime.GOMAXPROCS(-1)
	}
	opts.MinIdleConns = 1
	opts.MaxIdleConns = 1
	client := redis.NewClient(opts)
	result, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, errors.Wrap(closeOnError(err, client), "ping failed")
	}
	if result != "PONG" {
		return nil, closeOnError(errors.Errorf("unexpected ping response: %v", result), client)
	}

	return &store{client: client}, nil
}

func closeOnError(err error, client *redis.Client) error {
	if cErr := client.Close(); cErr != nil {
		log.Error(errors.Wrap(cErr, "failed to close redis client"))
	}

	return err
}

func (s *store) Group(name string) storage.Group {
	return &group{client: s.client, key: keyPrefix + name}
}

func (s *store) Close() error {
	return errors.Wrap(s.client.Close(), "failed to close redis client")
}

func (g *group) Get(ctx context.Context, key string) (string, error) {
	val, err := g.client.HGet(ctx, g.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.Wrapf(storage.ErrNotFound, "%v/%v", g.key, key)
	}

	return val, errors.Wrapf(err, "failed to HGET %v %v", g.key, key)
}

func (g *group) Put(ctx context.Context, key, value string) error {
	return errors.Wrapf(g.client.HSet(ctx, g.key, key, value).Err(), "failed to HSET %v %v", g.key, key)
}

func (g *group) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return errors.Wrapf(g.client.HDel(ctx, g.key, keys...).Err(), "failed to HDEL %v %v", g.key, keys)
}
