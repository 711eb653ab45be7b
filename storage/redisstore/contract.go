// SPDX-License-Identifier: ice License 1.0

package redisstore

import (
	stdlibtime "time"

	"github.com/redis/go-redis/v9"
)

// Private API.

const (
	keyPrefix          = "playfab:"
	connectionsPerCore = 2
	maxRetries         = 25
	minRetryBackoff    = 10 * stdlibtime.Millisecond
	maxRetryBackoff    = 1 * stdlibtime.Second
	dialTimeout        = 30 * stdlibtime.Second
	readWriteTimeout   = 30 * stdlibtime.Second
	connMaxIdleTime    = 60 * stdlibtime.Second
)

type (
	store struct {
		client *redis.Client
	}
	group struct {
		client *redis.Client
		key    string
	}
)
