// SPDX-License-Identifier: ice License 1.0

package storage

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/privacy"
)

// Public API.

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
)

type (
	// Store hands out named groups of string values, f.e. `PlayFabBuddy.Auth`.
	Store interface {
		io.Closer
		Group(name string) Group
	}

	Group interface {
		// Get returns ErrNotFound if the key was never Put or was Deleted since.
		Get(ctx context.Context, key string) (string, error)
		Put(ctx context.Context, key, value string) error
		// Delete ignores keys that are not there.
		Delete(ctx context.Context, keys ...string) error
	}

	FileConfig struct {
		Path string `yaml:"path" mapstructure:"path"`
	}

	RedisConfig struct {
		URL      string `yaml:"url" mapstructure:"url"`
		User     string `yaml:"user" mapstructure:"user"`
		Password string `yaml:"password" mapstructure:"password"`
		PoolSize int    `yaml:"poolSize" mapstructure:"poolSize"`
	}

	PostgresConfig struct {
		URL           string `yaml:"url" mapstructure:"url"`
		RunMigrations bool   `yaml:"runMigrations" mapstructure:"runMigrations"`
	}

	Config struct {
		Storage struct {
			Driver   string         `yaml:"driver" mapstructure:"driver"`
			File     FileConfig     `yaml:"file" mapstructure:"file"`
			Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
			Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
		} `yaml:"playfab/storage" mapstructure:"playfab/storage"` //nolint:tagliatelle // Nope.
	}
)

// Private API.

const (
	filePermissions = 0o600
	dirPermissions  = 0o700
)

type (
	memory struct {
		groups  map[string]map[string]string
		persist func(map[string]map[string]string) error
		mx      sync.RWMutex
	}
	memoryGroup struct {
		store *memory
		name  string
	}
	encrypted struct {
		Store
		ed privacy.EncryptDecrypter
	}
	encryptedGroup struct {
		Group
		ed privacy.EncryptDecrypter
	}
)
