// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	appCfg "github.com/ice-blockchain/playfab/config"
	"github.com/ice-blockchain/playfab/device"
	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/playfab"
	"github.com/ice-blockchain/playfab/privacy"
	"github.com/ice-blockchain/playfab/storage"
	"github.com/ice-blockchain/playfab/storage/pgstore"
	"github.com/ice-blockchain/playfab/storage/redisstore"
)

// MustNew builds everything out of the applicationYAMLKey section of application.yaml.
// Facebook has to be wired by the caller through New, there's no config for it.
func MustNew(ctx context.Context, applicationYAMLKey string, handlers Handlers) Client { //nolint:gocritic // Handlers are set once.
	var cfg Config
	appCfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	info, err := configuredDevice(&cfg)
	log.Panic(errors.Wrapf(err, "[%v] invalid device config", applicationYAMLKey)) //nolint:revive // That's intended.
	cl := New(&Dependencies{
		PlayFab: playfab.New(applicationYAMLKey),
		Store:   MustOpenStore(ctx, applicationYAMLKey),
		Device:  info,
	}, handlers)
	cl.SetForceLink(cfg.Auth.ForceLink)
	cl.(*auth).setDefaultInfoRequestParams(cfg.Auth.InfoRequestParams) //nolint:forcetypeassert // We know it.

	return cl
}

// MustOpenStore opens the configured storage driver, encrypting everything if a privacy secret is configured.
func MustOpenStore(ctx context.Context, applicationYAMLKey string) storage.Store {
	var cfg storage.Config
	appCfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	var store storage.Store
	switch driver := strings.ToLower(appCfg.Env(applicationYAMLKey, "PLAYFAB_STORAGE_DRIVER", cfg.Storage.Driver)); driver {
	case "", storage.DriverMemory:
		store = storage.NewMemory()
	case storage.DriverFile:
		var err error
		store, err = storage.OpenFile(appCfg.Env(applicationYAMLKey, "PLAYFAB_STORAGE_FILE", cfg.Storage.File.Path))
		log.Panic(errors.Wrapf(err, "[%v] failed to open file storage", applicationYAMLKey)) //nolint:revive // That's intended.
	case storage.DriverRedis:
		store = redisstore.MustConnect(ctx, applicationYAMLKey)
	case storage.DriverPostgres:
		store = pgstore.MustConnect(ctx, applicationYAMLKey)
	default:
		log.Panic(errors.Wrapf(storage.ErrUnknownDriver, "[%v] %v", applicationYAMLKey, driver))
	}

	return storage.Encrypted(store, privacy.New(applicationYAMLKey))
}

func configuredDevice(cfg *Config) (*device.Static, error) {
	info := device.Host()
	if cfg.Auth.Device.ID != "" {
		info.DeviceID = cfg.Auth.Device.ID
	}
	if cfg.Auth.Device.Name != "" {
		info.DeviceName = cfg.Auth.Device.Name
	}
	if cfg.Auth.Device.Model != "" {
		info.DeviceModel = cfg.Auth.Device.Model
	}
	if cfg.Auth.Device.Platform != "" {
		platform, err := device.ParsePlatform(cfg.Auth.Device.Platform)
		if err != nil {
			return nil, errors.Wrapf(err, "platform %v", cfg.Auth.Device.Platform)
		}
		info.OS = platform
	}

	return info, nil
}
