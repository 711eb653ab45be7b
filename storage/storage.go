// SPDX-License-Identifier: ice License 1.0

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ice-blockchain/playfab/privacy"
)

// NewMemory keeps everything in process, it's lost once the process ends.
func NewMemory() Store {
	return &memory{groups: make(map[string]map[string]string)}
}

// OpenFile keeps all groups in a single msgpack document at path, rewritten on every change.
func OpenFile(path string) (Store, error) {
	groups := make(map[string]map[string]string)
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read %v", path)
	default:
		if err = msgpack.Unmarshal(content, &groups); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %v", path)
		}
		if groups == nil {
			groups = make(map[string]map[string]string)
		}
	}
	if err = os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for %v", path)
	}

	return &memory{groups: groups, persist: func(all map[string]map[string]string) error {
		return errors.Wrapf(writeFile(path, all), "failed to persist %v", path)
	}}, nil
}

// Encrypted encrypts both keys and values before they reach store.
// Lookups keep working because encryption is deterministic.
func Encrypted(store Store, ed privacy.EncryptDecrypter) Store {
	if ed == nil {
		return store
	}

	return &encrypted{Store: store, ed: ed}
}

func GetString(ctx context.Context, group Group, key string) (string, error) {
	val, err := group.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}

	return val, errors.Wrapf(err, "failed to get %v", key)
}

func GetBool(ctx context.Context, group Group, key string) (bool, error) {
	val, err := GetString(ctx, group, key)
	if err != nil || val == "" {
		return false, err
	}
	parsed, err := strconv.ParseBool(val)

	return parsed, errors.Wrapf(err, "invalid bool stored at %v: %v", key, val)
}

func PutBool(ctx context.Context, group Group, key string, value bool) error {
	return errors.Wrapf(group.Put(ctx, key, strconv.FormatBool(value)), "failed to put %v", key)
}

func (m *memory) Group(name string) Group {
	return &memoryGroup{store: m, name: name}
}

func (*memory) Close() error {
	return nil
}

func (g *memoryGroup) Get(ctx context.Context, key string) (string, error) {
	if ctx.Err() != nil {
		return "", errors.Wrap(ctx.Err(), "context failed")
	}
	g.store.mx.RLock()
	defer g.store.mx.RUnlock()
	val, found := g.store.groups[g.name][key]
	if !found {
		return "", errors.Wrapf(ErrNotFound, "%v/%v", g.name, key)
	}

	return val, nil
}

func (g *memoryGroup) Put(ctx context.Context, key, value string) error {
	return g.store.mutate(ctx, func(groups map[string]map[string]string) {
		if groups[g.name] == nil {
			groups[g.name] = make(map[string]string)
		}
		groups[g.name][key] = value
	})
}

func (g *memoryGroup) Delete(ctx context.Context, keys ...string) error {
	return g.store.mutate(ctx, func(groups map[string]map[string]string) {
		for _, key := range keys {
			delete(groups[g.name], key)
		}
		if len(groups[g.name]) == 0 {
			delete(groups, g.name)
		}
	})
}

func (m *memory) mutate(ctx context.Context, change func(map[string]map[string]string)) error {
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "context failed")
	}
	m.mx.Lock()
	defer m.mx.Unlock()
	change(m.groups)
	if m.persist == nil {
		return nil
	}

	return m.persist(m.groups)
}

func writeFile(path string, groups map[string]map[string]string) error {
	content, err := msgpack.Marshal(groups)
	if err != nil {
		return errors.Wrap(err, "failed to encode")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer func() {
		_ = os.Remove(tmp.Name()) //nolint:errcheck // It's gone after a successful rename anyway.
	}()
	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()

		return errors.Wrap(err, "failed to write temp file")
	}
	if err = tmp.Chmod(filePermissions); err != nil {
		_ = tmp.Close()

		return errors.Wrap(err, "failed to chmod temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "failed to replace file")
}

func (e *encrypted) Group(name string) Group {
	return &encryptedGroup{Group: e.Store.Group(name), ed: e.ed}
}

func (g *encryptedGroup) Get(ctx context.Context, key string) (string, error) {
	val, err := g.Group.Get(ctx, g.ed.Encrypt(key))
	if err != nil {
		return "", err //nolint:wrapcheck // Callers check for ErrNotFound.
	}
	plain, err := g.ed.Decrypt(val)

	return plain, errors.Wrapf(err, "failed to decrypt value of %v", key)
}

func (g *encryptedGroup) Put(ctx context.Context, key, value string) error {
	return g.Group.Put(ctx, g.ed.Encrypt(key), g.ed.Encrypt(value)) //nolint:wrapcheck // It's a proxy.
}

func (g *encryptedGroup) Delete(ctx context.Context, keys ...string) error {
	encryptedKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		encryptedKeys = append(encryptedKeys, g.ed.Encrypt(key))
	}

	return g.Group.Delete(ctx, encryptedKeys...) //nolint:wrapcheck // It's a proxy.
}
