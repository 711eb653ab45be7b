// SPDX-License-Identifier: ice License 1.0

package pgstore

import (
	"context"
	"io/fs"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"

	appCfg "github.com/ice-blockchain/playfab/config"
	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/storage"
	"github.com/ice-blockchain/playfab/terror"
)

func MustConnect(ctx context.Context, applicationYAMLKey string) storage.Store {
	var cfg storage.Config
	appCfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.Storage.Postgres.URL = appCfg.Env(applicationYAMLKey, "PLAYFAB_POSTGRES_URL", cfg.Storage.Postgres.URL)
	st, err := Connect(ctx, &cfg.Storage.Postgres)
	log.Panic(errors.Wrapf(err, "[%v] failed to connect to postgres", applicationYAMLKey)) //nolint:revive // That's intended.

	return st
}

// Connect keeps all groups in the `playfab_storage` table, one row per key.
func Connect(ctx context.Context, cfg *storage.PostgresConfig) (storage.Store, error) {
	if cfg.URL == "" {
		return nil, errors.New("postgres url is required")
	}
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse pool config")
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		var res int
		if qErr := conn.QueryRow(ctx, `SELECT 1`).Scan(&res); qErr != nil {
			return errors.Wrapf(qErr, "dummy select failed")
		}
		if res != 1 {
			return errors.New("db validation failed")
		}

		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start pool")
	}
	if cfg.RunMigrations {
		if err = migrateUp(ctx, pool); err != nil {
			pool.Close()

			return nil, errors.Wrap(err, "failed to migrate")
		}
	}

	return &store{pool: pool}, nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return errors.Wrap(parseDBError(err), "cannot acquire connection for migration")
	}
	defer conn.Release()
	migrator, err := migrate.NewMigrator(ctx, conn.Conn(), schemaTable)
	if err != nil {
		return errors.Wrap(err, "cannot create migrator")
	}
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "cannot open embedded migrations")
	}
	if err = migrator.LoadMigrations(sub); err != nil {
		return errors.Wrap(err, "cannot load migrations")
	}
	migrator.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info("starting migration", "sequence", sequence, "name", name, "direction", direction)
	}

	return errors.Wrap(migrator.Migrate(ctx), "migration failed")
}

func (s *store) Group(name string) storage.Group {
	return &group{pool: s.pool, name: name}
}

func (s *store) Close() error {
	s.pool.Close()

	return nil
}

func (g *group) Get(ctx context.Context, key string) (string, error) {
	const sql = `SELECT value FROM playfab_storage WHERE group_name = $1 AND key = $2`
	var res row
	if err := pgxscan.Get(ctx, g.pool, &res, sql, g.name, key); err != nil {
		return "", errors.Wrapf(parseDBError(err), "failed to get %v/%v", g.name, key)
	}

	return res.Value, nil
}

func (g *group) Put(ctx context.Context, key, value string) error {
	const sql = `INSERT INTO playfab_storage (group_name, key, value) VALUES ($1, $2, $3)
				 ON CONFLICT (group_name, key) DO UPDATE SET value = excluded.value, updated_at = now()`
	_, err := g.pool.Exec(ctx, sql, g.name, key, value)

	return errors.Wrapf(parseDBError(err), "failed to put %v/%v", g.name, key)
}

func (g *group) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const sql = `DELETE FROM playfab_storage WHERE group_name = $1 AND key = ANY($2)`
	_, err := g.pool.Exec(ctx, sql, g.name, keys)

	return errors.Wrapf(parseDBError(err), "failed to delete %v/%v", g.name, keys)
}

func parseDBError(err error) error {
	if err == nil {
		return nil
	}
	if pgxscan.NotFound(err) {
		return storage.ErrNotFound
	}
	var dbErr *pgconn.PgError
	if errors.As(err, &dbErr) {
		code := dbErr.SQLState()
		if pgerrcode.IsConnectionException(code) ||
			pgerrcode.IsInsufficientResources(code) ||
			pgerrcode.IsOperatorIntervention(code) ||
			pgerrcode.IsSystemError(code) {
			return terror.New(ErrUnavailable, map[string]any{"sqlState": code, "message": dbErr.Message})
		}
	}

	return err
}
