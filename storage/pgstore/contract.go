// SPDX-License-Identifier: ice License 1.0

package pgstore

import (
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Public API.

var (
	ErrUnavailable = errors.New("storage unavailable")
)

// Private API.

const (
	schemaTable = "playfab_storage_schema_migrations"
)

var (
	//go:embed migrations/*.sql
	migrations embed.FS
)

type (
	store struct {
		pool *pgxpool.Pool
	}
	group struct {
		pool *pgxpool.Pool
		name string
	}
	row struct {
		Value string `db:"value"`
	}
)
