// SPDX-License-Identifier: ice License 1.0

package time

import (
	stdlibtime "time"

	"github.com/goccy/go-json"
)

// Public API.

type (
	// Time is the representation of PlayFab timestamps, f.e. LastLoginTime or Created.
	// Its zero value encodes as null.
	Time struct {
		*stdlibtime.Time
	}
)

// Private API.

const (
	// PlayFab emits millisecond precision, with or without the zone designator.
	playFabLayoutNoZone = "2006-01-02T15:04:05.999999999"
)

var (
	_ json.UnmarshalerContext                    = (*Time)(nil)
	_ json.MarshalerContext                      = (*Time)(nil)
	_ interface{ MarshalText() ([]byte, error) } = (*Time)(nil)
	_ interface{ UnmarshalText([]byte) error }   = (*Time)(nil)
)
