// SPDX-License-Identifier: ice License 1.0

package time

import (
	"context"
	"strings"
	stdlibtime "time"

	"github.com/pkg/errors"
)

func Now() *Time {
	now := stdlibtime.Now().UTC()

	return &Time{
		Time: &now,
	}
}

func New(time stdlibtime.Time) *Time {
	return &Time{
		Time: &time,
	}
}

func (t *Time) IsNil() bool {
	return t == nil || t.Time == nil || t.Time.IsZero()
}

func (t *Time) MarshalJSON(_ context.Context) ([]byte, error) {
	if t.IsNil() {
		return []byte("null"), nil
	}

	return []byte(`"` + t.UTC().Format(stdlibtime.RFC3339Nano) + `"`), nil
}

func (t *Time) UnmarshalJSON(_ context.Context, bytes []byte) error {
	return t.UnmarshalText([]byte(strings.Trim(string(bytes), `"`)))
}

func (t *Time) MarshalText() ([]byte, error) {
	if t.IsNil() {
		return []byte{}, nil
	}

	return []byte(t.UTC().Format(stdlibtime.RFC3339Nano)), nil
}

func (t *Time) UnmarshalText(text []byte) error {
	data := strings.TrimSpace(string(text))
	if data == "" || data == "null" {
		t.Time = nil

		return nil
	}
	parsed, err := stdlibtime.Parse(stdlibtime.RFC3339Nano, data)
	if err != nil {
		var nErr error
		if parsed, nErr = stdlibtime.Parse(playFabLayoutNoZone, data); nErr != nil {
			return errors.Wrapf(err, "invalid time format: %v", data)
		}
	}
	t.Time = new(stdlibtime.Time)
	*t.Time = parsed.UTC()

	return nil
}
