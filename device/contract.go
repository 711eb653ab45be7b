// SPDX-License-Identifier: ice License 1.0

package device

import (
	"github.com/pkg/errors"
)

// Public API.

const (
	PlatformUnknown Platform = iota
	PlatformAndroid
	PlatformIOS
	PlatformWindows
	PlatformMacOS
	PlatformLinux
)

var (
	ErrUnknownPlatform = errors.New("unknown platform")
)

type (
	Platform uint8

	// Info describes the device the player is on. Silent logins are keyed by ID.
	Info interface {
		Platform() Platform
		ID() string
		Name() string
		Model() string
	}

	// Static is an Info with fixed values, f.e. the ones a mobile runtime hands over to the game.
	Static struct {
		DeviceID    string
		DeviceName  string
		DeviceModel string
		OS          Platform
	}
)

// Private API.

const (
	machineIDFile     = "/etc/machine-id"
	dbusMachineIDFile = "/var/lib/dbus/machine-id"
)

//nolint:gochecknoglobals // Immutable lookup tables.
var (
	platformNames = map[Platform]string{
		PlatformUnknown: "Unknown",
		PlatformAndroid: "Android",
		PlatformIOS:     "iOS",
		PlatformWindows: "Windows",
		PlatformMacOS:   "macOS",
		PlatformLinux:   "Linux",
	}
	platformsByGOOS = map[string]Platform{
		"android": PlatformAndroid,
		"ios":     PlatformIOS,
		"windows": PlatformWindows,
		"darwin":  PlatformMacOS,
		"linux":   PlatformLinux,
	}
)
