// SPDX-License-Identifier: ice License 1.0

package device

import (
	"encoding/hex"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// Host describes the machine the process runs on.
// The ID is a hash of the OS machine id (or the hostname, if there's none), so it's stable across restarts.
func Host() *Static {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	seed := hostname
	for _, file := range []string{machineIDFile, dbusMachineIDFile} {
		if content, rErr := os.ReadFile(file); rErr == nil && len(strings.TrimSpace(string(content))) > 0 {
			seed = strings.TrimSpace(string(content))

			break
		}
	}

	return &Static{
		DeviceID:    HashID(runtime.GOOS, seed),
		DeviceName:  hostname,
		DeviceModel: runtime.GOOS + "/" + runtime.GOARCH,
		OS:          PlatformOf(runtime.GOOS),
	}
}

// HashID derives a 128bit hex id out of the provided parts.
func HashID(parts ...string) string {
	sum := xxh3.HashString128(strings.Join(parts, "|")).Bytes()

	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func PlatformOf(goos string) Platform {
	if p, found := platformsByGOOS[strings.ToLower(goos)]; found {
		return p
	}

	return PlatformUnknown
}

func ParsePlatform(name string) (Platform, error) {
	for p, pName := range platformNames {
		if strings.EqualFold(pName, name) {
			return p, nil
		}
	}
	if p := PlatformOf(name); p != PlatformUnknown {
		return p, nil
	}

	return PlatformUnknown, errors.Wrapf(ErrUnknownPlatform, "%q", name)
}

func (p Platform) String() string {
	if name, found := platformNames[p]; found {
		return name
	}

	return "Platform(" + strconv.Itoa(int(p)) + ")"
}

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}

func (s *Static) Platform() Platform {
	return s.OS
}

func (s *Static) ID() string {
	return s.DeviceID
}

func (s *Static) Name() string {
	return s.DeviceName
}

func (s *Static) Model() string {
	return s.DeviceModel
}
