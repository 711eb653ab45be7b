// SPDX-License-Identifier: ice License 1.0

package device

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {
	t.Parallel()
	h1, h2 := Host(), Host()
	assert.Equal(t, h1.ID(), h2.ID())
	assert.Len(t, h1.ID(), 32)
	assert.NotEmpty(t, h1.Name())
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, h1.Model())
	assert.Equal(t, PlatformOf(runtime.GOOS), h1.Platform())
}

func TestHashID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HashID("linux", "abc"), HashID("linux", "abc"))
	assert.NotEqual(t, HashID("linux", "abc"), HashID("windows", "abc"))
	assert.NotEqual(t, HashID("li", "nuxabc"), HashID("linux", "abc"))
}

func TestPlatformText(t *testing.T) {
	t.Parallel()
	for _, p := range []Platform{PlatformUnknown, PlatformAndroid, PlatformIOS, PlatformWindows, PlatformMacOS, PlatformLinux} {
		text, err := p.MarshalText()
		require.NoError(t, err)
		var parsed Platform
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, p, parsed)
	}
	p, err := ParsePlatform("darwin")
	require.NoError(t, err)
	assert.Equal(t, PlatformMacOS, p)
	p, err = ParsePlatform("IOS")
	require.NoError(t, err)
	assert.Equal(t, PlatformIOS, p)
	_, err = ParsePlatform("playstation")
	require.ErrorIs(t, err, ErrUnknownPlatform)
	assert.Equal(t, "Platform(42)", Platform(42).String())
}
