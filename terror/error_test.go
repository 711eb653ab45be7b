// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAndValue(t *testing.T) {
	t.Parallel()
	errBase := errors.New("silent login failed")
	wrapped := errors.Wrap(New(errBase, map[string]any{"platform": "android"}), "register account")

	require.ErrorIs(t, wrapped, errBase)
	tErr := As(wrapped)
	require.NotNil(t, tErr)
	assert.Equal(t, "android", tErr.Data["platform"])

	val, found := Value(wrapped, "platform")
	assert.True(t, found)
	assert.Equal(t, "android", val)
	_, found = Value(wrapped, "bogus")
	assert.False(t, found)
	_, found = Value(errBase, "platform")
	assert.False(t, found)
	assert.Nil(t, As(errBase))
}
