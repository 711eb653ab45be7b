// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/playfab/storage"
)

// URLFromEnv skips the test unless the named variable points at a live server.
func URLFromEnv(tb testing.TB, name string) string {
	tb.Helper()
	url := os.Getenv(name)
	if url == "" {
		tb.Skipf("%v is not set", name)
	}

	return url
}

// AssertGroupSemantics checks the behaviour every storage driver has to provide.
// It uses group names unique to the test, so that it can run against shared servers.
func AssertGroupSemantics(ctx context.Context, tb testing.TB, store storage.Store, namespace string) {
	tb.Helper()
	group := store.Group(namespace + "PlayFabBuddy.Auth")
	other := store.Group(namespace + "Other")

	_, err := group.Get(ctx, "PlayFabIdPassGuid")
	require.ErrorIs(tb, err, storage.ErrNotFound)

	require.NoError(tb, group.Put(ctx, "PlayFabIdPassGuid", "some-id"))
	require.NoError(tb, other.Put(ctx, "PlayFabIdPassGuid", "other-id"))
	val, err := group.Get(ctx, "PlayFabIdPassGuid")
	require.NoError(tb, err)
	assert.Equal(tb, "some-id", val)

	require.NoError(tb, group.Put(ctx, "PlayFabIdPassGuid", "replaced"))
	val, err = group.Get(ctx, "PlayFabIdPassGuid")
	require.NoError(tb, err)
	assert.Equal(tb, "replaced", val)

	require.NoError(tb, group.Put(ctx, "PlayFabAuthType", ""))
	val, err = group.Get(ctx, "PlayFabAuthType")
	require.NoError(tb, err)
	assert.Empty(tb, val)

	require.NoError(tb, group.Delete(ctx))
	require.NoError(tb, group.Delete(ctx, "PlayFabIdPassGuid", "PlayFabLoginRemember"))
	_, err = group.Get(ctx, "PlayFabIdPassGuid")
	require.ErrorIs(tb, err, storage.ErrNotFound)
	val, err = other.Get(ctx, "PlayFabIdPassGuid")
	require.NoError(tb, err)
	assert.Equal(tb, "other-id", val)

	require.NoError(tb, group.Delete(ctx, "PlayFabAuthType"))
	require.NoError(tb, other.Delete(ctx, "PlayFabIdPassGuid"))
}
