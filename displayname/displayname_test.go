// SPDX-License-Identifier: ice License 1.0

package displayname

import (
	"context"
	"sync"
	"testing"
	stdlibtime "time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/playfab/playfab"
	"github.com/ice-blockchain/playfab/playfab/fixture"
)

type (
	identity string

	changes struct {
		names []string
		mx    sync.Mutex
	}
)

func (i identity) PlayFabID() string {
	return string(i)
}

func (c *changes) record(displayName string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.names = append(c.names, displayName)
}

func (c *changes) all() []string {
	c.mx.Lock()
	defer c.mx.Unlock()

	return append([]string(nil), c.names...)
}

func newLoggedInClient(ctx context.Context, tb testing.TB) playfab.Client {
	tb.Helper()
	srv := fixture.New(tb, "")
	srv.CreateAccount(fixture.Account{PlayFabID: "P1", CustomID: "custom-1", DisplayName: "Jane"})
	var cfg playfab.Config
	cfg.PlayFab.TitleID = srv.TitleID
	cfg.PlayFab.BaseURL = srv.URL
	cl, err := playfab.NewFromConfig(&cfg)
	require.NoError(tb, err)
	_, err = cl.LoginWithCustomID(ctx, &playfab.LoginWithCustomIDRequest{CustomID: "custom-1"})
	require.NoError(tb, err)

	return cl
}

func TestDisplayName(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	cl := newLoggedInClient(ctx, t)
	changed := new(changes)
	names := New(cl, identity("P1"), Handlers{OnDisplayNameChange: changed.record})

	displayName, err := names.GetDisplayName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", displayName)

	err = names.SetDisplayName(ctx, "Jo")
	assert.True(t, playfab.IsErrorCode(err, playfab.ErrorCodeInvalidParams))
	assert.Empty(t, changed.all())

	require.NoError(t, names.SetDisplayName(ctx, "Johnny"))
	assert.Equal(t, []string{"Johnny"}, changed.all())
	displayName, err = names.GetDisplayName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", displayName)

	cl.ForgetAllCredentials()
	displayName, err = names.GetDisplayName(ctx)
	require.ErrorIs(t, err, playfab.ErrNotLoggedIn)
	assert.Equal(t, "Johnny", displayName)
}

func TestDisplayName_UnknownAccount(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	names := New(newLoggedInClient(ctx, t), identity("nobody"), Handlers{})

	displayName, err := names.GetDisplayName(ctx)
	assert.True(t, playfab.IsErrorCode(err, playfab.ErrorCodeAccountNotFound))
	assert.Empty(t, displayName)
}

func TestNew_RequiresDependencies(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil, identity("P1"), Handlers{}) })
}
