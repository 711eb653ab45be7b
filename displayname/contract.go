// SPDX-License-Identifier: ice License 1.0

package displayname

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/playfab"
)

// Public API.

var (
	ErrNoTitleInfo = errors.New("account has no title info")
)

type (
	// Identity is usually the auth.Client that logged in.
	Identity interface {
		PlayFabID() string
	}

	Handlers struct {
		OnDisplayNameChange func(displayName string)
	}

	Client interface {
		// GetDisplayName returns the last known display name together with any error of the lookup.
		GetDisplayName(ctx context.Context) (string, error)
		SetDisplayName(ctx context.Context, displayName string) error
	}
)

// Private API.

type (
	displayNames struct {
		playfab     playfab.Client
		identity    Identity
		handlers    Handlers
		displayName string
		mx          sync.RWMutex
	}
)
