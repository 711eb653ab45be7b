// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/device"
	"github.com/ice-blockchain/playfab/playfab"
	"github.com/ice-blockchain/playfab/storage"
)

// Public API.

const (
	AuthTypeNone AuthType = iota
	AuthTypeSilent
	AuthTypeUsernameAndPassword
	AuthTypeEmailAndPassword
	AuthTypeRegisterAccount
	AuthTypeFacebook
	AuthTypeGoogle
)

const (
	StorageGroup = "PlayFabBuddy.Auth"
)

var (
	// ErrCredentialsRequired is returned after OnDisplayAuthentication was fired.
	ErrCredentialsRequired        = errors.New("credentials required")
	ErrNoFacebookClient           = errors.New("no facebook client was detected")
	ErrSilentAuthenticationFailed = errors.New("silent authentication by device failed")
	ErrNoDeviceID                 = errors.New("device id is missing")
	ErrUnknownAuthType            = errors.New("unknown auth type")
)

type (
	AuthType uint8

	// Credentials are supplied by the caller before each attempt, they're never persisted.
	Credentials struct {
		Email    string
		Username string
		Password string
		// AuthTicket is the token of the identity provider, f.e. the Google server auth code.
		AuthTicket string
	}

	FacebookUser struct {
		ID    string
		Name  string
		Token string
	}

	Facebook interface {
		LoggedIn() bool
		User() *FacebookUser
		// Login runs the interactive Facebook login.
		Login(ctx context.Context) (*FacebookUser, error)
	}

	// Handlers are invoked synchronously, on the goroutine that authenticates. Any of them can be nil.
	Handlers struct {
		OnDisplayAuthentication func()
		OnLoggingIn             func()
		OnLoginSuccess          func(*playfab.LoginResult)
		OnPlayFabError          func(error)
	}

	Dependencies struct {
		PlayFab playfab.Client
		Store   storage.Store
		Device  device.Info
		// Facebook is optional, AuthTypeFacebook fails with ErrNoFacebookClient without it.
		Facebook Facebook
	}

	Client interface {
		// Close closes the underlying storage.
		io.Closer

		SetCredentials(Credentials)
		Credentials() Credentials

		// SetForceLink decides whether the remember me id is taken away from any account it's already linked to.
		SetForceLink(bool)
		ForceLink() bool

		// SetInfoRequestParams merges params over the configured defaults; nil resets to the defaults.
		// The merge only adds: a flag or key list set in the defaults can't be switched off or emptied here.
		// Both the params and the returned value are copies.
		SetInfoRequestParams(params *playfab.GetPlayerCombinedInfoRequestParams)
		InfoRequestParams() *playfab.GetPlayerCombinedInfoRequestParams

		PlayFabID() string
		SessionTicket() string
		IsLoggedIn() bool

		RememberMe(ctx context.Context) (bool, error)
		// SetRememberMe(ctx, false) clears the remember me id as well.
		SetRememberMe(ctx context.Context, rememberMe bool) error
		AuthType(ctx context.Context) (AuthType, error)
		SetAuthType(ctx context.Context, authType AuthType) error

		// Authenticate logs in using the stored AuthType.
		Authenticate(ctx context.Context) error
		AuthenticateWith(ctx context.Context, authType AuthType) error
		// ClearRememberMe forgets the remember me flag and id, the AuthType stays.
		ClearRememberMe(ctx context.Context) error
		// UnlinkSilentAuth detaches this device from the account it silently logs into.
		UnlinkSilentAuth(ctx context.Context) error
		Logout()
	}

	Config struct {
		Auth struct {
			InfoRequestParams *playfab.GetPlayerCombinedInfoRequestParams `yaml:"infoRequestParams" mapstructure:"infoRequestParams"`
			Device            struct {
				ID       string `yaml:"id" mapstructure:"id"`
				Name     string `yaml:"name" mapstructure:"name"`
				Model    string `yaml:"model" mapstructure:"model"`
				Platform string `yaml:"platform" mapstructure:"platform"`
			} `yaml:"device" mapstructure:"device"`
			ForceLink bool `yaml:"forceLink" mapstructure:"forceLink"`
		} `yaml:"playfab/auth" mapstructure:"playfab/auth"` //nolint:tagliatelle // Nope.
	}
)

// Private API.

const (
	loginRememberKey = "PlayFabLoginRemember"
	rememberMeIDKey  = "PlayFabIdPassGuid"
	authTypeKey      = "PlayFabAuthType"
)

//nolint:gochecknoglobals // Immutable lookup table.
var (
	authTypeNames = map[AuthType]string{
		AuthTypeNone:                "None",
		AuthTypeSilent:              "Silent",
		AuthTypeUsernameAndPassword: "UsernameAndPassword",
		AuthTypeEmailAndPassword:    "EmailAndPassword",
		AuthTypeRegisterAccount:     "RegisterPlayFabAccount",
		AuthTypeFacebook:            "Facebook",
		AuthTypeGoogle:              "Google",
	}
)

type (
	auth struct {
		playfab           playfab.Client
		store             storage.Store
		group             storage.Group
		device            device.Info
		facebook          Facebook
		defaultInfoParams *playfab.GetPlayerCombinedInfoRequestParams
		infoParams        *playfab.GetPlayerCombinedInfoRequestParams
		handlers          Handlers
		credentials       Credentials
		playFabID         string
		sessionTicket     string
		mx                sync.RWMutex
		forceLink         bool
	}
)
