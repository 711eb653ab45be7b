// SPDX-License-Identifier: ice License 1.0

package playfab

import (
	"context"
	"sync"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Public API.

const (
	DefaultBaseURLFormat = "https://%v.playfabapi.com"
	SDKVersion           = "PlayFabBuddyGoSDK-1.0.0"
)

const (
	ErrorCodeSuccess                     ErrorCode = 0
	ErrorCodeUnknown                     ErrorCode = 1
	ErrorCodeConnectionError             ErrorCode = 2
	ErrorCodeJSONParseError              ErrorCode = 3
	ErrorCodeInvalidParams               ErrorCode = 1000
	ErrorCodeAccountNotFound             ErrorCode = 1001
	ErrorCodeAccountBanned               ErrorCode = 1002
	ErrorCodeInvalidUsernameOrPassword   ErrorCode = 1003
	ErrorCodeInvalidTitleID              ErrorCode = 1004
	ErrorCodeInvalidEmailAddress         ErrorCode = 1005
	ErrorCodeEmailAddressNotAvailable    ErrorCode = 1006
	ErrorCodeInvalidUsername             ErrorCode = 1007
	ErrorCodeInvalidPassword             ErrorCode = 1008
	ErrorCodeUsernameNotAvailable        ErrorCode = 1009
	ErrorCodeAccountAlreadyLinked        ErrorCode = 1011
	ErrorCodeLinkedAccountAlreadyClaimed ErrorCode = 1012
	ErrorCodeInvalidFacebookToken        ErrorCode = 1013
	ErrorCodeAccountNotLinked            ErrorCode = 1014
	ErrorCodeNotAuthenticated            ErrorCode = 1074
	ErrorCodeInvalidEmailOrPassword      ErrorCode = 1142
)

var (
	ErrNotLoggedIn      = errors.New("no session ticket, login first")
	ErrTitleIDRequired  = errors.New("titleId is required")
	ErrEmptyAPIResponse = errors.New("empty api response")
)

type (
	ErrorCode int

	// Error is what PlayFab responds with when an API call fails.
	Error struct {
		ErrorDetails map[string][]string `json:"errorDetails,omitempty"`
		HTTPStatus   string              `json:"status,omitempty"`
		ErrorName    string              `json:"error,omitempty"`
		ErrorMessage string              `json:"errorMessage,omitempty"`
		HTTPCode     int                 `json:"code,omitempty"`
		ErrorCode    ErrorCode           `json:"errorCode,omitempty"`
	}

	Client interface {
		TitleID() string
		// SessionTicket is the ticket of the last successful login, empty if none.
		SessionTicket() string
		// EntityToken is the entity token handed out by the last login, for the entity APIs.
		EntityToken() string
		// ForgetAllCredentials drops the session, authenticated calls fail with ErrNotLoggedIn afterwards.
		ForgetAllCredentials()

		LoginWithCustomID(ctx context.Context, arg *LoginWithCustomIDRequest) (*LoginResult, error)
		LoginWithEmailAddress(ctx context.Context, arg *LoginWithEmailAddressRequest) (*LoginResult, error)
		LoginWithPlayFab(ctx context.Context, arg *LoginWithPlayFabRequest) (*LoginResult, error)
		LoginWithAndroidDeviceID(ctx context.Context, arg *LoginWithAndroidDeviceIDRequest) (*LoginResult, error)
		LoginWithIOSDeviceID(ctx context.Context, arg *LoginWithIOSDeviceIDRequest) (*LoginResult, error)
		LoginWithFacebook(ctx context.Context, arg *LoginWithFacebookRequest) (*LoginResult, error)
		LoginWithGoogleAccount(ctx context.Context, arg *LoginWithGoogleAccountRequest) (*LoginResult, error)

		LinkCustomID(ctx context.Context, arg *LinkCustomIDRequest) error
		UnlinkCustomID(ctx context.Context, arg *UnlinkCustomIDRequest) error
		UnlinkAndroidDeviceID(ctx context.Context, arg *UnlinkAndroidDeviceIDRequest) error
		UnlinkIOSDeviceID(ctx context.Context, arg *UnlinkIOSDeviceIDRequest) error
		AddUsernamePassword(ctx context.Context, arg *AddUsernamePasswordRequest) (*AddUsernamePasswordResult, error)

		GetAccountInfo(ctx context.Context, arg *GetAccountInfoRequest) (*GetAccountInfoResult, error)
		UpdateUserTitleDisplayName(ctx context.Context, arg *UpdateUserTitleDisplayNameRequest) (*UpdateUserTitleDisplayNameResult, error)
	}

	Config struct {
		PlayFab struct {
			TitleID         string              `yaml:"titleId" mapstructure:"titleId"`
			BaseURL         string              `yaml:"baseUrl" mapstructure:"baseUrl"`
			RequestDeadline stdlibtime.Duration `yaml:"requestDeadline" mapstructure:"requestDeadline"`
		} `yaml:"playfab/client" mapstructure:"playfab/client"` //nolint:tagliatelle // Nope.
	}
)

// Private API.

const (
	requestDeadline       = 25 * stdlibtime.Second
	authorizationHeader   = "X-Authorization"
	sdkHeader             = "X-PlayFabSDK"
	maxRetryInterval      = stdlibtime.Second
	initialRetryInterval  = 100 * stdlibtime.Millisecond
	retryIntervalMultiple = 2.5
	retryRandomization    = 0.5
)

type (
	client struct {
		cfg           *Config
		sessionTicket string
		entityToken   string
		mx            sync.RWMutex
	}

	envelope struct {
		ErrorDetails map[string][]string `json:"errorDetails,omitempty"`
		Status       string              `json:"status,omitempty"`
		Error        string              `json:"error,omitempty"`
		ErrorMessage string              `json:"errorMessage,omitempty"`
		Data         json.RawMessage     `json:"data,omitempty"`
		Code         int                 `json:"code,omitempty"`
		ErrorCode    ErrorCode           `json:"errorCode,omitempty"`
	}
)
