// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"net/http/httptest"
	"sync"
	stdlibtime "time"
)

// Public API.

const (
	DefaultTitleID = "A1B2C"
)

type (
	// Account is a player account as the fake PlayFab title knows it.
	Account struct {
		Created         stdlibtime.Time
		PlayFabID       string
		Email           string
		Username        string
		Password        string
		DisplayName     string
		CustomID        string
		AndroidDeviceID string
		IOSDeviceID     string
		FacebookID      string
		GoogleID        string
	}

	// Server is an in-memory PlayFab title served over httptest.
	Server struct {
		srv      *httptest.Server
		accounts map[string]*Account
		sessions map[string]string
		calls    map[string]int
		failures map[string][]int
		URL      string
		TitleID  string
		mx       sync.Mutex
	}
)

// Private API.

const (
	authorizationHeader = "X-Authorization"
	minPasswordLength   = 6
	minDisplayNameLen   = 3
	maxDisplayNameLen   = 25
	entityTokenTTL      = 24 * stdlibtime.Hour
)

const (
	codeUnknown                     = 1
	codeInvalidParams               = 1000
	codeAccountNotFound             = 1001
	codeInvalidUsernameOrPassword   = 1003
	codeInvalidTitleID              = 1004
	codeEmailAddressNotAvailable    = 1006
	codeInvalidPassword             = 1008
	codeUsernameNotAvailable        = 1009
	codeAccountAlreadyLinked        = 1011
	codeLinkedAccountAlreadyClaimed = 1012
	codeInvalidFacebookToken        = 1013
	codeAccountNotLinked            = 1014
	codeNotAuthenticated            = 1074
	codeInvalidEmailOrPassword      = 1142
)

type (
	infoRequestParameters struct {
		GetUserAccountInfo bool `json:"GetUserAccountInfo,omitempty"`
	}

	request struct {
		InfoRequestParameters *infoRequestParameters `json:"InfoRequestParameters,omitempty"`
		TitleID               string                 `json:"TitleId,omitempty"`
		CustomID              string                 `json:"CustomId,omitempty"`
		Email                 string                 `json:"Email,omitempty"`
		Username              string                 `json:"Username,omitempty"`
		Password              string                 `json:"Password,omitempty"`
		AndroidDeviceID       string                 `json:"AndroidDeviceId,omitempty"`
		DeviceID              string                 `json:"DeviceId,omitempty"`
		AccessToken           string                 `json:"AccessToken,omitempty"`
		ServerAuthCode        string                 `json:"ServerAuthCode,omitempty"`
		PlayFabID             string                 `json:"PlayFabId,omitempty"`
		DisplayName           string                 `json:"DisplayName,omitempty"`
		CreateAccount         bool                   `json:"CreateAccount,omitempty"`
		ForceLink             bool                   `json:"ForceLink,omitempty"`
	}

	apiError struct {
		Status       string `json:"status"`
		Error        string `json:"error"`
		ErrorMessage string `json:"errorMessage"`
		Code         int    `json:"code"`
		ErrorCode    int    `json:"errorCode"`
	}

	apiSuccess struct {
		Data   any    `json:"data"`
		Status string `json:"status"`
		Code   int    `json:"code"`
	}
)
