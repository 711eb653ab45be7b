// SPDX-License-Identifier: ice License 1.0

package playfab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	stdlibtime "time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ice-blockchain/playfab/playfab/fixture"
)

func newTestClient(tb testing.TB, deadline stdlibtime.Duration) (*fixture.Server, Client) {
	tb.Helper()
	srv := fixture.New(tb, "")
	var cfg Config
	cfg.PlayFab.TitleID = srv.TitleID
	cfg.PlayFab.BaseURL = srv.URL + "/"
	cfg.PlayFab.RequestDeadline = deadline
	cl, err := NewFromConfig(&cfg)
	require.NoError(tb, err)

	return srv, cl
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	var cfg Config
	_, err := NewFromConfig(&cfg)
	require.ErrorIs(t, err, ErrTitleIDRequired)

	cfg.PlayFab.TitleID = " A1B2C "
	cl, err := NewFromConfig(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "A1B2C", cl.TitleID())
	assert.Equal(t, "https://a1b2c.playfabapi.com", cfg.PlayFab.BaseURL)
	assert.Equal(t, requestDeadline, cfg.PlayFab.RequestDeadline)
	assert.Empty(t, cl.SessionTicket())
}

func TestLoginWithCustomID(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)

	res, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "bogus"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, IsErrorCode(err, ErrorCodeAccountNotFound))
	assert.Empty(t, cl.SessionTicket())

	res, err = cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{
		CustomID:              "some-device",
		CreateAccount:         true,
		InfoRequestParameters: &GetPlayerCombinedInfoRequestParams{GetUserAccountInfo: true},
	})
	require.NoError(t, err)
	assert.True(t, res.NewlyCreated)
	assert.NotEmpty(t, res.PlayFabID)
	assert.Equal(t, res.SessionTicket, cl.SessionTicket())
	assert.False(t, res.LastLoginTime.IsNil())
	require.NotNil(t, res.EntityToken)
	assert.Equal(t, res.PlayFabID, res.EntityToken.Entity.ID)
	assert.NotEmpty(t, cl.EntityToken())
	assert.Equal(t, res.EntityToken.EntityToken, cl.EntityToken())
	assert.False(t, res.EntityToken.TokenExpiration.IsNil())
	require.NotNil(t, res.InfoResultPayload)
	assert.Equal(t, res.PlayFabID, res.InfoResultPayload.AccountInfo.PlayFabID)
	acc, found := srv.AccountByCustomID("some-device")
	require.True(t, found)
	assert.Equal(t, res.PlayFabID, acc.PlayFabID)

	again, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "some-device"})
	require.NoError(t, err)
	assert.False(t, again.NewlyCreated)
	assert.Equal(t, res.PlayFabID, again.PlayFabID)
	assert.NotEqual(t, res.SessionTicket, again.SessionTicket)
}

func TestLoginWithCustomID_WrongTitle(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	_, cl := newTestClient(t, 5*stdlibtime.Second)

	_, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{TitleID: "OTHER", CustomID: "x", CreateAccount: true})
	require.Error(t, err)
	var pErr *Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, ErrorCodeInvalidTitleID, pErr.ErrorCode)
	assert.Equal(t, http.StatusBadRequest, pErr.HTTPCode)
	assert.Equal(t, "InvalidTitleId", pErr.ErrorName)
	assert.Contains(t, pErr.Error(), "InvalidTitleId(1004)")
}

func TestLoginWithEmailAddressAndPlayFab(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)
	acc := srv.CreateAccount(fixture.Account{Email: "jdoe@example.com", Username: "jdoe", Password: "secret1"})

	_, err := cl.LoginWithEmailAddress(ctx, &LoginWithEmailAddressRequest{Email: "jdoe@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidEmailOrPassword))

	res, err := cl.LoginWithEmailAddress(ctx, &LoginWithEmailAddressRequest{Email: "jdoe@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, acc.PlayFabID, res.PlayFabID)

	_, err = cl.LoginWithPlayFab(ctx, &LoginWithPlayFabRequest{Username: "jdoe", Password: "nope"})
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidUsernameOrPassword))

	res, err = cl.LoginWithPlayFab(ctx, &LoginWithPlayFabRequest{Username: "jdoe", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, acc.PlayFabID, res.PlayFabID)
}

func TestDeviceAndProviderLogins(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)

	res, err := cl.LoginWithAndroidDeviceID(ctx, &LoginWithAndroidDeviceIDRequest{
		AndroidDeviceID: "android-1", AndroidDevice: "Pixel", OS: "Android", CreateAccount: true,
	})
	require.NoError(t, err)
	acc, found := srv.Account(res.PlayFabID)
	require.True(t, found)
	assert.Equal(t, "android-1", acc.AndroidDeviceID)
	require.NoError(t, cl.UnlinkAndroidDeviceID(ctx, &UnlinkAndroidDeviceIDRequest{AndroidDeviceID: "android-1"}))
	acc, _ = srv.Account(res.PlayFabID)
	assert.Empty(t, acc.AndroidDeviceID)

	res, err = cl.LoginWithIOSDeviceID(ctx, &LoginWithIOSDeviceIDRequest{DeviceID: "ios-1", DeviceModel: "iPhone", OS: "iOS", CreateAccount: true})
	require.NoError(t, err)
	require.NoError(t, cl.UnlinkIOSDeviceID(ctx, &UnlinkIOSDeviceIDRequest{DeviceID: "ios-1"}))
	err = cl.UnlinkIOSDeviceID(ctx, &UnlinkIOSDeviceIDRequest{DeviceID: "ios-1"})
	assert.True(t, IsErrorCode(err, ErrorCodeAccountNotLinked))
	assert.NotEmpty(t, res.PlayFabID)

	_, err = cl.LoginWithFacebook(ctx, &LoginWithFacebookRequest{AccessToken: "invalid-token", CreateAccount: true})
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidFacebookToken))
	fb, err := cl.LoginWithFacebook(ctx, &LoginWithFacebookRequest{AccessToken: "fb-token", CreateAccount: true})
	require.NoError(t, err)
	assert.True(t, fb.NewlyCreated)

	google, err := cl.LoginWithGoogleAccount(ctx, &LoginWithGoogleAccountRequest{ServerAuthCode: "auth-code", CreateAccount: true})
	require.NoError(t, err)
	assert.NotEqual(t, fb.PlayFabID, google.PlayFabID)
}

func TestAuthenticatedCalls(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)

	require.ErrorIs(t, cl.LinkCustomID(ctx, &LinkCustomIDRequest{CustomID: "remember"}), ErrNotLoggedIn)
	_, err := cl.GetAccountInfo(ctx, new(GetAccountInfoRequest))
	require.ErrorIs(t, err, ErrNotLoggedIn)

	res, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "device", CreateAccount: true})
	require.NoError(t, err)

	added, err := cl.AddUsernamePassword(ctx, &AddUsernamePasswordRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "123"})
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidPassword))
	assert.Nil(t, added)
	added, err = cl.AddUsernamePassword(ctx, &AddUsernamePasswordRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", added.Username)

	require.NoError(t, cl.LinkCustomID(ctx, &LinkCustomIDRequest{CustomID: "remember", ForceLink: true}))
	acc, found := srv.AccountByCustomID("remember")
	require.True(t, found)
	assert.Equal(t, res.PlayFabID, acc.PlayFabID)
	require.NoError(t, cl.UnlinkCustomID(ctx, &UnlinkCustomIDRequest{CustomID: "remember"}))
	_, found = srv.AccountByCustomID("remember")
	assert.False(t, found)

	updated, err := cl.UpdateUserTitleDisplayName(ctx, &UpdateUserTitleDisplayNameRequest{DisplayName: "x"})
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrorCodeInvalidParams))
	assert.Nil(t, updated)
	updated, err = cl.UpdateUserTitleDisplayName(ctx, &UpdateUserTitleDisplayNameRequest{DisplayName: "John"})
	require.NoError(t, err)
	assert.Equal(t, "John", updated.DisplayName)

	info, err := cl.GetAccountInfo(ctx, &GetAccountInfoRequest{PlayFabID: res.PlayFabID})
	require.NoError(t, err)
	assert.Equal(t, "John", info.AccountInfo.TitleInfo.DisplayName)
	assert.Equal(t, "jdoe@example.com", info.AccountInfo.PrivateInfo.Email)
	assert.False(t, info.AccountInfo.Created.IsNil())

	cl.ForgetAllCredentials()
	assert.Empty(t, cl.SessionTicket())
	assert.Empty(t, cl.EntityToken())
	_, err = cl.GetAccountInfo(ctx, new(GetAccountInfoRequest))
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLinkCustomID_AlreadyClaimed(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)
	owner := srv.CreateAccount(fixture.Account{CustomID: "claimed"})

	_, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "mine", CreateAccount: true})
	require.NoError(t, err)
	err = cl.LinkCustomID(ctx, &LinkCustomIDRequest{CustomID: "claimed"})
	assert.True(t, IsErrorCode(err, ErrorCodeLinkedAccountAlreadyClaimed))
	acc, _ := srv.AccountByCustomID("claimed")
	assert.Equal(t, owner.PlayFabID, acc.PlayFabID)
}

func TestRetries(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)
	srv.FailNext("LoginWithCustomID", http.StatusServiceUnavailable, http.StatusTooManyRequests)

	res, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "retried", CreateAccount: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionTicket)
	assert.Equal(t, 3, srv.Calls("LoginWithCustomID"))

	srv.FailNext("LoginWithPlayFab", http.StatusBadRequest)
	_, err = cl.LoginWithPlayFab(ctx, &LoginWithPlayFabRequest{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ErrorCodeUnknown))
	assert.Equal(t, 1, srv.Calls("LoginWithPlayFab"))
}

func TestRetries_DeadlineExceeded(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv, cl := newTestClient(t, 300*stdlibtime.Millisecond)
	failures := make([]int, 100)
	for ix := range failures {
		failures[ix] = http.StatusBadGateway
	}
	srv.FailNext("LoginWithCustomID", failures...)

	_, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "never", CreateAccount: true})
	require.Error(t, err)
	var pErr *Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, http.StatusBadGateway, pErr.HTTPCode)
	assert.Greater(t, srv.Calls("LoginWithCustomID"), 1)
	assert.Empty(t, cl.SessionTicket())
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	srv, cl := newTestClient(t, 5*stdlibtime.Second)

	_, err := cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "x", CreateAccount: true})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, srv.Calls("LoginWithCustomID"))
}

func TestIsErrorCode(t *testing.T) {
	t.Parallel()
	err := errors.Wrap(&Error{ErrorCode: ErrorCodeAccountBanned}, "wrapped")
	assert.True(t, IsErrorCode(err, ErrorCodeAccountNotFound, ErrorCodeAccountBanned))
	assert.False(t, IsErrorCode(err, ErrorCodeAccountNotFound))
	assert.False(t, IsErrorCode(errors.New("oops"), ErrorCodeUnknown))
	assert.False(t, IsErrorCode(nil, ErrorCodeUnknown))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()
	err := &Error{
		ErrorDetails: map[string][]string{"Username": {"taken"}, "Password": {"too short", "no digits"}, "Email": {"invalid"}},
		ErrorName:    "InvalidParams",
		ErrorMessage: "Invalid input parameters",
		HTTPCode:     http.StatusBadRequest,
		ErrorCode:    ErrorCodeInvalidParams,
	}
	assert.Equal(t, "playfab InvalidParams(1000), http 400: Invalid input parameters; Email: invalid; Password: too short, no digits; Username: taken", err.Error())
}

func TestLogin_DecodesTimestamps(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 30*stdlibtime.Second)
	defer cancel()
	srv := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"code":200,"status":"OK","data":{
			"PlayFabId":"P1",
			"SessionTicket":"T1",
			"LastLoginTime":"2024-01-02T03:04:05.678Z",
			"EntityToken":{"EntityToken":"E1","TokenExpiration":"2024-01-03T03:04:05.678Z","Entity":{"Id":"P1","Type":"title_player_account"}},
			"InfoResultPayload":{"AccountInfo":{
				"PlayFabId":"P1",
				"Created":"2023-12-24T10:00:00Z",
				"TitleInfo":{"DisplayName":"Jane","Created":"2023-12-24T10:00:00Z","FirstLogin":"2023-12-24T10:00:01.5","LastLogin":"2024-01-02T03:04:05.678Z"}
			}}
		}}`))
	}))
	defer srv.Close()
	var cfg Config
	cfg.PlayFab.TitleID = "A1B2C"
	cfg.PlayFab.BaseURL = srv.URL
	cl, err := NewFromConfig(&cfg)
	require.NoError(t, err)

	var res *LoginResult
	require.NotPanics(t, func() {
		res, err = cl.LoginWithCustomID(ctx, &LoginWithCustomIDRequest{CustomID: "custom-1"})
	})
	require.NoError(t, err)
	lastLogin := stdlibtime.Date(2024, 1, 2, 3, 4, 5, 678_000_000, stdlibtime.UTC)
	assert.True(t, lastLogin.Equal(*res.LastLoginTime.Time))
	assert.True(t, lastLogin.Add(24*stdlibtime.Hour).Equal(*res.EntityToken.TokenExpiration.Time))
	assert.Equal(t, "E1", cl.EntityToken())
	titleInfo := res.InfoResultPayload.AccountInfo.TitleInfo
	assert.Equal(t, "Jane", titleInfo.DisplayName)
	assert.True(t, stdlibtime.Date(2023, 12, 24, 10, 0, 1, 500_000_000, stdlibtime.UTC).Equal(*titleInfo.FirstLogin.Time))
	assert.True(t, lastLogin.Equal(*titleInfo.LastLogin.Time))
	assert.True(t, titleInfo.Created.Equal(*res.InfoResultPayload.AccountInfo.Created.Time))
}
