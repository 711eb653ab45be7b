// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/ice-blockchain/playfab/playfab"
)

type (
	mockPlayFab struct {
		mock.Mock
	}

	fakeFacebook struct {
		user       *FacebookUser
		loginErr   error
		loginCalls int
		loggedIn   bool
		mx         sync.Mutex
	}

	recorder struct {
		lastResult            *playfab.LoginResult
		lastErr               error
		displayAuthentication int
		loggingIn             int
		loginSuccess          int
		playFabError          int
		mx                    sync.Mutex
	}
)

func loginResult(args mock.Arguments) (*playfab.LoginResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*playfab.LoginResult), args.Error(1) //nolint:forcetypeassert // We know it.
}

func (*mockPlayFab) TitleID() string {
	return "A1B2C"
}

func (*mockPlayFab) SessionTicket() string {
	return ""
}

func (*mockPlayFab) EntityToken() string {
	return ""
}

func (m *mockPlayFab) ForgetAllCredentials() {
	m.Called()
}

func (m *mockPlayFab) LoginWithCustomID(ctx context.Context, arg *playfab.LoginWithCustomIDRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LoginWithEmailAddress(ctx context.Context, arg *playfab.LoginWithEmailAddressRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LoginWithPlayFab(ctx context.Context, arg *playfab.LoginWithPlayFabRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LoginWithAndroidDeviceID(ctx context.Context, arg *playfab.LoginWithAndroidDeviceIDRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LoginWithIOSDeviceID(ctx context.Context, arg *playfab.LoginWithIOSDeviceIDRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LoginWithFacebook(ctx context.Context, arg *playfab.LoginWithFacebookRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LoginWithGoogleAccount(ctx context.Context, arg *playfab.LoginWithGoogleAccountRequest) (*playfab.LoginResult, error) {
	return loginResult(m.Called(ctx, arg))
}

func (m *mockPlayFab) LinkCustomID(ctx context.Context, arg *playfab.LinkCustomIDRequest) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *mockPlayFab) UnlinkCustomID(ctx context.Context, arg *playfab.UnlinkCustomIDRequest) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *mockPlayFab) UnlinkAndroidDeviceID(ctx context.Context, arg *playfab.UnlinkAndroidDeviceIDRequest) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *mockPlayFab) UnlinkIOSDeviceID(ctx context.Context, arg *playfab.UnlinkIOSDeviceIDRequest) error {
	return m.Called(ctx, arg).Error(0)
}

func (m *mockPlayFab) AddUsernamePassword(
	ctx context.Context, arg *playfab.AddUsernamePasswordRequest,
) (*playfab.AddUsernamePasswordResult, error) {
	args := m.Called(ctx, arg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*playfab.AddUsernamePasswordResult), args.Error(1) //nolint:forcetypeassert // We know it.
}

func (m *mockPlayFab) GetAccountInfo(ctx context.Context, arg *playfab.GetAccountInfoRequest) (*playfab.GetAccountInfoResult, error) {
	args := m.Called(ctx, arg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*playfab.GetAccountInfoResult), args.Error(1) //nolint:forcetypeassert // We know it.
}

func (m *mockPlayFab) UpdateUserTitleDisplayName(
	ctx context.Context, arg *playfab.UpdateUserTitleDisplayNameRequest,
) (*playfab.UpdateUserTitleDisplayNameResult, error) {
	args := m.Called(ctx, arg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*playfab.UpdateUserTitleDisplayNameResult), args.Error(1) //nolint:forcetypeassert // We know it.
}

func (f *fakeFacebook) LoggedIn() bool {
	f.mx.Lock()
	defer f.mx.Unlock()

	return f.loggedIn
}

func (f *fakeFacebook) User() *FacebookUser {
	f.mx.Lock()
	defer f.mx.Unlock()

	return f.user
}

func (f *fakeFacebook) Login(context.Context) (*FacebookUser, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true

	return f.user, nil
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnDisplayAuthentication: func() {
			r.mx.Lock()
			defer r.mx.Unlock()
			r.displayAuthentication++
		},
		OnLoggingIn: func() {
			r.mx.Lock()
			defer r.mx.Unlock()
			r.loggingIn++
		},
		OnLoginSuccess: func(res *playfab.LoginResult) {
			r.mx.Lock()
			defer r.mx.Unlock()
			r.loginSuccess++
			r.lastResult = res
		},
		OnPlayFabError: func(err error) {
			r.mx.Lock()
			defer r.mx.Unlock()
			r.playFabError++
			r.lastErr = err
		},
	}
}

func (r *recorder) counts() (displayAuthentication, loggingIn, loginSuccess, playFabError int) {
	r.mx.Lock()
	defer r.mx.Unlock()

	return r.displayAuthentication, r.loggingIn, r.loginSuccess, r.playFabError
}
