// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/playfab"
)

func (a *auth) facebookLogin(ctx context.Context) (*playfab.LoginResult, error) {
	if a.facebook == nil {
		return nil, ErrNoFacebookClient
	}
	user := a.facebook.User()
	if !a.facebook.LoggedIn() || a.Credentials().AuthTicket == "" {
		var err error
		if user, err = a.facebook.Login(ctx); err != nil {
			return nil, errors.Wrap(err, "facebook login failed")
		}
	}
	if user == nil || user.Token == "" {
		return nil, errors.New("facebook returned no access token")
	}
	a.loggingIn()
	a.setAuthTicket(user.Token)

	return a.playfab.LoginWithFacebook(ctx, &playfab.LoginWithFacebookRequest{ //nolint:wrapcheck // It's wrapped already.
		AccessToken:           user.Token,
		CreateAccount:         true,
		InfoRequestParameters: a.InfoRequestParams(),
	})
}

func (a *auth) googleLogin(ctx context.Context) (*playfab.LoginResult, error) {
	serverAuthCode := a.Credentials().AuthTicket
	if serverAuthCode == "" {
		return nil, a.requireCredentials()
	}

	return a.playfab.LoginWithGoogleAccount(ctx, &playfab.LoginWithGoogleAccountRequest{ //nolint:wrapcheck // It's wrapped already.
		ServerAuthCode:        serverAuthCode,
		CreateAccount:         true,
		InfoRequestParameters: a.InfoRequestParams(),
	})
}
