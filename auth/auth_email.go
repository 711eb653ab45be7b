// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/playfab"
)

func (a *auth) emailPasswordLogin(ctx context.Context) (*playfab.LoginResult, error) {
	creds := a.Credentials()

	return a.passwordLogin(ctx, creds.Email, creds.Password, AuthTypeEmailAndPassword,
		func(ctx context.Context) (*playfab.LoginResult, error) {
			return a.playfab.LoginWithEmailAddress(ctx, &playfab.LoginWithEmailAddressRequest{ //nolint:wrapcheck // It's wrapped already.
				Email:                 creds.Email,
				Password:              creds.Password,
				InfoRequestParameters: a.InfoRequestParams(),
			})
		})
}

func (a *auth) usernamePasswordLogin(ctx context.Context) (*playfab.LoginResult, error) {
	creds := a.Credentials()

	return a.passwordLogin(ctx, creds.Username, creds.Password, AuthTypeUsernameAndPassword,
		func(ctx context.Context) (*playfab.LoginResult, error) {
			return a.playfab.LoginWithPlayFab(ctx, &playfab.LoginWithPlayFabRequest{ //nolint:wrapcheck // It's wrapped already.
				Username:              creds.Username,
				Password:              creds.Password,
				InfoRequestParameters: a.InfoRequestParams(),
			})
		})
}

// passwordLogin prefers the remembered custom id, then falls back to the credentials, prompting for them if missing.
func (a *auth) passwordLogin(
	ctx context.Context, login, password string, authType AuthType, withCredentials func(context.Context) (*playfab.LoginResult, error),
) (*playfab.LoginResult, error) {
	rememberMe, err := a.RememberMe(ctx)
	if err != nil {
		return nil, err
	}
	if rememberMe {
		id, iErr := a.rememberMeID(ctx)
		if iErr != nil {
			return nil, iErr
		}
		if id != "" {
			return a.rememberedIDLogin(ctx, id)
		}
	}
	if login == "" || password == "" {
		return nil, a.requireCredentials()
	}
	res, err := withCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if rememberMe {
		if err = a.SetAuthType(ctx, authType); err != nil {
			log.Error(err)
		}
		a.remember(ctx)
	}

	return res, nil
}

func (a *auth) rememberedIDLogin(ctx context.Context, id string) (*playfab.LoginResult, error) {
	res, err := a.playfab.LoginWithCustomID(ctx, &playfab.LoginWithCustomIDRequest{
		CustomID:              id,
		InfoRequestParameters: a.InfoRequestParams(),
	})
	if playfab.IsErrorCode(err, playfab.ErrorCodeAccountNotFound) {
		if dErr := a.group.Delete(ctx, rememberMeIDKey); dErr != nil {
			log.Error(errors.Wrap(dErr, "failed to drop stale remember me id"))
		}
	}

	return res, err //nolint:wrapcheck // It's wrapped already.
}

// remember links a fresh remember me id to the account that's logged in and stores it once the link holds.
// A failed link leaves any previously stored id untouched.
func (a *auth) remember(ctx context.Context) {
	id := uuid.NewString()
	if err := a.playfab.LinkCustomID(ctx, &playfab.LinkCustomIDRequest{CustomID: id, ForceLink: a.ForceLink()}); err != nil {
		log.Error(errors.Wrap(err, "failed to link remember me id"))

		return
	}
	if _, err := a.setRememberMeID(ctx, id); err != nil {
		log.Error(err)
	}
}
