// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/device"
	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/playfab"
)

// silentLogin logs in with the id of this device, creating the account on first use.
func (a *auth) silentLogin(ctx context.Context) (*playfab.LoginResult, error) {
	if a.device.ID() == "" {
		return nil, ErrNoDeviceID
	}
	platform := a.device.Platform()
	switch platform { //nolint:exhaustive // Everything else logs in with a custom id.
	case device.PlatformAndroid:
		return a.playfab.LoginWithAndroidDeviceID(ctx, &playfab.LoginWithAndroidDeviceIDRequest{ //nolint:wrapcheck // It's wrapped already.
			AndroidDevice:         a.device.Name(),
			AndroidDeviceID:       a.device.ID(),
			OS:                    platform.String(),
			CreateAccount:         true,
			InfoRequestParameters: a.InfoRequestParams(),
		})
	case device.PlatformIOS:
		return a.playfab.LoginWithIOSDeviceID(ctx, &playfab.LoginWithIOSDeviceIDRequest{ //nolint:wrapcheck // It's wrapped already.
			DeviceID:              a.device.ID(),
			DeviceModel:           a.device.Model(),
			OS:                    platform.String(),
			CreateAccount:         true,
			InfoRequestParameters: a.InfoRequestParams(),
		})
	default:
		return a.playfab.LoginWithCustomID(ctx, &playfab.LoginWithCustomIDRequest{ //nolint:wrapcheck // It's wrapped already.
			CustomID:              a.device.ID(),
			CreateAccount:         true,
			InfoRequestParameters: a.InfoRequestParams(),
		})
	}
}

// register attaches the credentials to the silently created account of this device.
// A failed attempt can simply be retried, it reuses the same silent account.
func (a *auth) register(ctx context.Context) (*playfab.LoginResult, error) {
	res, err := a.silentLogin(ctx)
	if err != nil {
		return nil, multierror.Append(ErrSilentAuthenticationFailed, err)
	}
	creds := a.Credentials()
	username := creds.Username
	if username == "" {
		username = res.PlayFabID
	}
	if _, err = a.playfab.AddUsernamePassword(ctx, &playfab.AddUsernamePasswordRequest{
		Username: username,
		Email:    creds.Email,
		Password: creds.Password,
	}); err != nil {
		return nil, err //nolint:wrapcheck // It's wrapped already.
	}
	rememberMe, err := a.RememberMe(ctx)
	if err != nil {
		log.Error(err)
	}
	if rememberMe {
		a.remember(ctx)
	}
	if err = a.SetAuthType(ctx, AuthTypeEmailAndPassword); err != nil {
		log.Error(err)
	}

	return res, nil
}

func (a *auth) UnlinkSilentAuth(ctx context.Context) error {
	res, err := a.silentLogin(ctx)
	if err != nil {
		return a.finish(nil, multierror.Append(ErrSilentAuthenticationFailed, err))
	}
	a.setIdentity(res)
	switch a.device.Platform() { //nolint:exhaustive // Everything else logs in with a custom id.
	case device.PlatformAndroid:
		err = a.playfab.UnlinkAndroidDeviceID(ctx, &playfab.UnlinkAndroidDeviceIDRequest{AndroidDeviceID: a.device.ID()})
	case device.PlatformIOS:
		err = a.playfab.UnlinkIOSDeviceID(ctx, &playfab.UnlinkIOSDeviceIDRequest{DeviceID: a.device.ID()})
	default:
		err = a.playfab.UnlinkCustomID(ctx, &playfab.UnlinkCustomIDRequest{CustomID: a.device.ID()})
	}
	if err != nil {
		err = errors.Wrap(err, "failed to unlink device")
		if a.handlers.OnPlayFabError != nil {
			a.handlers.OnPlayFabError(err)
		}
	}

	return err
}
