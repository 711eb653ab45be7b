// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"context"
	"slices"
	"strings"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/playfab"
	"github.com/ice-blockchain/playfab/storage"
)

func New(deps *Dependencies, handlers Handlers) Client { //nolint:gocritic // Handlers are set once.
	if deps == nil || deps.PlayFab == nil || deps.Store == nil || deps.Device == nil {
		log.Panic(errors.New("playfab client, store and device are required"))
	}

	return &auth{
		playfab:  deps.PlayFab,
		store:    deps.Store,
		group:    deps.Store.Group(StorageGroup),
		device:   deps.Device,
		facebook: deps.Facebook,
		handlers: handlers,
	}
}

func (a *auth) Close() error {
	return errors.Wrap(a.store.Close(), "failed to close storage")
}

func (a *auth) SetCredentials(credentials Credentials) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.credentials = credentials
}

func (a *auth) Credentials() Credentials {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.credentials
}

func (a *auth) setAuthTicket(ticket string) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.credentials.AuthTicket = ticket
}

func (a *auth) SetForceLink(forceLink bool) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.forceLink = forceLink
}

func (a *auth) ForceLink() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.forceLink
}

func (a *auth) setDefaultInfoRequestParams(params *playfab.GetPlayerCombinedInfoRequestParams) {
	a.mx.Lock()
	a.defaultInfoParams = params
	a.mx.Unlock()
	a.SetInfoRequestParams(nil)
}

func (a *auth) SetInfoRequestParams(params *playfab.GetPlayerCombinedInfoRequestParams) {
	a.mx.Lock()
	defer a.mx.Unlock()
	if params == nil {
		a.infoParams = cloneInfoParams(a.defaultInfoParams)

		return
	}
	merged := cloneInfoParams(params)
	if a.defaultInfoParams != nil {
		if err := mergo.Merge(merged, cloneInfoParams(a.defaultInfoParams)); err != nil {
			log.Error(errors.Wrap(err, "failed to merge default info request params"))
		}
	}
	a.infoParams = merged
}

func (a *auth) InfoRequestParams() *playfab.GetPlayerCombinedInfoRequestParams {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return cloneInfoParams(a.infoParams)
}

func cloneInfoParams(params *playfab.GetPlayerCombinedInfoRequestParams) *playfab.GetPlayerCombinedInfoRequestParams {
	if params == nil {
		return nil
	}
	cp := *params
	cp.PlayerStatisticNames = slices.Clone(params.PlayerStatisticNames)
	cp.TitleDataKeys = slices.Clone(params.TitleDataKeys)
	cp.UserDataKeys = slices.Clone(params.UserDataKeys)
	cp.UserReadOnlyDataKeys = slices.Clone(params.UserReadOnlyDataKeys)

	return &cp
}

func (a *auth) PlayFabID() string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.playFabID
}

func (a *auth) SessionTicket() string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.sessionTicket
}

func (a *auth) IsLoggedIn() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.playFabID != "" && a.sessionTicket != ""
}

func (a *auth) setIdentity(res *playfab.LoginResult) {
	a.mx.Lock()
	defer a.mx.Unlock()
	if res == nil || res.PlayFabID == "" || res.SessionTicket == "" {
		a.playFabID, a.sessionTicket = "", ""

		return
	}
	a.playFabID, a.sessionTicket = res.PlayFabID, res.SessionTicket
}

func (a *auth) Logout() {
	a.setIdentity(nil)
	a.playfab.ForgetAllCredentials()
}

func (a *auth) RememberMe(ctx context.Context) (bool, error) {
	return storage.GetBool(ctx, a.group, loginRememberKey) //nolint:wrapcheck // It's wrapped already.
}

func (a *auth) SetRememberMe(ctx context.Context, rememberMe bool) error {
	if !rememberMe {
		return a.ClearRememberMe(ctx)
	}

	return storage.PutBool(ctx, a.group, loginRememberKey, true) //nolint:wrapcheck // It's wrapped already.
}

func (a *auth) ClearRememberMe(ctx context.Context) error {
	return errors.Wrap(a.group.Delete(ctx, loginRememberKey, rememberMeIDKey), "failed to clear remember me")
}

func (a *auth) rememberMeID(ctx context.Context) (string, error) {
	return storage.GetString(ctx, a.group, rememberMeIDKey) //nolint:wrapcheck // It's wrapped already.
}

// setRememberMeID generates a fresh id if id is empty.
func (a *auth) setRememberMeID(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	return id, errors.Wrap(a.group.Put(ctx, rememberMeIDKey, id), "failed to store remember me id")
}

func (a *auth) AuthType(ctx context.Context) (AuthType, error) {
	val, err := storage.GetString(ctx, a.group, authTypeKey)
	if err != nil || val == "" {
		return AuthTypeNone, err //nolint:wrapcheck // It's wrapped already.
	}
	var authType AuthType
	if err = authType.UnmarshalText([]byte(val)); err != nil {
		log.Warn("ignoring stored auth type", "authType", val)

		return AuthTypeNone, nil
	}

	return authType, nil
}

func (a *auth) SetAuthType(ctx context.Context, authType AuthType) error {
	text, err := authType.MarshalText()
	if err != nil {
		return err
	}

	return errors.Wrap(a.group.Put(ctx, authTypeKey, string(text)), "failed to store auth type")
}

func (a *auth) AuthenticateWith(ctx context.Context, authType AuthType) error {
	if err := a.SetAuthType(ctx, authType); err != nil {
		return a.finish(nil, err)
	}

	return a.Authenticate(ctx)
}

func (a *auth) Authenticate(ctx context.Context) error {
	authType, err := a.AuthType(ctx)
	if err != nil {
		return a.finish(nil, err)
	}
	var res *playfab.LoginResult
	switch authType { //nolint:exhaustive // The rest is handled by default.
	case AuthTypeSilent:
		a.loggingIn()
		res, err = a.silentLogin(ctx)
	case AuthTypeUsernameAndPassword:
		a.loggingIn()
		res, err = a.usernamePasswordLogin(ctx)
	case AuthTypeEmailAndPassword:
		a.loggingIn()
		res, err = a.emailPasswordLogin(ctx)
	case AuthTypeRegisterAccount:
		a.loggingIn()
		res, err = a.register(ctx)
	case AuthTypeFacebook:
		res, err = a.facebookLogin(ctx)
	case AuthTypeGoogle:
		a.loggingIn()
		res, err = a.googleLogin(ctx)
	default:
		res, err = a.rememberedLogin(ctx)
	}

	return a.finish(res, err)
}

func (a *auth) rememberedLogin(ctx context.Context) (*playfab.LoginResult, error) {
	rememberMe, err := a.RememberMe(ctx)
	if err != nil {
		return nil, err
	}
	if !rememberMe {
		return nil, a.requireCredentials()
	}
	a.loggingIn()
	if err = a.SetAuthType(ctx, AuthTypeEmailAndPassword); err != nil {
		return nil, err
	}

	return a.emailPasswordLogin(ctx)
}

func (a *auth) finish(res *playfab.LoginResult, err error) error {
	if errors.Is(err, ErrCredentialsRequired) {
		return err
	}
	if err != nil {
		a.setIdentity(nil)
		if a.handlers.OnPlayFabError != nil {
			a.handlers.OnPlayFabError(err)
		}

		return err
	}
	a.setIdentity(res)
	if a.handlers.OnLoginSuccess != nil {
		a.handlers.OnLoginSuccess(res)
	}

	return nil
}

func (a *auth) requireCredentials() error {
	if a.handlers.OnDisplayAuthentication != nil {
		a.handlers.OnDisplayAuthentication()
	}

	return ErrCredentialsRequired
}

func (a *auth) loggingIn() {
	if a.handlers.OnLoggingIn != nil {
		a.handlers.OnLoggingIn()
	}
}

func (t AuthType) String() string {
	if name, found := authTypeNames[t]; found {
		return name
	}

	return "Unknown"
}

func (t AuthType) MarshalText() ([]byte, error) {
	name, found := authTypeNames[t]
	if !found {
		return nil, errors.Wrapf(ErrUnknownAuthType, "%d", uint8(t))
	}

	return []byte(name), nil
}

func (t *AuthType) UnmarshalText(text []byte) error {
	for authType, name := range authTypeNames {
		if strings.EqualFold(name, string(text)) {
			*t = authType

			return nil
		}
	}

	return errors.Wrapf(ErrUnknownAuthType, "%s", text)
}
