// SPDX-License-Identifier: ice License 1.0

package playfab

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	stdlibtime "time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	appcfg "github.com/ice-blockchain/playfab/config"
	"github.com/ice-blockchain/playfab/log"
)

func init() { //nolint:gochecknoinits // It's the only way to tweak the client.
	req.DefaultClient().SetJsonMarshal(func(val any) ([]byte, error) {
		return json.MarshalContext(context.Background(), val) //nolint:wrapcheck // It's a codec.
	})
	req.DefaultClient().SetJsonUnmarshal(func(data []byte, val any) error {
		return json.UnmarshalContext(context.Background(), data, val) //nolint:wrapcheck // It's a codec.
	})
	req.DefaultClient().GetClient().Timeout = requestDeadline
}

func New(applicationYAMLKey string) Client {
	var cfg Config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.PlayFab.TitleID = appcfg.Env(applicationYAMLKey, "PLAYFAB_TITLE_ID", cfg.PlayFab.TitleID)
	cfg.PlayFab.BaseURL = appcfg.Env(applicationYAMLKey, "PLAYFAB_BASE_URL", cfg.PlayFab.BaseURL)
	cl, err := NewFromConfig(&cfg)
	log.Panic(errors.Wrapf(err, "[%v] failed to build playfab client", applicationYAMLKey)) //nolint:revive // That's intended.

	return cl
}

func NewFromConfig(cfg *Config) (Client, error) {
	cfg.PlayFab.TitleID = strings.TrimSpace(cfg.PlayFab.TitleID)
	if cfg.PlayFab.TitleID == "" {
		return nil, ErrTitleIDRequired
	}
	if strings.TrimSpace(cfg.PlayFab.BaseURL) == "" {
		cfg.PlayFab.BaseURL = fmt.Sprintf(DefaultBaseURLFormat, strings.ToLower(cfg.PlayFab.TitleID))
	}
	cfg.PlayFab.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.PlayFab.BaseURL), "/")
	if cfg.PlayFab.RequestDeadline <= 0 {
		cfg.PlayFab.RequestDeadline = requestDeadline
	}

	return &client{cfg: cfg}, nil
}

func (c *client) TitleID() string {
	return c.cfg.PlayFab.TitleID
}

func (c *client) SessionTicket() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.sessionTicket
}

func (c *client) EntityToken() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.entityToken
}

func (c *client) ForgetAllCredentials() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.sessionTicket = ""
	c.entityToken = ""
}

func (c *client) LoginWithCustomID(ctx context.Context, arg *LoginWithCustomIDRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithCustomID", &body)
}

func (c *client) LoginWithEmailAddress(ctx context.Context, arg *LoginWithEmailAddressRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithEmailAddress", &body)
}

func (c *client) LoginWithPlayFab(ctx context.Context, arg *LoginWithPlayFabRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithPlayFab", &body)
}

func (c *client) LoginWithAndroidDeviceID(ctx context.Context, arg *LoginWithAndroidDeviceIDRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithAndroidDeviceID", &body)
}

func (c *client) LoginWithIOSDeviceID(ctx context.Context, arg *LoginWithIOSDeviceIDRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithIOSDeviceID", &body)
}

func (c *client) LoginWithFacebook(ctx context.Context, arg *LoginWithFacebookRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithFacebook", &body)
}

func (c *client) LoginWithGoogleAccount(ctx context.Context, arg *LoginWithGoogleAccountRequest) (*LoginResult, error) {
	body := *arg
	body.TitleID = c.titleID(body.TitleID)

	return c.login(ctx, "/Client/LoginWithGoogleAccount", &body)
}

func (c *client) LinkCustomID(ctx context.Context, arg *LinkCustomIDRequest) error {
	return c.post(ctx, "/Client/LinkCustomID", true, arg, nil)
}

func (c *client) UnlinkCustomID(ctx context.Context, arg *UnlinkCustomIDRequest) error {
	return c.post(ctx, "/Client/UnlinkCustomID", true, arg, nil)
}

func (c *client) UnlinkAndroidDeviceID(ctx context.Context, arg *UnlinkAndroidDeviceIDRequest) error {
	return c.post(ctx, "/Client/UnlinkAndroidDeviceID", true, arg, nil)
}

func (c *client) UnlinkIOSDeviceID(ctx context.Context, arg *UnlinkIOSDeviceIDRequest) error {
	return c.post(ctx, "/Client/UnlinkIOSDeviceID", true, arg, nil)
}

func (c *client) AddUsernamePassword(ctx context.Context, arg *AddUsernamePasswordRequest) (*AddUsernamePasswordResult, error) {
	res := new(AddUsernamePasswordResult)
	if err := c.post(ctx, "/Client/AddUsernamePassword", true, arg, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *client) GetAccountInfo(ctx context.Context, arg *GetAccountInfoRequest) (*GetAccountInfoResult, error) {
	res := new(GetAccountInfoResult)
	if err := c.post(ctx, "/Client/GetAccountInfo", true, arg, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *client) UpdateUserTitleDisplayName(
	ctx context.Context, arg *UpdateUserTitleDisplayNameRequest,
) (*UpdateUserTitleDisplayNameResult, error) {
	res := new(UpdateUserTitleDisplayNameResult)
	if err := c.post(ctx, "/Client/UpdateUserTitleDisplayName", true, arg, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *client) titleID(requested string) string {
	if requested != "" {
		return requested
	}

	return c.cfg.PlayFab.TitleID
}

func (c *client) login(ctx context.Context, path string, body any) (*LoginResult, error) {
	res := new(LoginResult)
	if err := c.post(ctx, path, false, body, res); err != nil {
		return nil, err
	}
	if res.PlayFabID == "" || res.SessionTicket == "" {
		return nil, errors.Wrapf(ErrEmptyAPIResponse, "%v returned no session", path)
	}
	c.mx.Lock()
	c.sessionTicket = res.SessionTicket
	c.entityToken = ""
	if res.EntityToken != nil {
		c.entityToken = res.EntityToken.EntityToken
	}
	c.mx.Unlock()

	return res, nil
}

func (c *client) post(ctx context.Context, path string, authenticated bool, body, result any) error {
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "context failed")
	}
	var sessionTicket string
	if authenticated {
		if sessionTicket = c.SessionTicket(); sessionTicket == "" {
			return errors.Wrapf(ErrNotLoggedIn, "can't call %v", path)
		}
	}
	url := c.cfg.PlayFab.BaseURL + path

	return errors.Wrapf(c.retry(ctx, func() error {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		return c.call(ctx, url, sessionTicket, body, result)
	}), "playfab call `%v` failed", path)
}

func (c *client) call(ctx context.Context, url, sessionTicket string, body, result any) error { //nolint:funlen // .
	request := c.buildHTTPRequest(ctx)
	if sessionTicket != "" {
		request = request.SetHeader(authorizationHeader, sessionTicket)
	}
	payload, err := json.MarshalContext(ctx, body)
	if err != nil {
		return backoff.Permanent(errors.Wrapf(err, "failed to encode request to `%v`", url))
	}
	resp, err := request.SetBodyBytes(payload).Post(url)
	if err != nil {
		return errors.Wrapf(err, "post `%v` failed", url)
	}
	respBody, err := resp.ToBytes()
	if err != nil {
		return errors.Wrapf(err, "unable to read response body of `%v`", url)
	}
	statusCode := resp.GetStatusCode()
	retryable := statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
	var env envelope
	if err = json.UnmarshalContext(ctx, respBody, &env); err != nil {
		pErr := &Error{HTTPCode: statusCode, ErrorCode: ErrorCodeJSONParseError, ErrorName: "JsonParseError", ErrorMessage: err.Error()}
		if retryable {
			return errors.Wrapf(pErr, "please retry, response: %s", respBody)
		}

		return backoff.Permanent(pErr) //nolint:wrapcheck // It's wrapped outside.
	}
	if retryable {
		return errors.Wrap(env.toError(statusCode), "please retry")
	}
	if statusCode >= http.StatusBadRequest || env.ErrorCode != ErrorCodeSuccess || env.Error != "" {
		return backoff.Permanent(env.toError(statusCode)) //nolint:wrapcheck // It's wrapped outside.
	}
	if result == nil || len(env.Data) == 0 {
		return nil
	}
	if err = json.UnmarshalContext(ctx, env.Data, result); err != nil {
		return backoff.Permanent(errors.Wrapf(err, "failed to decode data of `%v`: %s", url, env.Data))
	}

	return nil
}

func (c *client) buildHTTPRequest(ctx context.Context) *req.Request {
	return req.
		SetContext(ctx).
		SetContentType("application/json").
		SetHeader("Accept", "application/json").
		SetHeader(sdkHeader, SDKVersion)
}

func (c *client) retry(ctx context.Context, op func() error) error {
	//nolint:wrapcheck // No need, its just a proxy.
	return backoff.RetryNotify(
		op,
		backoff.WithContext(&backoff.ExponentialBackOff{
			InitialInterval:     initialRetryInterval,
			RandomizationFactor: retryRandomization,
			Multiplier:          retryIntervalMultiple,
			MaxInterval:         maxRetryInterval,
			MaxElapsedTime:      c.cfg.PlayFab.RequestDeadline,
			Stop:                backoff.Stop,
			Clock:               backoff.SystemClock,
		}, ctx),
		func(e error, next stdlibtime.Duration) {
			log.Error(errors.Wrapf(e, "playfab call failed. retrying in %v... ", next))
		})
}

func (e *envelope) toError(statusCode int) *Error {
	pErr := &Error{
		ErrorDetails: e.ErrorDetails,
		HTTPStatus:   e.Status,
		ErrorName:    e.Error,
		ErrorMessage: e.ErrorMessage,
		HTTPCode:     e.Code,
		ErrorCode:    e.ErrorCode,
	}
	if pErr.HTTPCode == 0 {
		pErr.HTTPCode = statusCode
	}
	if pErr.ErrorCode == ErrorCodeSuccess {
		pErr.ErrorCode = ErrorCodeUnknown
	}
	if pErr.HTTPStatus == "" {
		pErr.HTTPStatus = http.StatusText(pErr.HTTPCode)
	}

	return pErr
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("playfab %v(%v), http %v: %v", e.ErrorName, int(e.ErrorCode), e.HTTPCode, e.ErrorMessage)
	for _, field := range slices.Sorted(maps.Keys(e.ErrorDetails)) {
		msg += fmt.Sprintf("; %v: %v", field, strings.Join(e.ErrorDetails[field], ", "))
	}

	return msg
}

// IsErrorCode tells whether err is a PlayFab API error with any of the codes.
func IsErrorCode(err error, codes ...ErrorCode) bool {
	var pErr *Error
	if !errors.As(err, &pErr) {
		return false
	}

	return slices.Contains(codes, pErr.ErrorCode)
}
