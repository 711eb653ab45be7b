// SPDX-License-Identifier: ice License 1.0

package displayname

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/playfab/log"
	"github.com/ice-blockchain/playfab/playfab"
)

func New(client playfab.Client, identity Identity, handlers Handlers) Client {
	if client == nil || identity == nil {
		log.Panic(errors.New("playfab client and identity are required"))
	}

	return &displayNames{playfab: client, identity: identity, handlers: handlers}
}

func (d *displayNames) GetDisplayName(ctx context.Context) (string, error) {
	res, err := d.playfab.GetAccountInfo(ctx, &playfab.GetAccountInfoRequest{PlayFabID: d.identity.PlayFabID()})
	if err != nil {
		return d.cached(), errors.Wrap(err, "failed to get account info")
	}
	if res.AccountInfo == nil || res.AccountInfo.TitleInfo == nil {
		return d.cached(), errors.Wrapf(ErrNoTitleInfo, "playFabID:%v", d.identity.PlayFabID())
	}
	d.cache(res.AccountInfo.TitleInfo.DisplayName)

	return res.AccountInfo.TitleInfo.DisplayName, nil
}

func (d *displayNames) SetDisplayName(ctx context.Context, displayName string) error {
	res, err := d.playfab.UpdateUserTitleDisplayName(ctx, &playfab.UpdateUserTitleDisplayNameRequest{DisplayName: displayName})
	if err != nil {
		return errors.Wrapf(err, "failed to update display name to %q", displayName)
	}
	if res.DisplayName != "" {
		displayName = res.DisplayName
	}
	d.cache(displayName)
	if d.handlers.OnDisplayNameChange != nil {
		d.handlers.OnDisplayNameChange(displayName)
	}

	return nil
}

func (d *displayNames) cached() string {
	d.mx.RLock()
	defer d.mx.RUnlock()

	return d.displayName
}

func (d *displayNames) cache(displayName string) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.displayName = displayName
}
