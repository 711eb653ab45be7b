// SPDX-License-Identifier: ice License 1.0

package playfab

import (
	"github.com/ice-blockchain/playfab/time"
)

type (
	// GetPlayerCombinedInfoRequestParams selects what is bundled into LoginResult.InfoResultPayload.
	GetPlayerCombinedInfoRequestParams struct {
		PlayerStatisticNames    []string `json:"PlayerStatisticNames,omitempty"`
		TitleDataKeys           []string `json:"TitleDataKeys,omitempty"`
		UserDataKeys            []string `json:"UserDataKeys,omitempty"`
		UserReadOnlyDataKeys    []string `json:"UserReadOnlyDataKeys,omitempty"`
		GetCharacterInventories bool     `json:"GetCharacterInventories,omitempty"`
		GetCharacterList        bool     `json:"GetCharacterList,omitempty"`
		GetPlayerProfile        bool     `json:"GetPlayerProfile,omitempty"`
		GetPlayerStatistics     bool     `json:"GetPlayerStatistics,omitempty"`
		GetTitleData            bool     `json:"GetTitleData,omitempty"`
		GetUserAccountInfo      bool     `json:"GetUserAccountInfo,omitempty"`
		GetUserData             bool     `json:"GetUserData,omitempty"`
		GetUserInventory        bool     `json:"GetUserInventory,omitempty"`
		GetUserReadOnlyData     bool     `json:"GetUserReadOnlyData,omitempty"`
		GetUserVirtualCurrency  bool     `json:"GetUserVirtualCurrency,omitempty"`
	}

	LoginWithCustomIDRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		CustomID              string                              `json:"CustomId,omitempty"`
		CreateAccount         bool                                `json:"CreateAccount,omitempty"`
	}

	LoginWithEmailAddressRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		Email                 string                              `json:"Email,omitempty"`
		Password              string                              `json:"Password,omitempty"`
	}

	LoginWithPlayFabRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		Username              string                              `json:"Username,omitempty"`
		Password              string                              `json:"Password,omitempty"`
	}

	LoginWithAndroidDeviceIDRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		AndroidDevice         string                              `json:"AndroidDevice,omitempty"`
		AndroidDeviceID       string                              `json:"AndroidDeviceId,omitempty"`
		OS                    string                              `json:"OS,omitempty"`
		CreateAccount         bool                                `json:"CreateAccount,omitempty"`
	}

	LoginWithIOSDeviceIDRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		DeviceID              string                              `json:"DeviceId,omitempty"`
		DeviceModel           string                              `json:"DeviceModel,omitempty"`
		OS                    string                              `json:"OS,omitempty"`
		CreateAccount         bool                                `json:"CreateAccount,omitempty"`
	}

	LoginWithFacebookRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		AccessToken           string                              `json:"AccessToken,omitempty"`
		CreateAccount         bool                                `json:"CreateAccount,omitempty"`
	}

	LoginWithGoogleAccountRequest struct {
		InfoRequestParameters *GetPlayerCombinedInfoRequestParams `json:"InfoRequestParameters,omitempty"`
		TitleID               string                              `json:"TitleId,omitempty"`
		ServerAuthCode        string                              `json:"ServerAuthCode,omitempty"`
		CreateAccount         bool                                `json:"CreateAccount,omitempty"`
	}

	EntityKey struct {
		ID   string `json:"Id,omitempty"`
		Type string `json:"Type,omitempty"`
	}

	EntityTokenResponse struct {
		Entity          *EntityKey `json:"Entity,omitempty"`
		TokenExpiration *time.Time `json:"TokenExpiration,omitempty"`
		EntityToken     string     `json:"EntityToken,omitempty"`
	}

	UserTitleInfo struct {
		Created     *time.Time `json:"Created,omitempty"`
		FirstLogin  *time.Time `json:"FirstLogin,omitempty"`
		LastLogin   *time.Time `json:"LastLogin,omitempty"`
		DisplayName string     `json:"DisplayName,omitempty"`
		Origination string     `json:"Origination,omitempty"`
		AvatarURL   string     `json:"AvatarUrl,omitempty"`
		IsBanned    bool       `json:"isBanned,omitempty"`
	}

	UserPrivateInfo struct {
		Email string `json:"Email,omitempty"`
	}

	UserAccountInfo struct {
		Created     *time.Time       `json:"Created,omitempty"`
		TitleInfo   *UserTitleInfo   `json:"TitleInfo,omitempty"`
		PrivateInfo *UserPrivateInfo `json:"PrivateInfo,omitempty"`
		PlayFabID   string           `json:"PlayFabId,omitempty"`
		Username    string           `json:"Username,omitempty"`
	}

	UserDataRecord struct {
		LastUpdated *time.Time `json:"LastUpdated,omitempty"`
		Value       string     `json:"Value,omitempty"`
		Permission  string     `json:"Permission,omitempty"`
	}

	StatisticValue struct {
		StatisticName string `json:"StatisticName,omitempty"`
		Value         int64  `json:"Value,omitempty"`
		Version       uint32 `json:"Version,omitempty"`
	}

	GetPlayerCombinedInfoResultPayload struct {
		AccountInfo         *UserAccountInfo          `json:"AccountInfo,omitempty"`
		UserData            map[string]UserDataRecord `json:"UserData,omitempty"`
		UserReadOnlyData    map[string]UserDataRecord `json:"UserReadOnlyData,omitempty"`
		TitleData           map[string]string         `json:"TitleData,omitempty"`
		UserVirtualCurrency map[string]int64          `json:"UserVirtualCurrency,omitempty"`
		PlayerStatistics    []*StatisticValue         `json:"PlayerStatistics,omitempty"`
	}

	LoginResult struct {
		LastLoginTime     *time.Time                          `json:"LastLoginTime,omitempty"`
		EntityToken       *EntityTokenResponse                `json:"EntityToken,omitempty"`
		InfoResultPayload *GetPlayerCombinedInfoResultPayload `json:"InfoResultPayload,omitempty"`
		PlayFabID         string                              `json:"PlayFabId,omitempty"`
		SessionTicket     string                              `json:"SessionTicket,omitempty"`
		NewlyCreated      bool                                `json:"NewlyCreated,omitempty"`
	}

	LinkCustomIDRequest struct {
		CustomID  string `json:"CustomId,omitempty"`
		ForceLink bool   `json:"ForceLink,omitempty"`
	}

	UnlinkCustomIDRequest struct {
		CustomID string `json:"CustomId,omitempty"`
	}

	UnlinkAndroidDeviceIDRequest struct {
		AndroidDeviceID string `json:"AndroidDeviceId,omitempty"`
	}

	UnlinkIOSDeviceIDRequest struct {
		DeviceID string `json:"DeviceId,omitempty"`
	}

	AddUsernamePasswordRequest struct {
		Username string `json:"Username,omitempty"`
		Email    string `json:"Email,omitempty"`
		Password string `json:"Password,omitempty"`
	}

	AddUsernamePasswordResult struct {
		Username string `json:"Username,omitempty"`
	}

	GetAccountInfoRequest struct {
		PlayFabID        string `json:"PlayFabId,omitempty"`
		Username         string `json:"Username,omitempty"`
		Email            string `json:"Email,omitempty"`
		TitleDisplayName string `json:"TitleDisplayName,omitempty"`
	}

	GetAccountInfoResult struct {
		AccountInfo *UserAccountInfo `json:"AccountInfo,omitempty"`
	}

	UpdateUserTitleDisplayNameRequest struct {
		DisplayName string `json:"DisplayName,omitempty"`
	}

	UpdateUserTitleDisplayNameResult struct {
		DisplayName string `json:"DisplayName,omitempty"`
	}
)
