// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ice-blockchain/playfab/log"
)

// New starts a fake PlayFab title, it's closed when the test ends.
func New(tb testing.TB, titleID string) *Server {
	tb.Helper()
	if titleID == "" {
		titleID = DefaultTitleID
	}
	s := &Server{
		accounts: make(map[string]*Account),
		sessions: make(map[string]string),
		calls:    make(map[string]int),
		failures: make(map[string][]int),
		TitleID:  titleID,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Client/{operation}", s.handle)
	s.srv = httptest.NewServer(mux)
	s.URL = s.srv.URL
	tb.Cleanup(s.srv.Close)

	return s
}

// CreateAccount registers acc, generating its PlayFabID if missing.
func (s *Server) CreateAccount(acc Account) Account { //nolint:gocritic // It's a copy on purpose.
	s.mx.Lock()
	defer s.mx.Unlock()

	return *s.createAccount(&acc)
}

func (s *Server) Account(playFabID string) (Account, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	acc, found := s.accounts[playFabID]
	if !found {
		return Account{}, false
	}

	return *acc, true
}

// AccountByCustomID finds the account the custom id is linked to.
func (s *Server) AccountByCustomID(customID string) (Account, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	acc := s.find(func(a *Account) bool { return a.CustomID == customID })
	if acc == nil {
		return Account{}, false
	}

	return *acc, true
}

// Calls is how many times the operation, f.e. `LoginWithCustomID`, was called.
func (s *Server) Calls(operation string) int {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.calls[operation]
}

// FailNext makes the next calls of the operation respond with statusCodes, one per call.
func (s *Server) FailNext(operation string, statusCodes ...int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.failures[operation] = append(s.failures[operation], statusCodes...)
}

func (s *Server) handle(writer http.ResponseWriter, req *http.Request) { //nolint:funlen,gocyclo,revive,cyclop // A dispatcher.
	operation := req.PathValue("operation")
	s.mx.Lock()
	defer s.mx.Unlock()
	s.calls[operation]++
	if queued := s.failures[operation]; len(queued) > 0 {
		s.failures[operation] = queued[1:]
		fail(writer, queued[0], codeUnknown, "injected failure")

		return
	}
	var arg request
	if err := json.NewDecoder(req.Body).Decode(&arg); err != nil {
		fail(writer, http.StatusBadRequest, codeInvalidParams, err.Error())

		return
	}
	if strings.HasPrefix(operation, "LoginWith") {
		s.login(writer, operation, &arg)

		return
	}
	acc, found := s.accounts[s.sessions[req.Header.Get(authorizationHeader)]]
	if !found {
		fail(writer, http.StatusUnauthorized, codeNotAuthenticated, "This API method does not allow anonymous callers.")

		return
	}
	switch operation {
	case "LinkCustomID":
		s.linkCustomID(writer, acc, &arg)
	case "UnlinkCustomID":
		unlink(writer, &acc.CustomID, arg.CustomID)
	case "UnlinkAndroidDeviceID":
		unlink(writer, &acc.AndroidDeviceID, arg.AndroidDeviceID)
	case "UnlinkIOSDeviceID":
		unlink(writer, &acc.IOSDeviceID, arg.DeviceID)
	case "AddUsernamePassword":
		s.addUsernamePassword(writer, acc, &arg)
	case "GetAccountInfo":
		if arg.PlayFabID != "" {
			if acc, found = s.accounts[arg.PlayFabID]; !found {
				fail(writer, http.StatusBadRequest, codeAccountNotFound, "User not found")

				return
			}
		}
		ok(writer, map[string]any{"AccountInfo": accountInfo(acc)})
	case "UpdateUserTitleDisplayName":
		if len(arg.DisplayName) < minDisplayNameLen || len(arg.DisplayName) > maxDisplayNameLen {
			fail(writer, http.StatusBadRequest, codeInvalidParams, "Invalid input parameters")

			return
		}
		acc.DisplayName = arg.DisplayName
		ok(writer, map[string]any{"DisplayName": acc.DisplayName})
	default:
		fail(writer, http.StatusNotFound, codeUnknown, fmt.Sprintf("unsupported operation %v", operation))
	}
}

func (s *Server) login(writer http.ResponseWriter, operation string, arg *request) { //nolint:funlen,gocyclo,revive,cyclop // A dispatcher.
	if arg.TitleID != s.TitleID {
		fail(writer, http.StatusBadRequest, codeInvalidTitleID, "Invalid title id")

		return
	}
	var acc *Account
	var template Account
	switch operation {
	case "LoginWithCustomID":
		acc = s.find(func(a *Account) bool { return arg.CustomID != "" && a.CustomID == arg.CustomID })
		template.CustomID = arg.CustomID
	case "LoginWithAndroidDeviceID":
		acc = s.find(func(a *Account) bool { return arg.AndroidDeviceID != "" && a.AndroidDeviceID == arg.AndroidDeviceID })
		template.AndroidDeviceID = arg.AndroidDeviceID
	case "LoginWithIOSDeviceID":
		acc = s.find(func(a *Account) bool { return arg.DeviceID != "" && a.IOSDeviceID == arg.DeviceID })
		template.IOSDeviceID = arg.DeviceID
	case "LoginWithFacebook":
		if arg.AccessToken == "" || strings.HasPrefix(arg.AccessToken, "invalid") {
			fail(writer, http.StatusBadRequest, codeInvalidFacebookToken, "Invalid Facebook token")

			return
		}
		acc = s.find(func(a *Account) bool { return a.FacebookID == arg.AccessToken })
		template.FacebookID = arg.AccessToken
	case "LoginWithGoogleAccount":
		if arg.ServerAuthCode == "" {
			fail(writer, http.StatusBadRequest, codeInvalidParams, "ServerAuthCode is required")

			return
		}
		acc = s.find(func(a *Account) bool { return a.GoogleID == arg.ServerAuthCode })
		template.GoogleID = arg.ServerAuthCode
	case "LoginWithEmailAddress":
		if acc = s.find(func(a *Account) bool {
			return arg.Email != "" && strings.EqualFold(a.Email, arg.Email) && a.Password == arg.Password
		}); acc == nil {
			fail(writer, http.StatusBadRequest, codeInvalidEmailOrPassword, "Invalid email address or password")

			return
		}
	case "LoginWithPlayFab":
		if acc = s.find(func(a *Account) bool {
			return arg.Username != "" && a.Username == arg.Username && a.Password == arg.Password
		}); acc == nil {
			fail(writer, http.StatusBadRequest, codeInvalidUsernameOrPassword, "Invalid username or password")

			return
		}
	default:
		fail(writer, http.StatusNotFound, codeUnknown, fmt.Sprintf("unsupported operation %v", operation))

		return
	}
	newlyCreated := false
	if acc == nil {
		if !arg.CreateAccount {
			fail(writer, http.StatusBadRequest, codeAccountNotFound, "User not found")

			return
		}
		acc, newlyCreated = s.createAccount(&template), true
	}
	ticket := fmt.Sprintf("%v-%v", acc.PlayFabID, uuid.NewString())
	s.sessions[ticket] = acc.PlayFabID
	now := stdlibtime.Now().UTC()
	result := map[string]any{
		"PlayFabId":     acc.PlayFabID,
		"SessionTicket": ticket,
		"NewlyCreated":  newlyCreated,
		"LastLoginTime": now.Format(stdlibtime.RFC3339Nano),
		"EntityToken": map[string]any{
			"EntityToken":     uuid.NewString(),
			"TokenExpiration": now.Add(entityTokenTTL).Format(stdlibtime.RFC3339Nano),
			"Entity":          map[string]any{"Id": acc.PlayFabID, "Type": "title_player_account"},
		},
	}
	if arg.InfoRequestParameters != nil && arg.InfoRequestParameters.GetUserAccountInfo {
		result["InfoResultPayload"] = map[string]any{"AccountInfo": accountInfo(acc)}
	}
	ok(writer, result)
}

func (s *Server) linkCustomID(writer http.ResponseWriter, acc *Account, arg *request) {
	if arg.CustomID == "" {
		fail(writer, http.StatusBadRequest, codeInvalidParams, "CustomId is required")

		return
	}
	if owner := s.find(func(a *Account) bool { return a.CustomID == arg.CustomID }); owner != nil && owner != acc {
		if !arg.ForceLink {
			fail(writer, http.StatusBadRequest, codeLinkedAccountAlreadyClaimed, "Custom ID is already linked to another account")

			return
		}
		owner.CustomID = ""
	}
	if acc.CustomID != "" && acc.CustomID != arg.CustomID && !arg.ForceLink {
		fail(writer, http.StatusBadRequest, codeAccountAlreadyLinked, "Account already has a custom ID linked")

		return
	}
	acc.CustomID = arg.CustomID
	ok(writer, map[string]any{})
}

func (s *Server) addUsernamePassword(writer http.ResponseWriter, acc *Account, arg *request) {
	if len(arg.Password) < minPasswordLength {
		fail(writer, http.StatusBadRequest, codeInvalidPassword, "Invalid password")

		return
	}
	if s.find(func(a *Account) bool { return a != acc && strings.EqualFold(a.Email, arg.Email) }) != nil {
		fail(writer, http.StatusBadRequest, codeEmailAddressNotAvailable, "Email address not available")

		return
	}
	if s.find(func(a *Account) bool { return a != acc && a.Username == arg.Username }) != nil {
		fail(writer, http.StatusBadRequest, codeUsernameNotAvailable, "Username not available")

		return
	}
	acc.Email, acc.Username, acc.Password = arg.Email, arg.Username, arg.Password
	ok(writer, map[string]any{"Username": acc.Username})
}

func (s *Server) createAccount(acc *Account) *Account {
	if acc.PlayFabID == "" {
		acc.PlayFabID = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
	}
	if acc.Created.IsZero() {
		acc.Created = stdlibtime.Now().UTC()
	}
	s.accounts[acc.PlayFabID] = acc

	return acc
}

func (s *Server) find(match func(*Account) bool) *Account {
	for _, acc := range s.accounts {
		if match(acc) {
			return acc
		}
	}

	return nil
}

func unlink(writer http.ResponseWriter, linked *string, id string) {
	if *linked == "" || (id != "" && *linked != id) {
		fail(writer, http.StatusBadRequest, codeAccountNotLinked, "Account not linked")

		return
	}
	*linked = ""
	ok(writer, map[string]any{})
}

func accountInfo(acc *Account) map[string]any {
	return map[string]any{
		"PlayFabId":   acc.PlayFabID,
		"Username":    acc.Username,
		"Created":     acc.Created.Format(stdlibtime.RFC3339Nano),
		"PrivateInfo": map[string]any{"Email": acc.Email},
		"TitleInfo": map[string]any{
			"DisplayName": acc.DisplayName,
			"Created":     acc.Created.Format(stdlibtime.RFC3339Nano),
		},
	}
}

func ok(writer http.ResponseWriter, data any) {
	write(writer, http.StatusOK, &apiSuccess{Code: http.StatusOK, Status: "OK", Data: data})
}

func fail(writer http.ResponseWriter, statusCode, errorCode int, msg string) {
	write(writer, statusCode, &apiError{
		Code:         statusCode,
		Status:       http.StatusText(statusCode),
		Error:        errorName(errorCode),
		ErrorCode:    errorCode,
		ErrorMessage: msg,
	})
}

func write(writer http.ResponseWriter, statusCode int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		log.Error(err, "statusCode", statusCode)
	}
}

func errorName(errorCode int) string {
	return map[int]string{
		codeInvalidParams:               "InvalidParams",
		codeAccountNotFound:             "AccountNotFound",
		codeInvalidUsernameOrPassword:   "InvalidUsernameOrPassword",
		codeInvalidTitleID:              "InvalidTitleId",
		codeEmailAddressNotAvailable:    "EmailAddressNotAvailable",
		codeInvalidPassword:             "InvalidPassword",
		codeUsernameNotAvailable:        "UsernameNotAvailable",
		codeAccountAlreadyLinked:        "AccountAlreadyLinked",
		codeLinkedAccountAlreadyClaimed: "LinkedAccountAlreadyClaimed",
		codeInvalidFacebookToken:        "InvalidFacebookToken",
		codeAccountNotLinked:            "AccountNotLinked",
		codeNotAuthenticated:            "NotAuthenticated",
		codeInvalidEmailOrPassword:      "InvalidEmailOrPassword",
	}[errorCode]
}
