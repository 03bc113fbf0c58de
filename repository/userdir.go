package repository

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/signit/go-signit-server/types"
)

const usersDatabase = "_users"

// UserDirectory is a thin client over the host platforms built-in user
// directory (CouchDB _users database and /_session endpoint). Accounts
// and password hashes are owned by the directory, never by this server.
type UserDirectory struct {
	// adminClient carries the server credential for managing user documents
	adminClient *resty.Client
	// sessionClient is deliberately unauthenticated: /_session must see
	// only the credentials supplied by the logging-in user
	sessionClient *resty.Client
}

func NewUserDirectory(serverURL, username, password string, mock bool) (*UserDirectory, error) {
	adminClient := resty.New().
		SetBaseURL(serverURL).
		SetTimeout(time.Second * 10).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBasicAuth(username, password)

	sessionClient := resty.New().
		SetBaseURL(serverURL).
		SetTimeout(time.Second * 10).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if mock {
		httpmock.ActivateNonDefault(adminClient.GetClient())
		httpmock.ActivateNonDefault(sessionClient.GetClient())
	}

	existsRes, existsErr := adminClient.R().Head(usersDatabase)
	if existsErr != nil {
		return nil, fmt.Errorf("failed to reach user directory: %s", existsErr.Error())
	}
	if existsRes.IsError() {
		return nil, fmt.Errorf("user directory unavailable (%d)", existsRes.StatusCode())
	}
	return &UserDirectory{adminClient: adminClient, sessionClient: sessionClient}, nil
}

func userDocID(username string) string {
	return "org.couchdb.user:" + username
}

// SaveUser creates a new account document. The directory enforces
// username uniqueness: a second write for the same name conflicts.
func (ud *UserDirectory) SaveUser(ctx context.Context, doc *types.UserDocument) error {
	response, err := ud.adminClient.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("%s/%s", usersDatabase, url.PathEscape(userDocID(doc.Name))))
	if err != nil {
		return err
	}
	return handleError(response)
}

// GetUser returns the account document for a username
func (ud *UserDirectory) GetUser(ctx context.Context, username string) (*types.UserDocument, error) {
	var doc types.UserDocument
	response, err := ud.adminClient.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(fmt.Sprintf("%s/%s", usersDatabase, url.PathEscape(userDocID(username))))
	if err != nil {
		return nil, err
	}
	if hErr := handleError(response); hErr != nil {
		return nil, hErr
	}
	return &doc, nil
}

// CreateSession verifies the supplied credentials against the
// directory. Only the outcome matters here; the server issues its own
// session cookie afterwards.
func (ud *UserDirectory) CreateSession(ctx context.Context, username, password string) error {
	var result struct {
		OK bool `json:"ok"`
	}
	response, err := ud.sessionClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": username, "password": password}).
		SetResult(&result).
		Post("_session")
	if err != nil {
		return err
	}
	if response.StatusCode() == 401 {
		return types.ErrInvalidCredentials
	}
	if hErr := handleError(response); hErr != nil {
		return hErr
	}
	if !result.OK {
		return types.ErrInvalidCredentials
	}
	return nil
}
