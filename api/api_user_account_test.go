package api

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jarcoal/httpmock"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/repository"
	"github.com/signit/go-signit-server/services"
	"github.com/signit/go-signit-server/types"
	"github.com/stretchr/testify/assert"
)

const directoryURL = "http://localhost:5889"

func setupAccountRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	global.Conf.Session.CookieName = "signit_session"
	global.Conf.Session.DurationHours = 24
	publicKey, privateKey, kErr := ed25519.GenerateKey(rand.Reader)
	if kErr != nil {
		t.Fatal(kErr)
	}
	global.PublicKey = publicKey
	global.PrivateKey = privateKey

	httpmock.Activate()
	httpmock.RegisterResponder("HEAD", directoryURL+"/_users",
		httpmock.NewStringResponder(200, ""))

	userDir, err := repository.NewUserDirectory(directoryURL, "admin", "secret", true)
	if err != nil {
		t.Fatal(err)
	}
	accountApi := NewUserAccountApi(services.NewUserService(userDir))

	router := gin.New()
	router.POST("/user/", accountApi.Register)
	router.POST("/user/login", accountApi.Login)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := setupAccountRouter(t)
	defer httpmock.DeactivateAndReset()

	seen := false
	httpmock.RegisterResponder("PUT", directoryURL+"/_users/org.couchdb.user:alice",
		func(req *http.Request) (*http.Response, error) {
			if seen {
				return httpmock.NewJsonResponse(409, map[string]string{"error": "conflict", "reason": "Document update conflict."})
			}
			seen = true
			return httpmock.NewJsonResponse(201, map[string]interface{}{"ok": true, "id": "org.couchdb.user:alice"})
		})

	input := types.InputUserCredentials{Username: "alice", Password: "correct horse battery"}

	w := postJSON(router, "/user/", input)
	assert.Equal(t, http.StatusOK, w.Code)
	var out types.OutputUser
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "alice", out.Username)

	w = postJSON(router, "/user/", input)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var apiErr ApiError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "username already exists.", apiErr.Message)
}

func TestRegisterValidation(t *testing.T) {
	router := setupAccountRouter(t)
	defer httpmock.DeactivateAndReset()

	w := postJSON(router, "/user/", types.InputUserCredentials{Username: "al", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// nothing reaches the user directory
	callInfo := httpmock.GetCallCountInfo()
	for key, count := range callInfo {
		if key != "HEAD "+directoryURL+"/_users" {
			assert.Equal(t, 0, count, key)
		}
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router := setupAccountRouter(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", directoryURL+"/_session",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{"ok": true, "name": "alice", "roles": []string{}}))
	httpmock.RegisterResponder("GET", directoryURL+"/_users/org.couchdb.user:alice",
		httpmock.NewJsonResponderOrPanic(200, types.UserDocument{
			ID:     "org.couchdb.user:alice",
			Name:   "alice",
			Type:   "user",
			UserID: "uid-alice-1",
		}))

	w := postJSON(router, "/user/login", types.InputUserCredentials{Username: "alice", Password: "correct horse battery"})
	assert.Equal(t, http.StatusOK, w.Code)

	var out types.OutputUser
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "uid-alice-1", out.ID)
	assert.Equal(t, "alice", out.Username)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 session cookie, got %d", len(cookies))
	}
	assert.Equal(t, "signit_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginWrongPasswordIssuesNoCookie(t *testing.T) {
	router := setupAccountRouter(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", directoryURL+"/_session",
		httpmock.NewJsonResponderOrPanic(401, map[string]string{"error": "unauthorized", "reason": "Name or password is incorrect."}))

	w := postJSON(router, "/user/login", types.InputUserCredentials{Username: "alice", Password: "wrong password!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}
