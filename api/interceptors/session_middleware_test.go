package interceptors

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/types"
	"github.com/stretchr/testify/assert"
)

func setupSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	global.Conf.Session.CookieName = "signit_session"
	global.Conf.Session.DurationHours = 24
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	global.PublicKey = publicKey
	global.PrivateKey = privateKey

	router := gin.New()
	router.GET("/whoami", SessionMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "username": c.GetString("username")})
	})
	return router
}

func getWithCookie(router *gin.Engine, cookieValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/whoami", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "signit_session", Value: cookieValue})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	router := setupSessionRouter(t)
	w := getWithCookie(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareGarbageCookie(t *testing.T) {
	router := setupSessionRouter(t)
	w := getWithCookie(router, "definitely.not.a-jws")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareForeignKey(t *testing.T) {
	router := setupSessionRouter(t)

	// token signed by someone else's key fails verification
	_, foreignKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	token, tErr := GenerateSessionToken(foreignKey, &types.User{ID: "uid-1", Username: "alice"})
	if tErr != nil {
		t.Fatal(tErr)
	}
	w := getWithCookie(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareExpired(t *testing.T) {
	router := setupSessionRouter(t)

	global.Conf.Session.DurationHours = -1
	token, err := GenerateSessionToken(global.PrivateKey, &types.User{ID: "uid-1", Username: "alice"})
	global.Conf.Session.DurationHours = 24
	if err != nil {
		t.Fatal(err)
	}
	w := getWithCookie(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareValid(t *testing.T) {
	router := setupSessionRouter(t)

	token, err := GenerateSessionToken(global.PrivateKey, &types.User{ID: "uid-1", Username: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	w := getWithCookie(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uid-1")
	assert.Contains(t, w.Body.String(), "alice")
}
