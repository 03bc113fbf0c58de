package interceptors

import (
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-jose/go-jose/v3"
	"github.com/signit/go-signit-server/global"
	"github.com/signit/go-signit-server/types"
)

const sessionIssuer = "go-signit-server"

// SessionMiddleware authenticates requests by the session cookie set
// at login. The cookie carries a JWS signed with the servers ed25519
// key; the verified subject becomes the requests user identity.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(global.Conf.Session.CookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session cookie is missing"})
			return
		}

		// Parse JWS message
		object, err := jose.ParseSigned(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session cookie"})
			return
		}

		// Verify the signature
		payload, err := object.Verify(global.PublicKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to verify session cookie"})
			return
		}

		var plMap map[string]interface{}
		uErr := json.Unmarshal(payload, &plMap)
		if uErr != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to parse session payload"})
			return
		}
		if exp, ok := plMap["exp"]; ok {
			expFloat, ok := exp.(float64)
			if !ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to parse session payload"})
				return
			}
			if expFloat < float64(time.Now().Unix()) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
		} else {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to parse session payload (exp missing)"})
			return
		}
		userID := ""
		if sub, ok := plMap["sub"]; ok {
			userID = sub.(string)
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session has no identity"})
			return
		}
		username := ""
		if un, ok := plMap["username"]; ok {
			username, _ = un.(string)
		}
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

// GenerateSessionToken signs a session JWS for the authenticated user
func GenerateSessionToken(serverPrivateKey ed25519.PrivateKey, user *types.User) (string, error) {
	now := time.Now()
	pl := map[string]interface{}{
		"iss":      sessionIssuer,
		"sub":      user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour * time.Duration(global.Conf.Session.DurationHours)).Unix(),
	}
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.EdDSA, Key: serverPrivateKey}, nil)
	if err != nil {
		return "", err
	}

	plBytes, plErr := json.Marshal(pl)
	if plErr != nil {
		return "", plErr
	}
	object, err := signer.Sign(plBytes)
	if err != nil {
		return "", err
	}
	return object.CompactSerialize()
}
